// pi-interfaces
// Copyright (c) 2025 The pi-interfaces Authors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of pi-interfaces.
//
// pi-interfaces is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// pi-interfaces is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with pi-interfaces; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package frame

// CalculateChecksum returns the sum of all bytes truncated to 8 bits.
func CalculateChecksum(data []byte) byte {
	chk := byte(0)
	for _, b := range data {
		chk += b
	}
	return chk
}

// ChecksumValue returns the two's-complement byte that makes data plus the
// returned byte sum to zero modulo 256. Used for both LCS and DCS.
func ChecksumValue(data []byte) byte {
	return ^CalculateChecksum(data) + 1
}

// LengthChecksum returns the LCS byte for a LEN byte.
func LengthChecksum(length byte) byte {
	return ^length + 1
}

// ValidateChecksum reports whether a byte group fails the zero-sum-mod-256
// invariant. The group must include its trailing checksum byte.
func ValidateChecksum(data []byte) bool {
	return CalculateChecksum(data) != 0
}
