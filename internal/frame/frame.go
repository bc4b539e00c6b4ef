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

import (
	"bytes"
	"errors"
)

// Codec errors. Parse never best-effort recovers; any mismatch is fatal for
// the frame under inspection.
var (
	ErrDataTooLarge      = errors.New("frame data exceeds wire limit")
	ErrFrameTooShort     = errors.New("frame too short")
	ErrBadStart          = errors.New("invalid frame start marker")
	ErrBadLengthChecksum = errors.New("length checksum mismatch")
	ErrBadChecksum       = errors.New("payload checksum mismatch")
)

// Frame layout offsets relative to the preamble byte.
const (
	offStart1  = 1
	offStart2  = 2
	offLen     = 3
	offLcs     = 4
	offPayload = 5
)

// Build constructs a complete wire frame around the given TFI (direction
// byte), command or status code and parameter data:
//
//	00 00 FF LEN LCS TFI CODE DATA... DCS 00
//
// LEN counts TFI, CODE and DATA; LCS and DCS are two's-complement checksums
// over LEN and the payload respectively.
func Build(tfi, code byte, data []byte) ([]byte, error) {
	if len(data) > MaxDataLength {
		return nil, ErrDataTooLarge
	}

	payloadLen := len(data) + 2 // TFI + code
	buf := make([]byte, 0, payloadLen+7)
	buf = append(buf, Preamble, StartCode1, StartCode2)
	buf = append(buf, byte(payloadLen), LengthChecksum(byte(payloadLen)))
	buf = append(buf, tfi, code)
	buf = append(buf, data...)
	buf = append(buf, ChecksumValue(buf[offPayload:]))
	buf = append(buf, Postamble)
	return buf, nil
}

// Parse validates a complete raw frame and returns the payload, i.e. the TFI
// followed by the command/status echo and its data. The postamble is
// optional; trailing bytes beyond the declared length are ignored.
func Parse(raw []byte) ([]byte, error) {
	if len(raw) < offPayload+2 {
		return nil, ErrFrameTooShort
	}
	if raw[0] != Preamble || raw[offStart1] != StartCode1 || raw[offStart2] != StartCode2 {
		return nil, ErrBadStart
	}

	length := int(raw[offLen])
	if (raw[offLen] + raw[offLcs]) != 0 {
		return nil, ErrBadLengthChecksum
	}
	if length == 0 || len(raw) < offPayload+length+1 {
		return nil, ErrFrameTooShort
	}

	// Payload plus DCS must sum to zero.
	if ValidateChecksum(raw[offPayload : offPayload+length+1]) {
		return nil, ErrBadChecksum
	}

	return raw[offPayload : offPayload+length], nil
}

// IsAck reports whether raw is exactly the fixed ACK frame. Any deviation in
// any byte position fails the check.
func IsAck(raw []byte) bool {
	return bytes.Equal(raw, AckFrame)
}

// IsNack reports whether raw is exactly the fixed NACK frame.
func IsNack(raw []byte) bool {
	return bytes.Equal(raw, NackFrame)
}
