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

package pn532

import "fmt"

// ReadRegister reads one byte from the chip's internal address space
// (XRAM or, with the 0xFFxx prefix, SFR registers). Raw register access is
// a diagnostic escape hatch; normal operation never needs it.
func (d *Device) ReadRegister(addr uint16) (byte, error) {
	data, err := d.callFunction(cmdReadRegister, []byte{byte(addr >> 8), byte(addr)}, 1)
	if err != nil {
		return 0, err
	}
	return data[0], nil
}

// WriteRegister writes one byte to the chip's internal address space.
func (d *Device) WriteRegister(addr uint16, value byte) error {
	_, err := d.callFunction(cmdWriteRegister, []byte{byte(addr >> 8), byte(addr), value}, 0)
	if err != nil {
		return fmt.Errorf("WriteRegister 0x%04X: %w", addr, err)
	}
	return nil
}
