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

// GPIO P3 port pin masks
const (
	GPIOPinP30 byte = 0x01
	GPIOPinP31 byte = 0x02
	GPIOPinP32 byte = 0x04
	GPIOPinP33 byte = 0x08
	GPIOPinP34 byte = 0x10
	GPIOPinP35 byte = 0x20
)

// GPIO P7 port pin masks
const (
	GPIOPinP71 byte = 0x02
	GPIOPinP72 byte = 0x04
)

// GPIOValidate must be set on a port byte for WriteGPIO to apply it;
// a port byte without it leaves that port untouched.
const GPIOValidate byte = 0x80

// GPIOState is the decoded ReadGPIO response.
type GPIOState struct {
	P3   byte // port P3 pin levels
	P7   byte // port P7 pin levels
	I0I1 byte // interface selection pins
}

// ReadGPIO reads the chip's GPIO pin levels.
func (d *Device) ReadGPIO() (*GPIOState, error) {
	data, err := d.callFunction(cmdReadGPIO, nil, 3)
	if err != nil {
		return nil, err
	}

	return &GPIOState{
		P3:   data[0],
		P7:   data[1],
		I0I1: data[2],
	}, nil
}

// WriteGPIO drives the chip's GPIO pins. Each port byte is only applied
// when its GPIOValidate bit is set; pass 0 to leave a port unchanged.
// Pins P32 and P34 are claimed by the host interface and must not be
// driven while the bus is in use.
func (d *Device) WriteGPIO(p3, p7 byte) error {
	data, err := d.callFunction(cmdWriteGPIO, []byte{p3, p7}, 1)
	if err != nil {
		return err
	}
	if len(data) > 0 && data[0] != 0x00 {
		return fmt.Errorf("WriteGPIO: %w: status 0x%02X", ErrInvalidResponse, data[0])
	}
	return nil
}
