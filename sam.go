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

// SAMMode selects how the Security Access Module port is used.
type SAMMode byte

const (
	// SAMModeNormal - the SAM is unused, normal reader operation.
	SAMModeNormal SAMMode = 0x01
	// SAMModeVirtualCard - the PN532 plus SAM appear as one card.
	SAMModeVirtualCard SAMMode = 0x02
	// SAMModeWiredCard - the host accesses the SAM directly.
	SAMModeWiredCard SAMMode = 0x03
	// SAMModeDualCard - both host and SAM paths active.
	SAMModeDualCard SAMMode = 0x04
)

// samTimeoutDefault is the virtual-card timeout field in 50 ms units;
// 0x14 gives one second, the value the reference driver always sends.
const samTimeoutDefault = 0x14

// SAMConfiguration sets the SAM mode. Required once after power-up before
// passive targets can be detected; Init sends it with SAMModeNormal.
func (d *Device) SAMConfiguration(mode SAMMode) error {
	if mode < SAMModeNormal || mode > SAMModeDualCard {
		return fmt.Errorf("%w: SAM mode 0x%02X", ErrInvalidParameter, mode)
	}

	// Third byte enables the IRQ pin; harmless on transports without one.
	data, err := d.callFunction(cmdSamConfiguration, []byte{byte(mode), samTimeoutDefault, 0x01}, 1)
	if err != nil {
		return err
	}

	// Most firmware answers with an empty body; a non-zero status byte is
	// a rejection either way.
	if len(data) > 0 && data[0] != 0x00 {
		return &CardError{Command: "SAMConfiguration", Code: data[0]}
	}
	return nil
}

// PowerDown puts the chip into soft power-down. wakeupSources is a bitmap
// of Wakeup* flags naming the events allowed to bring it back; the next
// command must be preceded by a transport Wake.
func (d *Device) PowerDown(wakeupSources byte) error {
	data, err := d.callFunction(cmdPowerDown, []byte{wakeupSources}, 1)
	if err != nil {
		return err
	}
	if len(data) > 0 && data[0] != 0x00 {
		return &CardError{Command: "PowerDown", Code: data[0]}
	}
	return nil
}

// RFField switches the RF field carrier on or off via RFConfiguration.
// Dropping the field resets any card sitting on the antenna.
func (d *Device) RFField(on bool) error {
	value := byte(0x00)
	if on {
		value = 0x01
	}
	// Configuration item 0x01: RF field, bit 0 = field on, bit 1 = auto RFCA.
	_, err := d.callFunction(cmdRFConfiguration, []byte{0x01, value}, 0)
	return err
}
