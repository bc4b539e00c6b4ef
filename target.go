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

import (
	"encoding/hex"
	"fmt"
)

// BaudRate selects the modulation profile for target discovery.
type BaudRate byte

const (
	// Baud106kbitTypeA - ISO/IEC 14443 Type A at 106 kbit/s (MIFARE, NTAG).
	Baud106kbitTypeA BaudRate = 0x00
	// Baud212kbitFeliCa - FeliCa polling at 212 kbit/s.
	Baud212kbitFeliCa BaudRate = 0x01
	// Baud424kbitFeliCa - FeliCa polling at 424 kbit/s.
	Baud424kbitFeliCa BaudRate = 0x02
	// Baud106kbitTypeB - ISO/IEC 14443-3 Type B at 106 kbit/s.
	Baud106kbitTypeB BaudRate = 0x03
	// Baud106kbitJewel - Innovision Jewel at 106 kbit/s.
	Baud106kbitJewel BaudRate = 0x04
)

// maxUIDLength is the longest ISO 14443A UID (triple size).
const maxUIDLength = 7

// Target is a contactless card or tag activated during discovery.
type Target struct {
	UID  []byte
	ATQA uint16 // SENS_RES
	SAK  byte   // SEL_RES
}

// UIDString returns the UID as lowercase hex.
func (t *Target) UIDString() string {
	return hex.EncodeToString(t.UID)
}

// DetectTarget looks for a single passive target with the given modulation
// and activates it. The chip blocks until a target enters the field or its
// internal retry budget runs out, so the call can take up to the configured
// timeout. Only one target is ever requested; a response claiming more is
// a protocol violation.
func (d *Device) DetectTarget(baud BaudRate) (*Target, error) {
	if baud > Baud106kbitJewel {
		return nil, fmt.Errorf("%w: baud profile 0x%02X", ErrInvalidParameter, baud)
	}

	// MaxTg is pinned to 1: response decoding and InDataExchange target
	// numbering both assume a single active target.
	data, err := d.callFunction(cmdInListPassiveTarget, []byte{0x01, byte(baud)}, 22)
	if err != nil {
		return nil, err
	}

	return decodeListPassiveTarget(data)
}

// decodeListPassiveTarget decodes an InListPassiveTarget response for one
// ISO 14443A style target:
//
//	[0] target count
//	[1] target number
//	[2:4] SENS_RES (ATQA), [4] SEL_RES (SAK)
//	[5] UID length, [6:...] UID
func decodeListPassiveTarget(data []byte) (*Target, error) {
	if len(data) < 1 {
		return nil, fmt.Errorf("InListPassiveTarget: %w", ErrInvalidResponse)
	}
	switch data[0] {
	case 0x00:
		return nil, ErrNoTargetDetected
	case 0x01:
		// expected
	default:
		return nil, fmt.Errorf("InListPassiveTarget: %w: count %d", ErrTooManyTargets, data[0])
	}

	if len(data) < 6 {
		return nil, fmt.Errorf("InListPassiveTarget: %w: truncated target info", ErrInvalidResponse)
	}

	uidLen := int(data[5])
	if uidLen > maxUIDLength {
		return nil, fmt.Errorf("InListPassiveTarget: %w: %d bytes", ErrUIDTooLong, uidLen)
	}
	if len(data) < 6+uidLen {
		return nil, fmt.Errorf("InListPassiveTarget: %w: UID truncated", ErrInvalidResponse)
	}

	uid := make([]byte, uidLen)
	copy(uid, data[6:6+uidLen])

	return &Target{
		UID:  uid,
		ATQA: uint16(data[2])<<8 | uint16(data[3]),
		SAK:  data[4],
	}, nil
}

// ReleaseTarget releases the currently activated target so it can be
// re-detected or removed cleanly.
func (d *Device) ReleaseTarget() error {
	data, err := d.callFunction(cmdInRelease, []byte{0x01}, 1)
	if err != nil {
		return err
	}
	if data[0] != 0x00 {
		return &CardError{Command: "InRelease", Code: data[0]}
	}
	return nil
}

// DataExchange sends a raw card command to the activated target through
// InDataExchange and returns the card's reply. The leading device status
// byte is checked and stripped; a non-zero status surfaces as a CardError.
func (d *Device) DataExchange(data []byte) ([]byte, error) {
	// Target number 1: the only target DetectTarget ever activates.
	params := make([]byte, 0, len(data)+1)
	params = append(params, 0x01)
	params = append(params, data...)

	resp, err := d.callFunction(cmdInDataExchange, params, -1)
	if err != nil {
		return nil, err
	}
	if resp[0] != 0x00 {
		return nil, &CardError{Command: "InDataExchange", Code: resp[0]}
	}
	return resp[1:], nil
}
