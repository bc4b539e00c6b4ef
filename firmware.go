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

// FirmwareVersion is the decoded GetFirmwareVersion response.
type FirmwareVersion struct {
	IC       byte // IC identifier, 0x32 for the PN532
	Version  byte
	Revision byte
	Support  byte // supported protocols bitmap
}

// Firmware support bitmap flags
const (
	supportIso14443A = 0x01
	supportIso14443B = 0x02
	supportIso18092  = 0x04
)

// String formats the version as "major.minor".
func (f *FirmwareVersion) String() string {
	return fmt.Sprintf("%d.%d", f.Version, f.Revision)
}

// SupportsIso14443a reports ISO/IEC 14443 Type A support.
func (f *FirmwareVersion) SupportsIso14443a() bool {
	return f.Support&supportIso14443A != 0
}

// SupportsIso14443b reports ISO/IEC 14443 Type B support.
func (f *FirmwareVersion) SupportsIso14443b() bool {
	return f.Support&supportIso14443B != 0
}

// SupportsIso18092 reports ISO/IEC 18092 (NFC) support.
func (f *FirmwareVersion) SupportsIso18092() bool {
	return f.Support&supportIso18092 != 0
}

// FirmwareVersion queries the chip identity and firmware revision.
func (d *Device) FirmwareVersion() (*FirmwareVersion, error) {
	data, err := d.callFunction(cmdGetFirmwareVersion, nil, 4)
	if err != nil {
		return nil, err
	}

	return &FirmwareVersion{
		IC:       data[0],
		Version:  data[1],
		Revision: data[2],
		Support:  data[3],
	}, nil
}

// GeneralStatus is the decoded GetGeneralStatus response.
type GeneralStatus struct {
	LastError    byte
	FieldPresent bool
	Targets      byte
}

// GeneralStatus queries the chip state: last error, external RF field
// presence and the number of currently activated targets.
func (d *Device) GeneralStatus() (*GeneralStatus, error) {
	data, err := d.callFunction(cmdGetGeneralStatus, nil, 12)
	if err != nil {
		return nil, err
	}

	return &GeneralStatus{
		LastError:    data[0],
		FieldPresent: data[1] == 0x01,
		Targets:      data[2],
	}, nil
}

// DiagnoseCommunication runs the communication line test: the supplied
// bytes are echoed back by the chip. A mismatch indicates an unreliable
// host link.
func (d *Device) DiagnoseCommunication(probe []byte) error {
	if len(probe) == 0 || len(probe) > 32 {
		return fmt.Errorf("%w: probe must be 1-32 bytes", ErrInvalidParameter)
	}

	params := append([]byte{0x00}, probe...) // test 0x00: communication line
	data, err := d.callFunction(cmdDiagnose, params, len(probe)+1)
	if err != nil {
		return err
	}

	if len(data) != len(probe)+1 || data[0] != 0x00 {
		return fmt.Errorf("diagnose: %w", ErrInvalidResponse)
	}
	for i, b := range probe {
		if data[i+1] != b {
			return fmt.Errorf("diagnose: %w: echo mismatch at byte %d", ErrInvalidResponse, i)
		}
	}
	return nil
}
