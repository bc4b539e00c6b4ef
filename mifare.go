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

// MIFARE Classic card commands, sent through InDataExchange.
const (
	mifareCmdAuthA = 0x60
	mifareCmdAuthB = 0x61
	mifareCmdRead  = 0x30
	mifareCmdWrite = 0xA0
)

// MIFARE Classic memory layout
const (
	// MIFAREBlockSize is the fixed data unit of a MIFARE Classic block.
	MIFAREBlockSize = 16
	// MIFAREKeySize is the length of an authentication key.
	MIFAREKeySize = 6
)

// MIFAREKeyType selects which of the two sector keys to authenticate with.
type MIFAREKeyType byte

const (
	// MIFAREKeyA authenticates with key A.
	MIFAREKeyA MIFAREKeyType = iota
	// MIFAREKeyB authenticates with key B.
	MIFAREKeyB
)

// MIFAREDefaultKey is the transport key blank cards ship with.
var MIFAREDefaultKey = []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}

// AuthenticateBlock authenticates one MIFARE Classic block with the given
// key. The UID of the activated target is required by the card's crypto
// handshake. Authentication holds for the whole sector until the card
// leaves the field or another sector is authenticated.
func (d *Device) AuthenticateBlock(uid []byte, block byte, keyType MIFAREKeyType, key []byte) error {
	if len(key) != MIFAREKeySize {
		return fmt.Errorf("%w: key must be %d bytes, got %d", ErrInvalidParameter, MIFAREKeySize, len(key))
	}
	if len(uid) == 0 || len(uid) > maxUIDLength {
		return fmt.Errorf("%w: UID must be 1-%d bytes, got %d", ErrInvalidParameter, maxUIDLength, len(uid))
	}

	authCmd := byte(mifareCmdAuthA)
	if keyType == MIFAREKeyB {
		authCmd = mifareCmdAuthB
	}

	params := make([]byte, 0, 2+MIFAREKeySize+len(uid))
	params = append(params, authCmd, block)
	params = append(params, key...)
	params = append(params, uid...)

	_, err := d.DataExchange(params)
	return err
}

// ReadBlock reads one 16-byte MIFARE Classic block. The block's sector must
// have been authenticated first.
func (d *Device) ReadBlock(block byte) ([]byte, error) {
	data, err := d.DataExchange([]byte{mifareCmdRead, block})
	if err != nil {
		return nil, err
	}
	if len(data) < MIFAREBlockSize {
		return nil, fmt.Errorf("ReadBlock: %w: got %d bytes", ErrInvalidResponse, len(data))
	}
	return data[:MIFAREBlockSize], nil
}

// WriteBlock writes one 16-byte MIFARE Classic block. The data length must
// match the block size exactly; anything else is rejected before the
// transport is touched.
func (d *Device) WriteBlock(block byte, data []byte) error {
	if len(data) != MIFAREBlockSize {
		return fmt.Errorf("%w: block data must be %d bytes, got %d",
			ErrInvalidParameter, MIFAREBlockSize, len(data))
	}

	params := make([]byte, 0, 2+MIFAREBlockSize)
	params = append(params, mifareCmdWrite, block)
	params = append(params, data...)

	_, err := d.DataExchange(params)
	return err
}

// ReadMIFAREBlock authenticates and reads a block in one call.
func (d *Device) ReadMIFAREBlock(target *Target, block byte, keyType MIFAREKeyType, key []byte) ([]byte, error) {
	if target == nil {
		return nil, fmt.Errorf("%w: nil target", ErrInvalidParameter)
	}
	if err := d.AuthenticateBlock(target.UID, block, keyType, key); err != nil {
		return nil, err
	}
	return d.ReadBlock(block)
}

// WriteMIFAREBlock authenticates and writes a block in one call.
func (d *Device) WriteMIFAREBlock(target *Target, block byte, keyType MIFAREKeyType, key, data []byte) error {
	if target == nil {
		return fmt.Errorf("%w: nil target", ErrInvalidParameter)
	}
	// Validate before authenticating so a bad payload costs no I/O.
	if len(data) != MIFAREBlockSize {
		return fmt.Errorf("%w: block data must be %d bytes, got %d",
			ErrInvalidParameter, MIFAREBlockSize, len(data))
	}
	if err := d.AuthenticateBlock(target.UID, block, keyType, key); err != nil {
		return err
	}
	return d.WriteBlock(block, data)
}
