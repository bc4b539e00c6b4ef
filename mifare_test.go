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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTarget = &Target{
	UID:  []byte{0xDE, 0xAD, 0xBE, 0xEF},
	ATQA: 0x0004,
	SAK:  0x08,
}

func TestAuthenticateBlock(t *testing.T) {
	t.Parallel()

	device, mock := newTestDevice(t)
	mock.QueueExchange(cmdInDataExchange, []byte{0x00})

	err := device.AuthenticateBlock(testTarget.UID, 4, MIFAREKeyA, MIFAREDefaultKey)
	require.NoError(t, err)

	// InDataExchange carries: target 1, auth A, block, key, UID.
	want := []byte{0xD4, 0x40, 0x01, 0x60, 0x04}
	want = append(want, MIFAREDefaultKey...)
	want = append(want, testTarget.UID...)
	assert.Equal(t, want, mock.Writes[0][5:5+len(want)])
}

func TestAuthenticateBlock_KeyB(t *testing.T) {
	t.Parallel()

	device, mock := newTestDevice(t)
	mock.QueueExchange(cmdInDataExchange, []byte{0x00})

	err := device.AuthenticateBlock(testTarget.UID, 7, MIFAREKeyB, MIFAREDefaultKey)
	require.NoError(t, err)
	assert.Equal(t, byte(0x61), mock.Writes[0][8], "key B uses the 0x61 auth opcode")
}

func TestAuthenticateBlock_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		uid  []byte
		key  []byte
	}{
		{name: "short_key", uid: testTarget.UID, key: []byte{0xFF, 0xFF}},
		{name: "empty_uid", uid: nil, key: MIFAREDefaultKey},
		{name: "oversized_uid", uid: bytes.Repeat([]byte{0x01}, 8), key: MIFAREDefaultKey},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			device, mock := newTestDevice(t)
			err := device.AuthenticateBlock(tt.uid, 4, MIFAREKeyA, tt.key)
			require.ErrorIs(t, err, ErrInvalidParameter)
			assert.Empty(t, mock.Writes, "validation failures must not reach the transport")
		})
	}
}

func TestAuthenticateBlock_WrongKey(t *testing.T) {
	t.Parallel()

	device, mock := newTestDevice(t)
	mock.QueueExchange(cmdInDataExchange, []byte{0x14})

	err := device.AuthenticateBlock(testTarget.UID, 4, MIFAREKeyA, MIFAREDefaultKey)

	var cardErr *CardError
	require.ErrorAs(t, err, &cardErr)
	assert.Equal(t, byte(0x14), cardErr.Code)
}

func TestReadBlock(t *testing.T) {
	t.Parallel()

	block := bytes.Repeat([]byte{0xA5}, MIFAREBlockSize)

	device, mock := newTestDevice(t)
	mock.QueueExchange(cmdInDataExchange, append([]byte{0x00}, block...))

	data, err := device.ReadBlock(4)
	require.NoError(t, err)
	assert.Equal(t, block, data)
}

func TestReadBlock_ShortData(t *testing.T) {
	t.Parallel()

	device, mock := newTestDevice(t)
	mock.QueueExchange(cmdInDataExchange, []byte{0x00, 0x01, 0x02})

	_, err := device.ReadBlock(4)
	require.ErrorIs(t, err, ErrInvalidResponse)
}

func TestWriteBlock_SizeValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		size int
	}{
		{name: "empty", size: 0},
		{name: "short", size: 15},
		{name: "long", size: 17},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			device, mock := newTestDevice(t)
			err := device.WriteBlock(4, make([]byte, tt.size))
			require.ErrorIs(t, err, ErrInvalidParameter)
			assert.Empty(t, mock.Writes)
		})
	}
}

func TestReadMIFAREBlock(t *testing.T) {
	t.Parallel()

	block := bytes.Repeat([]byte{0x5A}, MIFAREBlockSize)

	device, mock := newTestDevice(t)
	mock.QueueExchange(cmdInDataExchange, []byte{0x00})                   // auth
	mock.QueueExchange(cmdInDataExchange, append([]byte{0x00}, block...)) // read

	data, err := device.ReadMIFAREBlock(testTarget, 4, MIFAREKeyA, MIFAREDefaultKey)
	require.NoError(t, err)
	assert.Equal(t, block, data)
	assert.Len(t, mock.Writes, 2)
}

func TestWriteMIFAREBlock_BadPayloadCostsNoIO(t *testing.T) {
	t.Parallel()

	device, mock := newTestDevice(t)

	err := device.WriteMIFAREBlock(testTarget, 4, MIFAREKeyA, MIFAREDefaultKey, []byte{0x01})
	require.ErrorIs(t, err, ErrInvalidParameter)
	assert.Empty(t, mock.Writes, "size check must run before authentication")
}

func TestWriteMIFAREBlock(t *testing.T) {
	t.Parallel()

	block := bytes.Repeat([]byte{0x11}, MIFAREBlockSize)

	device, mock := newTestDevice(t)
	mock.QueueExchange(cmdInDataExchange, []byte{0x00}) // auth
	mock.QueueExchange(cmdInDataExchange, []byte{0x00}) // write

	require.NoError(t, device.WriteMIFAREBlock(testTarget, 4, MIFAREKeyA, MIFAREDefaultKey, block))
	require.Len(t, mock.Writes, 2)
	assert.Equal(t, byte(0xA0), mock.Writes[1][8], "second frame carries the write opcode")
}
