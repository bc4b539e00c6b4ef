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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirmwareVersion(t *testing.T) {
	t.Parallel()

	device, mock := newTestDevice(t)
	mock.QueueExchange(cmdGetFirmwareVersion, []byte{0x32, 0x01, 0x06, 0x07})

	fw, err := device.FirmwareVersion()
	require.NoError(t, err)

	assert.Equal(t, byte(0x32), fw.IC)
	assert.Equal(t, byte(0x01), fw.Version)
	assert.Equal(t, byte(0x06), fw.Revision)
	assert.Equal(t, "1.6", fw.String())
	assert.True(t, fw.SupportsIso14443a())
	assert.True(t, fw.SupportsIso14443b())
	assert.True(t, fw.SupportsIso18092())
}

func TestFirmwareVersion_SupportFlags(t *testing.T) {
	t.Parallel()

	fw := &FirmwareVersion{Support: 0x01}
	assert.True(t, fw.SupportsIso14443a())
	assert.False(t, fw.SupportsIso14443b())
	assert.False(t, fw.SupportsIso18092())
}

func TestGeneralStatus(t *testing.T) {
	t.Parallel()

	device, mock := newTestDevice(t)
	mock.QueueExchange(cmdGetGeneralStatus, []byte{0x00, 0x01, 0x01, 0x00})

	status, err := device.GeneralStatus()
	require.NoError(t, err)

	assert.Equal(t, byte(0x00), status.LastError)
	assert.True(t, status.FieldPresent)
	assert.Equal(t, byte(0x01), status.Targets)
}

func TestDiagnoseCommunication(t *testing.T) {
	t.Parallel()

	probe := []byte{0x11, 0x22, 0x33}

	t.Run("echo_matches", func(t *testing.T) {
		t.Parallel()

		device, mock := newTestDevice(t)
		mock.QueueExchange(cmdDiagnose, append([]byte{0x00}, probe...))

		require.NoError(t, device.DiagnoseCommunication(probe))
	})

	t.Run("echo_mismatch", func(t *testing.T) {
		t.Parallel()

		device, mock := newTestDevice(t)
		mock.QueueExchange(cmdDiagnose, []byte{0x00, 0x11, 0x22, 0xFF})

		err := device.DiagnoseCommunication(probe)
		require.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("empty_probe_rejected", func(t *testing.T) {
		t.Parallel()

		device, mock := newTestDevice(t)
		err := device.DiagnoseCommunication(nil)
		require.ErrorIs(t, err, ErrInvalidParameter)
		assert.Empty(t, mock.Writes)
	})
}
