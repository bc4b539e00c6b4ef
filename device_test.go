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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	device, err := New(mock)
	require.NoError(t, err)

	assert.Equal(t, 1*time.Second, device.Timeout())
	assert.Equal(t, 3, device.RetryConfig().MaxAttempts)
	assert.Equal(t, TransportMock, device.Type())
}

func TestNew_Options(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		option  Option
		check   func(*testing.T, *Device)
		wantErr error
	}{
		{
			name:   "with_timeout",
			option: WithTimeout(250 * time.Millisecond),
			check: func(t *testing.T, d *Device) {
				assert.Equal(t, 250*time.Millisecond, d.Timeout())
			},
		},
		{
			name:    "zero_timeout_rejected",
			option:  WithTimeout(0),
			wantErr: ErrInvalidParameter,
		},
		{
			name:   "with_max_retries",
			option: WithMaxRetries(5),
			check: func(t *testing.T, d *Device) {
				assert.Equal(t, 5, d.RetryConfig().MaxAttempts)
			},
		},
		{
			name:   "with_retry_config",
			option: WithRetryConfig(&RetryConfig{MaxAttempts: 1}),
			check: func(t *testing.T, d *Device) {
				assert.Equal(t, 1, d.RetryConfig().MaxAttempts)
			},
		},
		{
			name:    "nil_retry_config_rejected",
			option:  WithRetryConfig(nil),
			wantErr: ErrInvalidParameter,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			device, err := New(NewMockTransport(), tt.option)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, device)
				return
			}
			require.NoError(t, err)
			tt.check(t, device)
		})
	}
}

func TestDevice_Init(t *testing.T) {
	t.Parallel()

	device, mock := newTestDevice(t)
	mock.QueueExchange(cmdGetFirmwareVersion, []byte{0x32, 0x01, 0x06, 0x07})
	mock.QueueExchange(cmdSamConfiguration, nil)

	require.NoError(t, device.Init())

	assert.Equal(t, 1, mock.WakeCalls)
	require.Len(t, mock.Writes, 2)
	// SAMConfiguration: normal mode, 1s virtual card timeout, IRQ on.
	assert.Equal(t, []byte{0xD4, 0x14, 0x01, 0x14, 0x01}, mock.Writes[1][5:10])
}

func TestDevice_Init_NoChip(t *testing.T) {
	t.Parallel()

	device, mock := newTestDevice(t)
	mock.SetReady(false) // firmware probe never becomes ready

	err := device.Init()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransportTimeout)
}

func TestDevice_Close(t *testing.T) {
	t.Parallel()

	device, mock := newTestDevice(t)
	require.NoError(t, device.Close())
	assert.True(t, mock.Closed)
	assert.False(t, mock.IsConnected())
}
