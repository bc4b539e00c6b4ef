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
	"fmt"
	"time"
)

// DeviceConfig contains configuration options for the Device.
type DeviceConfig struct {
	// Timeout is the default per-phase wait applied to the ACK and
	// response polls of each command.
	Timeout time.Duration
	// RetryConfig is the policy handed to Retry by the convenience
	// wrappers. The engine itself never retries.
	RetryConfig *RetryConfig
}

// DefaultDeviceConfig returns default device configuration.
func DefaultDeviceConfig() *DeviceConfig {
	return &DeviceConfig{
		Timeout:     1 * time.Second,
		RetryConfig: DefaultRetryConfig(),
	}
}

// Device represents one PN532 session over an open transport.
//
// Thread safety: Device is NOT thread-safe. The protocol is strictly
// half-duplex with one command in flight at a time; wrap the Device with a
// mutex or a single worker if concurrent callers are required.
type Device struct {
	transport Transport
	config    *DeviceConfig
}

// New creates a Device over an already-open transport.
func New(transport Transport, opts ...Option) (*Device, error) {
	device := &Device{
		transport: transport,
		config:    DefaultDeviceConfig(),
	}

	for _, opt := range opts {
		if err := opt(device); err != nil {
			return nil, err
		}
	}

	return device, nil
}

// Init wakes the chip, verifies it answers a firmware query and puts the
// SAM into normal mode so passive targets can be read. Call once after New.
func (d *Device) Init() error {
	if err := d.transport.Wake(); err != nil {
		return fmt.Errorf("wake failed: %w", err)
	}

	if _, err := d.FirmwareVersion(); err != nil {
		return fmt.Errorf("failed to detect the PN532: %w", err)
	}

	if err := d.SAMConfiguration(SAMModeNormal); err != nil {
		return fmt.Errorf("SAM configuration failed: %w", err)
	}

	return nil
}

// Wakeup sends the transport's out-of-band wake sequence. Used by retry
// policies between attempts.
func (d *Device) Wakeup() error {
	return d.transport.Wake()
}

// Timeout returns the configured per-phase timeout.
func (d *Device) Timeout() time.Duration {
	return d.config.Timeout
}

// RetryConfig returns the configured retry policy.
func (d *Device) RetryConfig() *RetryConfig {
	return d.config.RetryConfig
}

// Type returns the type of the underlying transport.
func (d *Device) Type() TransportType {
	return d.transport.Type()
}

// Close releases the underlying transport.
func (d *Device) Close() error {
	if err := d.transport.Close(); err != nil {
		return fmt.Errorf("failed to close transport: %w", err)
	}
	return nil
}
