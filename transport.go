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

import "time"

// Transport is the capability the protocol engine requires from a physical
// bus. Implementations exist for UART, I2C and SPI; each hides its own
// framing quirks (status selectors, ready bits, bit order) behind these
// methods so the engine can stay bus-agnostic.
//
// A Transport is owned by exactly one Device. None of the methods are safe
// for concurrent use.
type Transport interface {
	// Write sends raw frame bytes to the device.
	Write(data []byte) error

	// ReadExact reads exactly n frame bytes, blocking up to timeout.
	// Bus-level envelope bytes (SPI read selector, I2C status byte) are
	// consumed internally and not counted.
	ReadExact(n int, timeout time.Duration) ([]byte, error)

	// WaitReady polls until the device signals it has data ready, or the
	// timeout elapses. How readiness is detected is bus-specific: a status
	// byte exchange on SPI, the ready bit on I2C, bytes-available on UART.
	WaitReady(timeout time.Duration) bool

	// Wake sends the bus-specific out-of-band nudge used to bring the
	// device out of power-down or to recover from a failed exchange.
	Wake() error

	// Close releases the bus handle.
	Close() error

	// IsConnected returns true if the transport is usable.
	IsConnected() bool

	// Type returns the transport type.
	Type() TransportType
}

// TransportType represents the type of transport.
type TransportType string

const (
	// TransportUART represents UART/serial transport.
	TransportUART TransportType = "uart"
	// TransportI2C represents I2C bus transport.
	TransportI2C TransportType = "i2c"
	// TransportSPI represents SPI bus transport.
	TransportSPI TransportType = "spi"
	// TransportMock represents a mock transport for testing.
	TransportMock TransportType = "mock"
)
