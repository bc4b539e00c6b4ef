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

// Package i2c provides the register-addressed bus transport for the PN532.
package i2c

import (
	"fmt"
	"time"

	pn532 "github.com/cesco345/pi-interfaces"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

const (
	// pn532Addr is the chip's fixed 7-bit I2C address.
	pn532Addr = 0x24
	// statusReady is the ready bit in the status byte every read returns.
	statusReady = 0x01

	maxClockFreq = 400 * physic.KiloHertz
	pollInterval = 5 * time.Millisecond
)

// Transport implements the pn532.Transport capability over an I2C bus.
// The PN532 prefixes every read transaction with a status byte whose low
// bit says whether response data is ready; ReadExact strips it so the
// engine only ever sees frame bytes.
type Transport struct {
	dev     *i2c.Dev
	bus     i2c.BusCloser
	busName string
}

// New initializes the periph host, opens the named I2C bus and returns a
// transport talking to the PN532 on it.
func New(busName string) (*Transport, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph host: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("failed to open I2C bus %s: %w", busName, err)
	}

	// Best effort; the bus works at its default speed too.
	_ = bus.SetSpeed(maxClockFreq)

	t := newFromBus(bus, busName)
	t.bus = bus
	return t, nil
}

// newFromBus wires a transport to any i2c.Bus. Tests inject a playback
// bus through here.
func newFromBus(bus i2c.Bus, busName string) *Transport {
	return &Transport{
		dev:     &i2c.Dev{Addr: pn532Addr, Bus: bus},
		busName: busName,
	}
}

// Write sends raw frame bytes in one bus transaction.
func (t *Transport) Write(data []byte) error {
	if t.dev == nil {
		return fmt.Errorf("i2c %s: %w", t.busName, pn532.ErrTransportClosed)
	}
	if err := t.dev.Tx(data, nil); err != nil {
		return fmt.Errorf("i2c %s: %w: %w", t.busName, pn532.ErrTransportWrite, err)
	}
	return nil
}

// ReadExact reads n frame bytes plus the leading status byte, which is
// stripped. Called after WaitReady, so a clear ready bit here means the
// exchange desynchronized.
func (t *Transport) ReadExact(n int, _ time.Duration) ([]byte, error) {
	if t.dev == nil {
		return nil, fmt.Errorf("i2c %s: %w", t.busName, pn532.ErrTransportClosed)
	}

	buf := make([]byte, n+1)
	if err := t.dev.Tx(nil, buf); err != nil {
		return nil, fmt.Errorf("i2c %s: %w: %w", t.busName, pn532.ErrTransportRead, err)
	}
	if buf[0]&statusReady == 0 {
		return nil, fmt.Errorf("i2c %s: %w: device not ready", t.busName, pn532.ErrTransportRead)
	}
	return buf[1:], nil
}

// WaitReady polls the status byte until its ready bit is set or the
// timeout elapses.
func (t *Transport) WaitReady(timeout time.Duration) bool {
	if t.dev == nil {
		return false
	}

	deadline := time.Now().Add(timeout)
	status := make([]byte, 1)
	for {
		if err := t.dev.Tx(nil, status); err == nil && status[0]&statusReady != 0 {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(pollInterval)
	}
}

// Wake clocks the chip's address with a dummy status read. Address
// recognition alone brings the PN532 out of power-down on I2C; the result
// byte is irrelevant.
func (t *Transport) Wake() error {
	if t.dev == nil {
		return fmt.Errorf("i2c %s: %w", t.busName, pn532.ErrTransportClosed)
	}
	status := make([]byte, 1)
	_ = t.dev.Tx(nil, status)
	time.Sleep(2 * time.Millisecond)
	return nil
}

// Close releases the bus.
func (t *Transport) Close() error {
	t.dev = nil
	if t.bus == nil {
		return nil
	}
	bus := t.bus
	t.bus = nil
	if err := bus.Close(); err != nil {
		return fmt.Errorf("i2c %s: close: %w", t.busName, err)
	}
	return nil
}

// IsConnected returns true while the device handle is usable.
func (t *Transport) IsConnected() bool {
	return t.dev != nil
}

// Type returns the transport type.
func (*Transport) Type() pn532.TransportType {
	return pn532.TransportI2C
}
