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

// Package uart provides the byte-serial transport for the PN532.
package uart

import (
	"fmt"
	"time"

	pn532 "github.com/cesco345/pi-interfaces"
	"go.bug.st/serial"
)

const (
	defaultBaudRate = 115200
	pollInterval    = 10 * time.Millisecond
)

// wakeSequence is the idle-line preamble that brings the chip out of
// low VBAT mode: two 0x55 bytes followed by enough zero padding for the
// wake-up guard time.
var wakeSequence = []byte{0x55, 0x55, 0x00, 0x00, 0x00, 0x00, 0x00}

// Transport implements the pn532.Transport capability over a serial port.
type Transport struct {
	port     serial.Port
	portName string
	pending  []byte
}

// New opens a serial port at the PN532's fixed 115200 8N1 and returns a
// transport over it.
func New(portName string) (*Transport, error) {
	port, err := serial.Open(portName, &serial.Mode{
		BaudRate: defaultBaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open UART port %s: %w", portName, err)
	}

	return &Transport{port: port, portName: portName}, nil
}

// NewFromPort wraps an already-open serial port. The caller keeps
// responsibility for the port's mode settings.
func NewFromPort(port serial.Port, portName string) *Transport {
	return &Transport{port: port, portName: portName}
}

// Write sends raw frame bytes. Stale input is dropped first so a response
// left over from a desynchronized exchange cannot shift this one.
func (t *Transport) Write(data []byte) error {
	if t.port == nil {
		return fmt.Errorf("uart %s: %w", t.portName, pn532.ErrTransportClosed)
	}

	t.pending = nil
	if err := t.port.ResetInputBuffer(); err != nil {
		return fmt.Errorf("uart %s: reset input: %w", t.portName, err)
	}

	n, err := t.port.Write(data)
	if err != nil {
		return fmt.Errorf("uart %s: %w: %w", t.portName, pn532.ErrTransportWrite, err)
	}
	if n != len(data) {
		return fmt.Errorf("uart %s: %w: short write %d/%d", t.portName, pn532.ErrTransportWrite, n, len(data))
	}
	return nil
}

// ReadExact reads exactly n bytes, first consuming any byte captured by
// WaitReady's lookahead.
func (t *Transport) ReadExact(n int, timeout time.Duration) ([]byte, error) {
	if t.port == nil {
		return nil, fmt.Errorf("uart %s: %w", t.portName, pn532.ErrTransportClosed)
	}

	out := make([]byte, 0, n)
	if len(t.pending) > 0 {
		take := len(t.pending)
		if take > n {
			take = n
		}
		out = append(out, t.pending[:take]...)
		t.pending = t.pending[take:]
	}

	if err := t.port.SetReadTimeout(timeout); err != nil {
		return nil, fmt.Errorf("uart %s: set timeout: %w", t.portName, err)
	}

	deadline := time.Now().Add(timeout)
	buf := make([]byte, n)
	for len(out) < n {
		read, err := t.port.Read(buf[:n-len(out)])
		if err != nil {
			return nil, fmt.Errorf("uart %s: %w: %w", t.portName, pn532.ErrTransportRead, err)
		}
		if read == 0 {
			// go.bug.st/serial signals an expired read timeout with a
			// zero-length read and nil error.
			return nil, fmt.Errorf("uart %s: %w: %d/%d bytes", t.portName, pn532.ErrTransportTimeout, len(out), n)
		}
		out = append(out, buf[:read]...)
		if time.Now().After(deadline) && len(out) < n {
			return nil, fmt.Errorf("uart %s: %w: %d/%d bytes", t.portName, pn532.ErrTransportTimeout, len(out), n)
		}
	}
	return out, nil
}

// WaitReady reports readiness as soon as a response byte is observed on
// the line. The byte is kept and served to the next ReadExact.
func (t *Transport) WaitReady(timeout time.Duration) bool {
	if t.port == nil {
		return false
	}
	if len(t.pending) > 0 {
		return true
	}

	if err := t.port.SetReadTimeout(pollInterval); err != nil {
		return false
	}

	deadline := time.Now().Add(timeout)
	buf := make([]byte, 1)
	for {
		read, err := t.port.Read(buf)
		if err != nil {
			return false
		}
		if read > 0 {
			t.pending = append(t.pending, buf[:read]...)
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
	}
}

// Wake sends the idle-line wake-up preamble and gives the chip its wake
// guard time before the next command.
func (t *Transport) Wake() error {
	if t.port == nil {
		return fmt.Errorf("uart %s: %w", t.portName, pn532.ErrTransportClosed)
	}
	if _, err := t.port.Write(wakeSequence); err != nil {
		return fmt.Errorf("uart %s: wake: %w", t.portName, err)
	}
	time.Sleep(2 * time.Millisecond)
	return nil
}

// Close closes the serial port.
func (t *Transport) Close() error {
	if t.port == nil {
		return nil
	}
	port := t.port
	t.port = nil
	if err := port.Close(); err != nil {
		return fmt.Errorf("uart %s: close: %w", t.portName, err)
	}
	return nil
}

// IsConnected returns true while the port is open.
func (t *Transport) IsConnected() bool {
	return t.port != nil
}

// Type returns the transport type.
func (*Transport) Type() pn532.TransportType {
	return pn532.TransportUART
}
