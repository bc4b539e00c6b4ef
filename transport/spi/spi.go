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

// Package spi provides the clocked-bus transport for the PN532.
package spi

import (
	"fmt"
	"time"

	pn532 "github.com/cesco345/pi-interfaces"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// SPI selector bytes. Every host transaction opens with one of these so
// the chip knows whether the master wants its status, wants to push a
// frame or wants to pull one.
const (
	spiStatusRead = 0x02
	spiDataWrite  = 0x01
	spiDataRead   = 0x03

	// statusReady is the ready bit of the status byte.
	statusReady = 0x01
)

const (
	defaultFreq  = 1 * physic.MegaHertz
	spiMode      = spi.Mode0
	pollInterval = 5 * time.Millisecond
)

// Transport implements the pn532.Transport capability over an SPI bus.
// The PN532 shifts bits LSB first while periph connections are MSB first,
// so every byte crossing the bus is bit-reversed here.
type Transport struct {
	port     spi.PortCloser
	conn     spi.Conn
	portName string
}

// New initializes the periph host, opens the named SPI port and connects
// at the chip's supported clock.
func New(portName string) (*Transport, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph host: %w", err)
	}

	port, err := spireg.Open(portName)
	if err != nil {
		return nil, fmt.Errorf("failed to open SPI port %s: %w", portName, err)
	}

	conn, err := port.Connect(defaultFreq, spiMode, 8)
	if err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("failed to connect SPI: %w", err)
	}

	return &Transport{port: port, conn: conn, portName: portName}, nil
}

// NewFromConn wraps an established SPI connection. Tests inject a
// playback connection through here.
func NewFromConn(conn spi.Conn, portName string) *Transport {
	return &Transport{conn: conn, portName: portName}
}

// reverseBit mirrors the bits of one byte (LSB <-> MSB).
func reverseBit(b byte) byte {
	var out byte
	for i := 0; i < 8; i++ {
		out <<= 1
		out |= b & 1
		b >>= 1
	}
	return out
}

func reverseBytes(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = reverseBit(b)
	}
	return out
}

// Write pushes a frame prefixed with the Data Write selector.
func (t *Transport) Write(data []byte) error {
	if t.conn == nil {
		return fmt.Errorf("spi %s: %w", t.portName, pn532.ErrTransportClosed)
	}

	tx := make([]byte, 0, len(data)+1)
	tx = append(tx, spiDataWrite)
	tx = append(tx, data...)
	if err := t.conn.Tx(reverseBytes(tx), nil); err != nil {
		return fmt.Errorf("spi %s: %w: %w", t.portName, pn532.ErrTransportWrite, err)
	}
	return nil
}

// ReadExact clocks out n frame bytes in one transaction opened with the
// Data Read selector. The selector echo slot is discarded. The bus is
// master-clocked, so the timeout has no role here; readiness is settled
// by WaitReady beforehand.
func (t *Transport) ReadExact(n int, _ time.Duration) ([]byte, error) {
	if t.conn == nil {
		return nil, fmt.Errorf("spi %s: %w", t.portName, pn532.ErrTransportClosed)
	}

	tx := make([]byte, n+1)
	tx[0] = reverseBit(spiDataRead)
	rx := make([]byte, n+1)
	if err := t.conn.Tx(tx, rx); err != nil {
		return nil, fmt.Errorf("spi %s: %w: %w", t.portName, pn532.ErrTransportRead, err)
	}
	return reverseBytes(rx[1:]), nil
}

// WaitReady exchanges Status Read transactions until the ready bit is set
// or the timeout elapses.
func (t *Transport) WaitReady(timeout time.Duration) bool {
	if t.conn == nil {
		return false
	}

	tx := []byte{reverseBit(spiStatusRead), 0x00}
	rx := make([]byte, 2)
	deadline := time.Now().Add(timeout)
	for {
		if err := t.conn.Tx(tx, rx); err == nil && reverseBit(rx[1])&statusReady != 0 {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(pollInterval)
	}
}

// Wake clocks a dummy byte with chip select asserted; the select edge
// plus a settle delay is what wakes the chip on SPI.
func (t *Transport) Wake() error {
	if t.conn == nil {
		return fmt.Errorf("spi %s: %w", t.portName, pn532.ErrTransportClosed)
	}
	time.Sleep(1 * time.Millisecond)
	if err := t.conn.Tx([]byte{0x00}, nil); err != nil {
		return fmt.Errorf("spi %s: wake: %w", t.portName, err)
	}
	time.Sleep(1 * time.Millisecond)
	return nil
}

// Close releases the port.
func (t *Transport) Close() error {
	t.conn = nil
	if t.port == nil {
		return nil
	}
	port := t.port
	t.port = nil
	if err := port.Close(); err != nil {
		return fmt.Errorf("spi %s: close: %w", t.portName, err)
	}
	return nil
}

// IsConnected returns true while the connection is usable.
func (t *Transport) IsConnected() bool {
	return t.conn != nil
}

// Type returns the transport type.
func (*Transport) Type() pn532.TransportType {
	return pn532.TransportSPI
}
