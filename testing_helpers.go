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
	"time"

	"github.com/cesco345/pi-interfaces/internal/frame"
)

// MockTransport is a scripted Transport for tests. Reads are served from a
// byte stream primed with QueueAck/QueueResponse/QueueRaw; writes, wake
// calls and ready polls are recorded for assertions.
type MockTransport struct {
	WriteErr   error
	ReadErr    error
	readStream bytes.Buffer
	Writes     [][]byte
	readyQueue []bool
	WakeCalls  int
	Closed     bool
}

// NewMockTransport creates an empty mock transport.
func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// QueueRaw appends raw bytes to the read stream.
func (m *MockTransport) QueueRaw(data []byte) {
	m.readStream.Write(data)
}

// QueueAck appends the fixed ACK frame to the read stream.
func (m *MockTransport) QueueAck() {
	m.readStream.Write(frame.AckFrame)
}

// QueueResponse appends a well-formed response frame for cmd carrying data.
func (m *MockTransport) QueueResponse(cmd byte, data []byte) {
	raw, err := frame.Build(frame.Pn532ToHost, cmd+1, data)
	if err != nil {
		panic("pn532: QueueResponse: " + err.Error())
	}
	m.readStream.Write(raw)
}

// QueueExchange appends an ACK plus a response frame, the bytes one whole
// successful command produces on the wire.
func (m *MockTransport) QueueExchange(cmd byte, data []byte) {
	m.QueueAck()
	m.QueueResponse(cmd, data)
}

// SetReady scripts the results of successive WaitReady calls. With no
// script WaitReady reports true whenever read bytes are pending.
func (m *MockTransport) SetReady(results ...bool) {
	m.readyQueue = append(m.readyQueue, results...)
}

// Write records data sent to the device.
func (m *MockTransport) Write(data []byte) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Writes = append(m.Writes, append([]byte(nil), data...))
	return nil
}

// ReadExact serves n bytes from the scripted read stream.
func (m *MockTransport) ReadExact(n int, _ time.Duration) ([]byte, error) {
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	if m.readStream.Len() < n {
		return nil, ErrTransportRead
	}
	buf := make([]byte, n)
	_, _ = m.readStream.Read(buf)
	return buf, nil
}

// WaitReady pops the scripted result, or reports pending read bytes.
func (m *MockTransport) WaitReady(_ time.Duration) bool {
	if len(m.readyQueue) > 0 {
		ready := m.readyQueue[0]
		m.readyQueue = m.readyQueue[1:]
		return ready
	}
	return m.readStream.Len() > 0
}

// Wake records the wake call.
func (m *MockTransport) Wake() error {
	m.WakeCalls++
	return nil
}

// Close marks the transport closed.
func (m *MockTransport) Close() error {
	m.Closed = true
	return nil
}

// IsConnected reports true until Close is called.
func (m *MockTransport) IsConnected() bool {
	return !m.Closed
}

// Type returns the mock transport type.
func (*MockTransport) Type() TransportType {
	return TransportMock
}
