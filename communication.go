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

	"github.com/cesco345/pi-interfaces/internal/frame"
)

// callFunction drives one complete command/response exchange:
//
//	send frame -> wait ready -> read ACK -> wait ready -> read response
//
// It is strictly single-attempt. On a write failure the transport gets one
// Wake nudge and the error is returned; all retry policy lives with the
// caller (see Retry). respLen is an upper bound on the returned data, not
// an expectation: the device-declared frame length decides how much is read
// and anything beyond respLen is trimmed.
func (d *Device) callFunction(cmd byte, params []byte, respLen int) ([]byte, error) {
	spec, ok := commandTable[cmd]
	if !ok {
		return nil, fmt.Errorf("%w: unknown command 0x%02X", ErrInvalidParameter, cmd)
	}

	raw, err := frame.Build(frame.HostToPn532, cmd, params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", spec.name, ErrDataTooLarge)
	}
	debugFrame(spec.name+" TX", raw)

	if err := d.transport.Write(raw); err != nil {
		// One out-of-band nudge so the next caller attempt starts from a
		// responsive chip. The engine itself does not loop.
		_ = d.transport.Wake()
		return nil, &TransportError{
			Op:        spec.name,
			Err:       fmt.Errorf("%w: %w", ErrTransportWrite, err),
			Retryable: true,
		}
	}

	if !d.transport.WaitReady(d.config.Timeout) {
		return nil, &TimeoutError{Phase: "ack"}
	}

	ack, err := d.transport.ReadExact(frame.AckLength, d.config.Timeout)
	if err != nil {
		return nil, &TransportError{
			Op:        spec.name + " ack",
			Err:       fmt.Errorf("%w: %w", ErrTransportRead, err),
			Retryable: true,
		}
	}
	if !frame.IsAck(ack) {
		debugFrame(spec.name+" bad ack", ack)
		return nil, fmt.Errorf("%s: %w", spec.name, ErrNoACK)
	}

	if !d.transport.WaitReady(d.config.Timeout) {
		return nil, &TimeoutError{Phase: "response"}
	}

	payload, err := d.readResponse(spec.name)
	if err != nil {
		return nil, err
	}
	debugFrame(spec.name+" RX", payload)

	// Direction byte and command echo precede the data.
	if payload[0] != frame.Pn532ToHost {
		return nil, fmt.Errorf("%s: %w: direction byte 0x%02X", spec.name, ErrInvalidResponse, payload[0])
	}
	if payload[1] != cmd+1 {
		return nil, fmt.Errorf("%s: %w: response code 0x%02X", spec.name, ErrInvalidResponse, payload[1])
	}

	data := payload[2:]
	if len(data) < spec.minResponse {
		return nil, fmt.Errorf("%s: %w: got %d bytes, need %d",
			spec.name, ErrInvalidResponse, len(data), spec.minResponse)
	}
	if respLen >= 0 && len(data) > respLen {
		data = data[:respLen]
	}

	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// readResponse reads and validates one response frame. The header is read
// and validated on its own before the body so a corrupt length field never
// drives an oversized read. Returns the payload: TFI, command echo, data.
func (d *Device) readResponse(op string) ([]byte, error) {
	header, err := d.transport.ReadExact(frame.HeaderLength, d.config.Timeout)
	if err != nil {
		return nil, &TransportError{
			Op:        op + " header",
			Err:       fmt.Errorf("%w: %w", ErrTransportRead, err),
			Retryable: true,
		}
	}
	if header[0] != frame.Preamble || header[1] != frame.StartCode1 || header[2] != frame.StartCode2 {
		debugFrame(op+" bad header", header)
		return nil, fmt.Errorf("%s: %w: bad start marker", op, ErrFrameCorrupted)
	}

	lenBytes, err := d.transport.ReadExact(2, d.config.Timeout)
	if err != nil {
		return nil, &TransportError{
			Op:        op + " length",
			Err:       fmt.Errorf("%w: %w", ErrTransportRead, err),
			Retryable: true,
		}
	}
	if lenBytes[0]+lenBytes[1] != 0 {
		return nil, fmt.Errorf("%s: %w: length checksum", op, ErrFrameCorrupted)
	}

	length := int(lenBytes[0])
	if length < 2 {
		return nil, fmt.Errorf("%s: %w: declared length %d", op, ErrInvalidResponse, length)
	}

	// Payload, data checksum and postamble.
	body, err := d.transport.ReadExact(length+2, d.config.Timeout)
	if err != nil {
		return nil, &TransportError{
			Op:        op + " body",
			Err:       fmt.Errorf("%w: %w", ErrTransportRead, err),
			Retryable: true,
		}
	}
	if frame.ValidateChecksum(body[:length+1]) {
		return nil, fmt.Errorf("%s: %w", op, ErrChecksumMismatch)
	}

	return body[:length], nil
}

// SendRawCommand sends a cataloged command with raw parameter bytes and
// returns up to respLen bytes of decoded response data. Intended for
// diagnostics and tooling; the typed methods are the normal surface.
func (d *Device) SendRawCommand(cmd byte, params []byte, respLen int) ([]byte, error) {
	return d.callFunction(cmd, params, respLen)
}
