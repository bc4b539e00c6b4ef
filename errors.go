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
	"errors"
	"fmt"
)

// Error categories, grouped by how a caller should react. Transport and
// timeout errors are worth a retry after Wake; protocol errors usually mean
// bus noise or desync and want a device reset first; card and parameter
// errors are never retried.
var (
	// Transport errors - retryable after a wake
	ErrTransportWrite   = errors.New("transport write failed")
	ErrTransportRead    = errors.New("transport read failed")
	ErrTransportTimeout = errors.New("transport timeout")
	ErrTransportClosed  = errors.New("transport is closed")

	// Protocol errors - bus noise or desync, reset recommended
	ErrNoACK            = errors.New("no valid ACK received")
	ErrFrameCorrupted   = errors.New("frame corrupted")
	ErrChecksumMismatch = errors.New("checksum mismatch")
	ErrInvalidResponse  = errors.New("invalid response format")

	// Target errors - surfaced to the caller, not retried automatically
	ErrNoTargetDetected = errors.New("no target detected")
	ErrTooManyTargets   = errors.New("more than one target detected")
	ErrUIDTooLong       = errors.New("target UID longer than 7 bytes")
	ErrCardOperation    = errors.New("card operation rejected")

	// Parameter errors - rejected before any I/O, never retried
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrDataTooLarge     = errors.New("data too large for one frame")
)

// TransportError wraps a bus-level failure with the operation and port that
// produced it.
type TransportError struct {
	Err       error
	Op        string
	Port      string
	Retryable bool
}

func (e *TransportError) Error() string {
	if e.Port != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Port, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// TimeoutError reports that the device did not become ready within the
// caller-supplied window. Phase distinguishes a missing ACK (device absent
// or frame lost) from a missing response (device slow to compute).
type TimeoutError struct {
	Phase string // "ack" or "response"
	Port  string
}

func (e *TimeoutError) Error() string {
	if e.Port != "" {
		return fmt.Sprintf("timeout waiting for %s on %s", e.Phase, e.Port)
	}
	return fmt.Sprintf("timeout waiting for %s", e.Phase)
}

func (*TimeoutError) Unwrap() error {
	return ErrTransportTimeout
}

// CardError reports that the device understood the command frame but the
// target rejected the operation. Code is the raw status byte from the
// device; see the PN532 user manual section 7.1.
type CardError struct {
	Command string
	Code    byte
}

func (e *CardError) Error() string {
	return fmt.Sprintf("%s failed with status 0x%02X (%s)", e.Command, e.Code, statusCodeMeaning(e.Code))
}

func (*CardError) Unwrap() error {
	return ErrCardOperation
}

// statusCodeMeaning returns a human-readable meaning for PN532 status codes.
func statusCodeMeaning(code byte) string {
	switch code {
	case 0x00:
		return "success"
	case 0x01:
		return "timeout"
	case 0x02:
		return "CRC error"
	case 0x03:
		return "parity error"
	case 0x04:
		return "erroneous bit count during anti-collision"
	case 0x05:
		return "framing error during MIFARE operation"
	case 0x06:
		return "abnormal bit collision"
	case 0x07:
		return "communication buffer size insufficient"
	case 0x09:
		return "RF buffer overflow"
	case 0x0A:
		return "RF field not activated in time"
	case 0x0B:
		return "RF protocol error"
	case 0x0D:
		return "overheating"
	case 0x0E:
		return "internal buffer overflow"
	case 0x10:
		return "invalid parameter"
	case 0x13:
		return "wrong data format"
	case 0x14:
		return "authentication error"
	case 0x23:
		return "wrong UID check byte"
	case 0x25:
		return "invalid device state"
	case 0x26:
		return "operation not allowed"
	case 0x27:
		return "command not acceptable in current context"
	case 0x29:
		return "target released by initiator"
	case 0x2A:
		return "card ID does not match"
	case 0x2B:
		return "card previously activated has disappeared"
	case 0x2F:
		return "deselected by initiator"
	case 0x31:
		return "target busy"
	default:
		return "unknown error"
	}
}

// IsRetryable reports whether the error class is worth another attempt at
// the caller level. Card rejections and parameter errors never are.
func IsRetryable(err error) bool {
	var terr *TransportError
	if errors.As(err, &terr) {
		return terr.Retryable
	}
	switch {
	case errors.Is(err, ErrTransportTimeout),
		errors.Is(err, ErrTransportWrite),
		errors.Is(err, ErrTransportRead),
		errors.Is(err, ErrNoACK),
		errors.Is(err, ErrFrameCorrupted),
		errors.Is(err, ErrChecksumMismatch):
		return true
	default:
		return false
	}
}
