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

package frame

import (
	"bytes"
	"errors"
	"testing"
)

func TestBuildGetFirmwareVersion(t *testing.T) {
	t.Parallel()
	// Known-good frame from the PN532 user manual.
	want := []byte{0x00, 0x00, 0xFF, 0x02, 0xFE, 0xD4, 0x02, 0x2A, 0x00}
	got, err := Build(HostToPn532, 0x02, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Build() = % X, want % X", got, want)
	}
}

func TestBuildRejectsOversizedData(t *testing.T) {
	t.Parallel()
	if _, err := Build(HostToPn532, 0x40, make([]byte, MaxDataLength+1)); !errors.Is(err, ErrDataTooLarge) {
		t.Errorf("Build() error = %v, want ErrDataTooLarge", err)
	}
	// Exactly at the limit must succeed.
	if _, err := Build(HostToPn532, 0x40, make([]byte, MaxDataLength)); err != nil {
		t.Errorf("Build() at limit error = %v", err)
	}
}

// TestRoundTrip checks that Parse(Build(...)) returns the original payload
// for a spread of data lengths and contents.
func TestRoundTrip(t *testing.T) {
	t.Parallel()
	for _, n := range []int{0, 1, 2, 7, 16, 63, 128, MaxDataLength} {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i*7 + n)
		}

		raw, err := Build(HostToPn532, 0x4A, data)
		if err != nil {
			t.Fatalf("Build(len=%d) error = %v", n, err)
		}

		payload, err := Parse(raw)
		if err != nil {
			t.Fatalf("Parse(len=%d) error = %v", n, err)
		}
		if payload[0] != HostToPn532 || payload[1] != 0x4A {
			t.Fatalf("Parse(len=%d) header = % X", n, payload[:2])
		}
		if !bytes.Equal(payload[2:], data) {
			t.Errorf("Parse(len=%d) data = % X, want % X", n, payload[2:], data)
		}
	}
}

// TestParseRejectsCorruption flips every byte of a valid frame in turn and
// verifies that Parse fails each time. The postamble is excluded since it
// carries no information.
func TestParseRejectsCorruption(t *testing.T) {
	t.Parallel()
	raw, err := Build(Pn532ToHost, 0x03, []byte{0x32, 0x01, 0x06, 0x07})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	for i := 0; i < len(raw)-1; i++ {
		corrupted := append([]byte(nil), raw...)
		corrupted[i] ^= 0x40
		if _, err := Parse(corrupted); err == nil {
			t.Errorf("Parse() accepted frame with byte %d corrupted", i)
		}
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	valid, _ := Build(HostToPn532, 0x02, nil)

	tests := []struct {
		name    string
		mutate  func([]byte) []byte
		wantErr error
	}{
		{
			name:    "too short",
			mutate:  func(b []byte) []byte { return b[:4] },
			wantErr: ErrFrameTooShort,
		},
		{
			name: "bad start marker",
			mutate: func(b []byte) []byte {
				b[2] = 0xAA
				return b
			},
			wantErr: ErrBadStart,
		},
		{
			name: "bad length checksum",
			mutate: func(b []byte) []byte {
				b[4]++
				return b
			},
			wantErr: ErrBadLengthChecksum,
		},
		{
			name: "bad payload checksum",
			mutate: func(b []byte) []byte {
				b[6] ^= 0x01
				return b
			},
			wantErr: ErrBadChecksum,
		},
		{
			name: "declared length exceeds buffer",
			mutate: func(b []byte) []byte {
				b[3] = 0x20
				b[4] = LengthChecksum(0x20)
				return b
			},
			wantErr: ErrFrameTooShort,
		},
	}

	for _, tt := range tests {
		tt := tt // capture loop variable
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			raw := tt.mutate(append([]byte(nil), valid...))
			if _, err := Parse(raw); !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestIsAckExact verifies that only the exact 6-byte ACK constant is
// accepted; a difference in any single position must be rejected.
func TestIsAckExact(t *testing.T) {
	t.Parallel()
	if !IsAck(AckFrame) {
		t.Fatal("IsAck rejected the ACK constant")
	}
	if IsAck(AckFrame[:5]) {
		t.Error("IsAck accepted a truncated frame")
	}
	if IsAck(append(append([]byte(nil), AckFrame...), 0x00)) {
		t.Error("IsAck accepted an overlong frame")
	}
	for i := range AckFrame {
		mutated := append([]byte(nil), AckFrame...)
		mutated[i] ^= 0x01
		if IsAck(mutated) {
			t.Errorf("IsAck accepted frame with byte %d mutated", i)
		}
	}
}

func TestIsNack(t *testing.T) {
	t.Parallel()
	if !IsNack(NackFrame) {
		t.Fatal("IsNack rejected the NACK constant")
	}
	if IsNack(AckFrame) {
		t.Error("IsNack accepted the ACK frame")
	}
}
