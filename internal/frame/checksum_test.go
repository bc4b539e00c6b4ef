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

import "testing"

func TestCalculateChecksum(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		data []byte
		want byte
	}{
		{
			name: "empty data",
			data: []byte{},
			want: 0,
		},
		{
			name: "single byte",
			data: []byte{0x42},
			want: 0x42,
		},
		{
			name: "two bytes",
			data: []byte{0x10, 0x20},
			want: 0x30,
		},
		{
			name: "overflow handling",
			data: []byte{0xFF, 0x01},
			want: 0x00, // 255 + 1 = 256, truncated to 0
		},
		{
			name: "multiple bytes",
			data: []byte{0x01, 0x02, 0x03, 0x04},
			want: 0x0A,
		},
	}

	for _, tt := range tests {
		tt := tt // capture loop variable
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CalculateChecksum(tt.data); got != tt.want {
				t.Errorf("CalculateChecksum() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChecksumValue(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		data []byte
		want byte
	}{
		{
			name: "GetFirmwareVersion payload",
			data: []byte{0xD4, 0x02},
			want: 0x2A, // Two's complement of (0xD4 + 0x02)
		},
		{
			name: "TFI only",
			data: []byte{0xD4},
			want: 0x2C,
		},
		{
			name: "multiple bytes",
			data: []byte{0xD4, 0x02, 0x01, 0x03},
			want: 0x26,
		},
		{
			name: "empty data",
			data: []byte{},
			want: 0x00,
		},
	}

	for _, tt := range tests {
		tt := tt // capture loop variable
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ChecksumValue(tt.data); got != tt.want {
				t.Errorf("ChecksumValue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateChecksum(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		data     []byte
		wantFail bool
	}{
		{
			name:     "valid checksum (zero sum)",
			data:     []byte{0x10, 0xF0},
			wantFail: false,
		},
		{
			name:     "invalid checksum",
			data:     []byte{0x10, 0x20},
			wantFail: true,
		},
		{
			name:     "empty data",
			data:     []byte{},
			wantFail: false,
		},
		{
			name:     "valid payload with correct DCS",
			data:     []byte{0xD4, 0x03, 0x29},
			wantFail: false,
		},
	}

	for _, tt := range tests {
		tt := tt // capture loop variable
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ValidateChecksum(tt.data); got != tt.wantFail {
				t.Errorf("ValidateChecksum() = %v, want %v", got, tt.wantFail)
			}
		})
	}
}

// TestLengthChecksumProperty verifies that LEN + LCS always equals 0 mod 256
// for every possible length byte.
func TestLengthChecksumProperty(t *testing.T) {
	t.Parallel()
	for i := 0; i < 256; i++ {
		length := byte(i)
		lcs := LengthChecksum(length)
		if length+lcs != 0 {
			t.Errorf("property violation: length=%d + LCS=%d != 0", length, lcs)
		}
	}
}

// TestChecksumValueProperty verifies that any payload plus its computed DCS
// sums to zero mod 256.
func TestChecksumValueProperty(t *testing.T) {
	t.Parallel()
	payload := []byte{0xD5, 0x4B, 0x01, 0x01, 0x00, 0x04, 0x08, 0x04, 0xDE, 0xAD, 0xBE, 0xEF}
	for end := 1; end <= len(payload); end++ {
		group := append([]byte(nil), payload[:end]...)
		group = append(group, ChecksumValue(payload[:end]))
		if ValidateChecksum(group) {
			t.Errorf("payload[:%d] plus DCS does not sum to zero", end)
		}
	}
}
