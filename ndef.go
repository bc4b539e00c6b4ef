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

	ndef "github.com/hsanjuan/go-ndef"
)

// NDEF TLV block types used in the NTAG user area.
const (
	tlvNull       = 0x00
	tlvNDEF       = 0x03
	tlvTerminator = 0xFE
)

// ErrNoNDEF is returned when the tag's user area carries no NDEF TLV.
var ErrNoNDEF = errors.New("no NDEF message found")

// maxNDEFBytes caps how much of a tag is read before giving up on finding
// a terminator. Matches the user area of the largest NTAG2xx variant.
const maxNDEFBytes = (NTAG2xxUserEndPage - NTAG2xxUserStartPage + 1) * NTAG2xxPageSize

// NDEFRecord is one decoded record of a tag's NDEF message.
type NDEFRecord struct {
	Type    string // "T" for text, "U" for URI, else the raw record type
	Text    string
	URI     string
	Payload []byte
}

// ReadNDEF reads the NDEF message from an NTAG2xx user area. The tag must
// already be activated via DetectTarget.
func (d *Device) ReadNDEF() ([]NDEFRecord, error) {
	raw, err := d.readUserArea()
	if err != nil {
		return nil, err
	}

	payload, err := extractNDEFTLV(raw)
	if err != nil {
		return nil, err
	}

	msg := &ndef.Message{}
	if _, err := msg.Unmarshal(payload); err != nil {
		return nil, fmt.Errorf("failed to parse NDEF message: %w", err)
	}

	records := make([]NDEFRecord, 0, len(msg.Records))
	for _, rec := range msg.Records {
		decoded, err := decodeNDEFRecord(rec)
		if err != nil {
			// Keep whatever else the message carries.
			continue
		}
		records = append(records, decoded)
	}
	if len(records) == 0 {
		return nil, ErrNoNDEF
	}
	return records, nil
}

// WriteNDEFText writes a single well-known text record to the tag.
func (d *Device) WriteNDEFText(text string) error {
	rec := ndef.NewTextRecord(text, "en")
	return d.writeNDEFMessage(&ndef.Message{Records: []*ndef.Record{rec}})
}

// WriteNDEFURI writes a single well-known URI record to the tag.
func (d *Device) WriteNDEFURI(uri string) error {
	rec := ndef.NewURIRecord(uri)
	return d.writeNDEFMessage(&ndef.Message{Records: []*ndef.Record{rec}})
}

func (d *Device) writeNDEFMessage(msg *ndef.Message) error {
	payload, err := msg.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal NDEF message: %w", err)
	}

	wrapped, err := wrapNDEFTLV(payload)
	if err != nil {
		return err
	}
	if len(wrapped) > maxNDEFBytes {
		return fmt.Errorf("%w: NDEF message needs %d bytes", ErrDataTooLarge, len(wrapped))
	}

	// Pad to a whole number of pages and write page by page.
	for len(wrapped)%NTAG2xxPageSize != 0 {
		wrapped = append(wrapped, tlvNull)
	}
	for i := 0; i < len(wrapped); i += NTAG2xxPageSize {
		page := byte(NTAG2xxUserStartPage + i/NTAG2xxPageSize)
		if err := d.WritePage(page, wrapped[i:i+NTAG2xxPageSize]); err != nil {
			return err
		}
	}
	return nil
}

// readUserArea reads user pages in 16-byte strides until a TLV terminator
// shows up or the area is exhausted.
func (d *Device) readUserArea() ([]byte, error) {
	var out []byte
	for page := byte(NTAG2xxUserStartPage); len(out) < maxNDEFBytes; page += 4 {
		chunk, err := d.ReadPages(page)
		if err != nil {
			// A read past the end of a small tag still yields the data
			// gathered so far.
			if len(out) > 0 {
				break
			}
			return nil, err
		}
		out = append(out, chunk...)
		if containsTerminator(chunk) {
			break
		}
	}
	return out, nil
}

func containsTerminator(chunk []byte) bool {
	for _, b := range chunk {
		if b == tlvTerminator {
			return true
		}
	}
	return false
}

// extractNDEFTLV walks the TLV blocks and returns the NDEF message bytes.
func extractNDEFTLV(data []byte) ([]byte, error) {
	i := 0
	for i < len(data) {
		switch data[i] {
		case tlvNull:
			i++
		case tlvTerminator:
			return nil, ErrNoNDEF
		case tlvNDEF:
			return readTLVLength(data, i+1)
		default:
			// Skip an unknown TLV block.
			skipped, err := readTLVLength(data, i+1)
			if err != nil {
				return nil, ErrNoNDEF
			}
			i += 1 + tlvHeaderLen(data, i+1) + len(skipped)
		}
	}
	return nil, ErrNoNDEF
}

// readTLVLength decodes the one- or three-byte TLV length at off and
// returns the value bytes.
func readTLVLength(data []byte, off int) ([]byte, error) {
	if off >= len(data) {
		return nil, ErrNoNDEF
	}
	length := int(data[off])
	start := off + 1
	if length == 0xFF {
		if off+2 >= len(data) {
			return nil, ErrNoNDEF
		}
		length = int(data[off+1])<<8 | int(data[off+2])
		start = off + 3
	}
	if start+length > len(data) {
		return nil, ErrNoNDEF
	}
	return data[start : start+length], nil
}

func tlvHeaderLen(data []byte, off int) int {
	if off < len(data) && data[off] == 0xFF {
		return 3
	}
	return 1
}

// wrapNDEFTLV wraps an NDEF message in its TLV envelope with terminator.
func wrapNDEFTLV(payload []byte) ([]byte, error) {
	if len(payload) > 0xFFFF {
		return nil, fmt.Errorf("%w: NDEF payload %d bytes", ErrDataTooLarge, len(payload))
	}

	var out []byte
	if len(payload) < 0xFF {
		out = make([]byte, 0, len(payload)+3)
		out = append(out, tlvNDEF, byte(len(payload)))
	} else {
		out = make([]byte, 0, len(payload)+5)
		out = append(out, tlvNDEF, 0xFF, byte(len(payload)>>8), byte(len(payload)))
	}
	out = append(out, payload...)
	out = append(out, tlvTerminator)
	return out, nil
}

func decodeNDEFRecord(rec *ndef.Record) (NDEFRecord, error) {
	payload, err := rec.Payload()
	if err != nil {
		return NDEFRecord{}, fmt.Errorf("failed to get NDEF record payload: %w", err)
	}
	raw := payload.Marshal()

	out := NDEFRecord{Type: rec.Type(), Payload: raw}
	if rec.TNF() != ndef.NFCForumWellKnownType {
		return out, nil
	}

	switch rec.Type() {
	case "T":
		text, err := decodeTextPayload(raw)
		if err != nil {
			return NDEFRecord{}, err
		}
		out.Text = text
	case "U":
		out.URI = payload.String()
	}
	return out, nil
}

// decodeTextPayload strips the status byte and language code from a
// well-known text record payload.
func decodeTextPayload(raw []byte) (string, error) {
	if len(raw) < 1 {
		return "", errors.New("text payload too short")
	}
	langLen := int(raw[0] & 0x3F)
	if len(raw) < 1+langLen {
		return "", errors.New("invalid text payload length")
	}
	return string(raw[1+langLen:]), nil
}
