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

import "fmt"

// NTAG2xx card commands, sent through InDataExchange. The READ opcode is
// shared with MIFARE Classic but returns four 4-byte pages at once; WRITE
// is the Ultralight-style single page write.
const (
	ntag2xxCmdRead  = 0x30
	ntag2xxCmdWrite = 0xA2
)

// NTAG2xx memory layout
const (
	// NTAG2xxPageSize is the fixed data unit of an NTAG2xx page.
	NTAG2xxPageSize = 4
	// NTAG2xxMaxPage is the highest addressable page across the family.
	NTAG2xxMaxPage = 230
	// NTAG2xxUserStartPage is the first page of the user memory area.
	NTAG2xxUserStartPage = 4
	// NTAG2xxUserEndPage is the last user page of the largest variant.
	NTAG2xxUserEndPage = 129
)

// ReadPage reads one 4-byte NTAG2xx page. The card returns 16 bytes
// (four consecutive pages, wrapping at the end of memory); only the
// requested page is kept.
func (d *Device) ReadPage(page byte) ([]byte, error) {
	if page > NTAG2xxMaxPage {
		return nil, fmt.Errorf("%w: page %d out of range 0-%d", ErrInvalidParameter, page, NTAG2xxMaxPage)
	}

	data, err := d.ReadPages(page)
	if err != nil {
		return nil, err
	}
	return data[:NTAG2xxPageSize], nil
}

// ReadPages reads four consecutive pages (16 bytes) starting at page.
func (d *Device) ReadPages(page byte) ([]byte, error) {
	if page > NTAG2xxMaxPage {
		return nil, fmt.Errorf("%w: page %d out of range 0-%d", ErrInvalidParameter, page, NTAG2xxMaxPage)
	}

	data, err := d.DataExchange([]byte{ntag2xxCmdRead, page})
	if err != nil {
		return nil, err
	}
	if len(data) < 4*NTAG2xxPageSize {
		return nil, fmt.Errorf("ReadPages: %w: got %d bytes", ErrInvalidResponse, len(data))
	}
	return data[:4*NTAG2xxPageSize], nil
}

// WritePage writes one 4-byte page. Only the user memory area is
// writable through this call; capability container and lock pages are
// rejected before any I/O to avoid bricking tags by accident.
func (d *Device) WritePage(page byte, data []byte) error {
	if len(data) != NTAG2xxPageSize {
		return fmt.Errorf("%w: page data must be %d bytes, got %d",
			ErrInvalidParameter, NTAG2xxPageSize, len(data))
	}
	if page < NTAG2xxUserStartPage || page > NTAG2xxUserEndPage {
		return fmt.Errorf("%w: page %d outside user area %d-%d",
			ErrInvalidParameter, page, NTAG2xxUserStartPage, NTAG2xxUserEndPage)
	}

	params := make([]byte, 0, 2+NTAG2xxPageSize)
	params = append(params, ntag2xxCmdWrite, page)
	params = append(params, data...)

	_, err := d.DataExchange(params)
	return err
}
