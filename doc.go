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

// Package pn532 drives the NXP PN532 contactless reader over UART, I2C or
// SPI. It implements the chip's half-duplex command/response protocol -
// frame construction and checksumming, acknowledgement handling, response
// parsing - on top of a small transport capability that each bus provides.
//
// Basic usage:
//
//	t, err := uart.New("/dev/ttyUSB0")
//	if err != nil {
//		log.Fatal(err)
//	}
//	dev, err := pn532.New(t)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer dev.Close()
//
//	if err := dev.Init(); err != nil {
//		log.Fatal(err)
//	}
//	target, err := dev.DetectTarget(pn532.Baud106kbitTypeA)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println("UID:", target.UIDString())
//
// Every command is a single attempt: the engine sends the frame, waits for
// the ACK, waits again for the response and validates it, and reports the
// first failure. Retry policy, including wake-up recovery between
// attempts, is layered on top via Retry and RetryConfig.
//
// A Device owns its transport exclusively and is not safe for concurrent
// use; the wire protocol cannot interleave commands anyway.
package pn532
