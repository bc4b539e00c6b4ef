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

// nfcreader is a command-line tool for talking to a PN532 over UART,
// I2C or SPI: firmware probing, card detection, MIFARE and NTAG block
// access, NDEF reading and writing, and GPIO control.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	pn532 "github.com/cesco345/pi-interfaces"
	detectuart "github.com/cesco345/pi-interfaces/detection/uart"
	"github.com/cesco345/pi-interfaces/transport/i2c"
	"github.com/cesco345/pi-interfaces/transport/spi"
	"github.com/cesco345/pi-interfaces/transport/uart"
	"github.com/spf13/cobra"
)

var (
	flagPort    string
	flagTimeout time.Duration
	flagRetries int
	flagDebug   bool
)

var rootCmd = &cobra.Command{
	Use:   "nfcreader",
	Short: "PN532 contactless reader tool",
	Long: `nfcreader talks to a PN532 contactless reader chip.

The transport is picked from the --port value:
  UART: a serial device path, e.g. /dev/ttyUSB0 or COM3
  I2C:  a bus name containing "i2c", e.g. /dev/i2c-1
  SPI:  a port name containing "spi", e.g. /dev/spidev0.0

With no --port, the first candidate serial port on this machine is used.`,
	Version: "1.0.0",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagDebug {
			pn532.SetDebugEnabled(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagPort, "port", "p", "",
		"Device path (empty for serial auto-detection)")
	rootCmd.PersistentFlags().DurationVarP(&flagTimeout, "timeout", "t",
		time.Second, "Per-command response timeout")
	rootCmd.PersistentFlags().IntVar(&flagRetries, "retries", 3,
		"Attempts per operation before giving up")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Dump raw frames to stderr")
}

// newTransport opens the transport implied by the device path.
func newTransport(path string) (pn532.Transport, error) {
	if path == "" {
		detected, err := detectuart.First()
		if err != nil {
			return nil, fmt.Errorf("auto-detection failed: %w", err)
		}
		fmt.Printf("Using serial port %s\n", detected)
		path = detected
	}

	lower := strings.ToLower(path)
	switch {
	case strings.Contains(lower, "i2c"):
		return i2c.New(path)
	case strings.Contains(lower, "spi"):
		return spi.New(path)
	default:
		return uart.New(path)
	}
}

// openDevice builds the transport, initializes the chip and hands back
// the device plus a cleanup func.
func openDevice() (*pn532.Device, func(), error) {
	transport, err := newTransport(flagPort)
	if err != nil {
		return nil, nil, err
	}

	device, err := pn532.New(transport,
		pn532.WithTimeout(flagTimeout),
		pn532.WithMaxRetries(flagRetries),
	)
	if err != nil {
		_ = transport.Close()
		return nil, nil, err
	}

	if err := device.Init(); err != nil {
		_ = device.Close()
		return nil, nil, fmt.Errorf("failed to initialize PN532: %w", err)
	}

	return device, func() { _ = device.Close() }, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
