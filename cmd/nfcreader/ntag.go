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

package main

import (
	"encoding/hex"
	"fmt"

	pn532 "github.com/cesco345/pi-interfaces"
	"github.com/spf13/cobra"
)

var ntagPage int

var ntagCmd = &cobra.Command{
	Use:   "ntag",
	Short: "NTAG2xx page access",
}

var ntagReadCmd = &cobra.Command{
	Use:   "read",
	Short: "Read one 4-byte page",
	RunE:  runNtagRead,
}

var ntagWriteCmd = &cobra.Command{
	Use:   "write <hex>",
	Short: "Write one 4-byte page",
	Args:  cobra.ExactArgs(1),
	RunE:  runNtagWrite,
}

func init() {
	rootCmd.AddCommand(ntagCmd)
	ntagCmd.AddCommand(ntagReadCmd)
	ntagCmd.AddCommand(ntagWriteCmd)

	ntagCmd.PersistentFlags().IntVar(&ntagPage, "page", 4, "Page number")
}

func runNtagRead(_ *cobra.Command, _ []string) error {
	return withCard(func(device *pn532.Device) error {
		data, err := device.ReadPage(byte(ntagPage))
		if err != nil {
			return fmt.Errorf("failed to read page %d: %w", ntagPage, err)
		}
		fmt.Printf("Page %d: % X\n", ntagPage, data)
		return nil
	})
}

func runNtagWrite(_ *cobra.Command, args []string) error {
	data, err := hex.DecodeString(args[0])
	if err != nil || len(data) != pn532.NTAG2xxPageSize {
		return fmt.Errorf("invalid page data: want %d hex bytes", pn532.NTAG2xxPageSize)
	}

	return withCard(func(device *pn532.Device) error {
		if err := device.WritePage(byte(ntagPage), data); err != nil {
			return fmt.Errorf("failed to write page %d: %w", ntagPage, err)
		}
		fmt.Printf("Page %d written\n", ntagPage)
		return nil
	})
}
