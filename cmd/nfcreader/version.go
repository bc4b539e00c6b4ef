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
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show chip firmware version and status",
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(_ *cobra.Command, _ []string) error {
	device, cleanup, err := openDevice()
	if err != nil {
		return err
	}
	defer cleanup()

	fw, err := device.FirmwareVersion()
	if err != nil {
		return fmt.Errorf("failed to read firmware version: %w", err)
	}

	fmt.Printf("IC:        PN5%02X\n", fw.IC)
	fmt.Printf("Firmware:  %s\n", fw)
	fmt.Printf("ISO14443A: %v\n", fw.SupportsIso14443a())
	fmt.Printf("ISO14443B: %v\n", fw.SupportsIso14443b())
	fmt.Printf("ISO18092:  %v\n", fw.SupportsIso18092())

	status, err := device.GeneralStatus()
	if err != nil {
		return fmt.Errorf("failed to read general status: %w", err)
	}

	fmt.Printf("Last error: 0x%02X\n", status.LastError)
	fmt.Printf("RF field:   %v\n", status.FieldPresent)
	fmt.Printf("Targets:    %d\n", status.Targets)
	return nil
}
