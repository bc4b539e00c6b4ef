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

	pn532 "github.com/cesco345/pi-interfaces"
	"github.com/spf13/cobra"
)

var (
	gpioP3 int
	gpioP7 int
)

var gpioCmd = &cobra.Command{
	Use:   "gpio",
	Short: "Read or drive the chip's GPIO pins",
}

var gpioReadCmd = &cobra.Command{
	Use:   "read",
	Short: "Read GPIO pin levels",
	RunE:  runGpioRead,
}

var gpioWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Drive GPIO port levels",
	Long: `Drive the P3 and/or P7 port pins. A port is only applied when its
flag is given; the other port keeps its current levels.`,
	RunE: runGpioWrite,
}

var fieldCmd = &cobra.Command{
	Use:       "field {on|off}",
	Short:     "Switch the RF field",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE:      runField,
}

func init() {
	rootCmd.AddCommand(gpioCmd)
	rootCmd.AddCommand(fieldCmd)
	gpioCmd.AddCommand(gpioReadCmd)
	gpioCmd.AddCommand(gpioWriteCmd)

	gpioWriteCmd.Flags().IntVar(&gpioP3, "p3", -1, "P3 port bits (P30-P35)")
	gpioWriteCmd.Flags().IntVar(&gpioP7, "p7", -1, "P7 port bits (P71, P72)")
}

func runGpioRead(_ *cobra.Command, _ []string) error {
	device, cleanup, err := openDevice()
	if err != nil {
		return err
	}
	defer cleanup()

	state, err := device.ReadGPIO()
	if err != nil {
		return fmt.Errorf("failed to read GPIO: %w", err)
	}

	fmt.Printf("P3:   0x%02X\n", state.P3)
	fmt.Printf("P7:   0x%02X\n", state.P7)
	fmt.Printf("I0I1: 0x%02X\n", state.I0I1)
	return nil
}

func runGpioWrite(_ *cobra.Command, _ []string) error {
	if gpioP3 < 0 && gpioP7 < 0 {
		return fmt.Errorf("nothing to write: give --p3 and/or --p7")
	}

	var p3, p7 byte
	if gpioP3 >= 0 {
		p3 = pn532.GPIOValidate | byte(gpioP3)
	}
	if gpioP7 >= 0 {
		p7 = pn532.GPIOValidate | byte(gpioP7)
	}

	device, cleanup, err := openDevice()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := device.WriteGPIO(p3, p7); err != nil {
		return fmt.Errorf("failed to write GPIO: %w", err)
	}
	fmt.Println("GPIO updated")
	return nil
}

func runField(_ *cobra.Command, args []string) error {
	device, cleanup, err := openDevice()
	if err != nil {
		return err
	}
	defer cleanup()

	on := args[0] == "on"
	if err := device.RFField(on); err != nil {
		return fmt.Errorf("failed to switch RF field: %w", err)
	}
	if on {
		fmt.Println("RF field on")
	} else {
		fmt.Println("RF field off")
	}
	return nil
}
