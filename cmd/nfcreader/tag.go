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
	"context"
	"fmt"

	pn532 "github.com/cesco345/pi-interfaces"
	"github.com/spf13/cobra"
)

// detectWindow is how long card detection keeps retrying relative to the
// per-command timeout.
const detectWindowMultiplier = 30

var uidCmd = &cobra.Command{
	Use:   "uid",
	Short: "Detect a card and print its UID",
	RunE:  runUID,
}

var ndefCmd = &cobra.Command{
	Use:   "ndef",
	Short: "Read or write NDEF messages on NTAG tags",
}

var ndefReadCmd = &cobra.Command{
	Use:   "read",
	Short: "Read the NDEF message from a tag",
	RunE:  runNDEFRead,
}

var ndefWriteTextCmd = &cobra.Command{
	Use:   "write-text <text>",
	Short: "Write a text record to a tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runNDEFWriteText,
}

var ndefWriteURICmd = &cobra.Command{
	Use:   "write-uri <uri>",
	Short: "Write a URI record to a tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runNDEFWriteURI,
}

func init() {
	rootCmd.AddCommand(uidCmd)
	rootCmd.AddCommand(ndefCmd)
	ndefCmd.AddCommand(ndefReadCmd)
	ndefCmd.AddCommand(ndefWriteTextCmd)
	ndefCmd.AddCommand(ndefWriteURICmd)
}

// detectCard waits for a Type A card, retrying until the retry budget or
// the context runs out.
func detectCard(device *pn532.Device) (*pn532.Target, error) {
	ctx, cancel := context.WithTimeout(context.Background(),
		detectWindowMultiplier*device.Timeout())
	defer cancel()

	target, err := device.DetectTargetWithRetry(ctx, pn532.Baud106kbitTypeA)
	if err != nil {
		return nil, fmt.Errorf("no card detected: %w", err)
	}
	return target, nil
}

func runUID(_ *cobra.Command, _ []string) error {
	device, cleanup, err := openDevice()
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Println("Waiting for card...")
	target, err := detectCard(device)
	if err != nil {
		return err
	}
	defer func() { _ = device.ReleaseTarget() }()

	fmt.Printf("UID:  %s\n", target.UIDString())
	fmt.Printf("ATQA: 0x%04X\n", target.ATQA)
	fmt.Printf("SAK:  0x%02X\n", target.SAK)
	return nil
}

func runNDEFRead(_ *cobra.Command, _ []string) error {
	device, cleanup, err := openDevice()
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Println("Waiting for card...")
	target, err := detectCard(device)
	if err != nil {
		return err
	}
	defer func() { _ = device.ReleaseTarget() }()
	fmt.Printf("Card: %s\n", target.UIDString())

	records, err := device.ReadNDEF()
	if err != nil {
		return fmt.Errorf("failed to read NDEF: %w", err)
	}

	for i, rec := range records {
		switch rec.Type {
		case "T":
			fmt.Printf("[%d] text: %s\n", i, rec.Text)
		case "U":
			fmt.Printf("[%d] uri:  %s\n", i, rec.URI)
		default:
			fmt.Printf("[%d] %s: % X\n", i, rec.Type, rec.Payload)
		}
	}
	return nil
}

func runNDEFWriteText(_ *cobra.Command, args []string) error {
	return withCard(func(device *pn532.Device) error {
		if err := device.WriteNDEFText(args[0]); err != nil {
			return fmt.Errorf("failed to write text record: %w", err)
		}
		fmt.Println("Write successful")
		return nil
	})
}

func runNDEFWriteURI(_ *cobra.Command, args []string) error {
	return withCard(func(device *pn532.Device) error {
		if err := device.WriteNDEFURI(args[0]); err != nil {
			return fmt.Errorf("failed to write URI record: %w", err)
		}
		fmt.Println("Write successful")
		return nil
	})
}

// withCard opens the device, waits for a card and runs fn against it.
func withCard(fn func(*pn532.Device) error) error {
	device, cleanup, err := openDevice()
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Println("Waiting for card...")
	target, err := detectCard(device)
	if err != nil {
		return err
	}
	defer func() { _ = device.ReleaseTarget() }()
	fmt.Printf("Card: %s\n", target.UIDString())

	return fn(device)
}
