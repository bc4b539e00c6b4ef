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
	"encoding/hex"
	"fmt"
	"strings"

	pn532 "github.com/cesco345/pi-interfaces"
	"github.com/spf13/cobra"
)

var (
	mifareBlock   int
	mifareKeyHex  string
	mifareKeyType string
)

var mifareCmd = &cobra.Command{
	Use:   "mifare",
	Short: "MIFARE Classic block access",
}

var mifareReadCmd = &cobra.Command{
	Use:   "read",
	Short: "Authenticate and read one 16-byte block",
	RunE:  runMifareRead,
}

var mifareWriteCmd = &cobra.Command{
	Use:   "write <hex>",
	Short: "Authenticate and write one 16-byte block",
	Args:  cobra.ExactArgs(1),
	RunE:  runMifareWrite,
}

func init() {
	rootCmd.AddCommand(mifareCmd)
	mifareCmd.AddCommand(mifareReadCmd)
	mifareCmd.AddCommand(mifareWriteCmd)

	mifareCmd.PersistentFlags().IntVar(&mifareBlock, "block", 4, "Block number")
	mifareCmd.PersistentFlags().StringVar(&mifareKeyHex, "key", "ffffffffffff",
		"Sector key, 6 bytes hex")
	mifareCmd.PersistentFlags().StringVar(&mifareKeyType, "key-type", "A",
		"Sector key slot: A or B")
}

func parseMifareKey() ([]byte, pn532.MIFAREKeyType, error) {
	key, err := hex.DecodeString(mifareKeyHex)
	if err != nil || len(key) != pn532.MIFAREKeySize {
		return nil, 0, fmt.Errorf("invalid key %q: want %d hex bytes",
			mifareKeyHex, pn532.MIFAREKeySize)
	}

	switch strings.ToUpper(mifareKeyType) {
	case "A":
		return key, pn532.MIFAREKeyA, nil
	case "B":
		return key, pn532.MIFAREKeyB, nil
	default:
		return nil, 0, fmt.Errorf("invalid key type %q: want A or B", mifareKeyType)
	}
}

func runMifareRead(_ *cobra.Command, _ []string) error {
	key, keyType, err := parseMifareKey()
	if err != nil {
		return err
	}

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

	var data []byte
	err = pn532.Retry(context.Background(), device.RetryConfig(), func() error {
		var rerr error
		data, rerr = device.ReadMIFAREBlock(target, byte(mifareBlock), keyType, key)
		return rerr
	})
	if err != nil {
		return fmt.Errorf("failed to read block %d: %w", mifareBlock, err)
	}

	fmt.Printf("Block %d: % X\n", mifareBlock, data)
	return nil
}

func runMifareWrite(_ *cobra.Command, args []string) error {
	key, keyType, err := parseMifareKey()
	if err != nil {
		return err
	}

	data, err := hex.DecodeString(args[0])
	if err != nil || len(data) != pn532.MIFAREBlockSize {
		return fmt.Errorf("invalid block data: want %d hex bytes", pn532.MIFAREBlockSize)
	}

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

	if err := device.WriteMIFAREBlock(target, byte(mifareBlock), keyType, key, data); err != nil {
		return fmt.Errorf("failed to write block %d: %w", mifareBlock, err)
	}

	fmt.Printf("Block %d written\n", mifareBlock)
	return nil
}
