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
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	pn532 "github.com/cesco345/pi-interfaces"
	"github.com/cesco345/pi-interfaces/polling"
	"github.com/spf13/cobra"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Continuously report cards entering and leaving the field",
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 100*time.Millisecond,
		"Pause between detection cycles")
}

func runWatch(_ *cobra.Command, _ []string) error {
	device, cleanup, err := openDevice()
	if err != nil {
		return err
	}
	defer cleanup()

	config := polling.DefaultConfig()
	config.Interval = watchInterval

	monitor := polling.NewMonitor(device, config)
	monitor.OnCardDetected = func(target *pn532.Target) error {
		fmt.Printf("card: uid=%s atqa=0x%04X sak=0x%02X\n",
			target.UIDString(), target.ATQA, target.SAK)
		return nil
	}
	monitor.OnCardRemoved = func() {
		fmt.Println("card removed")
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Println("Watching for cards, Ctrl+C to stop...")
	if err := monitor.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
