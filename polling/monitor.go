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

// Package polling turns the PN532's one-shot target detection into a
// continuous card presence monitor with arrival and removal callbacks.
package polling

import (
	"context"
	"errors"
	"fmt"
	"time"

	pn532 "github.com/cesco345/pi-interfaces"
)

// Config tunes the monitor loop.
type Config struct {
	// Interval is the pause between detection cycles.
	Interval time.Duration
	// Baud is the modulation profile polled for.
	Baud pn532.BaudRate
	// RemovalMisses is how many consecutive empty cycles count as the
	// card leaving the field. Cards at the edge of the field drop out of
	// single polls all the time; one miss is not a removal.
	RemovalMisses int
}

// DefaultConfig returns the monitor defaults: Type A cards, ten polls a
// second, removal after two empty cycles.
func DefaultConfig() *Config {
	return &Config{
		Interval:      100 * time.Millisecond,
		Baud:          pn532.Baud106kbitTypeA,
		RemovalMisses: 2,
	}
}

// Monitor watches the field and reports card arrivals and removals. The
// callbacks run on the monitor's goroutine; a slow callback delays the
// next poll, never overlaps it.
type Monitor struct {
	// OnCardDetected fires when a card enters the field, and again when a
	// card with a different UID replaces it. The target is still activated
	// when the callback runs, so card reads can happen inside it.
	OnCardDetected func(*pn532.Target) error
	// OnCardRemoved fires once the card has stayed out of the field for
	// RemovalMisses cycles.
	OnCardRemoved func()

	device *pn532.Device
	config *Config

	presentUID string
	misses     int
}

// NewMonitor creates a monitor over an initialized device.
func NewMonitor(device *pn532.Device, config *Config) *Monitor {
	if config == nil {
		config = DefaultConfig()
	}
	if config.RemovalMisses < 1 {
		config.RemovalMisses = 1
	}
	return &Monitor{device: device, config: config}
}

// Run polls until the context is cancelled. The context error is returned
// on cancellation; detection errors other than "no target" abort the loop.
func (m *Monitor) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := m.poll(ctx); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.config.Interval):
		}
	}
}

// poll runs one detection cycle and applies the presence transitions.
func (m *Monitor) poll(ctx context.Context) error {
	target, err := m.device.DetectTargetWithRetry(ctx, m.config.Baud)
	if err != nil {
		if errors.Is(err, pn532.ErrNoTargetDetected) {
			m.cardMissed()
			return nil
		}
		if pn532.IsRetryable(err) {
			// The retry budget is already spent; treat a still-flaky bus
			// like an empty field and try again next cycle.
			m.cardMissed()
			return nil
		}
		return fmt.Errorf("card detection failed: %w", err)
	}

	m.cardSeen(target)
	return nil
}

func (m *Monitor) cardSeen(target *pn532.Target) {
	m.misses = 0
	uid := target.UIDString()
	if uid == m.presentUID {
		// Same card still sitting on the reader.
		_ = m.device.ReleaseTarget()
		return
	}

	m.presentUID = uid
	if m.OnCardDetected != nil {
		if err := m.OnCardDetected(target); err != nil {
			pn532.Debugf("card detected callback failed: %v", err)
		}
	}
	// Release so the next cycle can re-detect and removal is observable.
	_ = m.device.ReleaseTarget()
}

func (m *Monitor) cardMissed() {
	if m.presentUID == "" {
		return
	}
	m.misses++
	if m.misses < m.config.RemovalMisses {
		return
	}

	m.presentUID = ""
	m.misses = 0
	if m.OnCardRemoved != nil {
		m.OnCardRemoved()
	}
}
