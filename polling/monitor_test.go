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

package polling

import (
	"context"
	"testing"
	"time"

	pn532 "github.com/cesco345/pi-interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	cmdInListPassiveTarget = 0x4A
	cmdInRelease           = 0x52
)

// cardInField is an InListPassiveTarget response for one Type A card.
var cardInField = []byte{
	0x01, 0x01, 0x00, 0x04, 0x08, 0x04, 0xDE, 0xAD, 0xBE, 0xEF,
}

var emptyField = []byte{0x00}

func newTestMonitor(t *testing.T) (*Monitor, *pn532.MockTransport) {
	t.Helper()

	mock := pn532.NewMockTransport()
	device, err := pn532.New(mock, pn532.WithMaxRetries(1))
	require.NoError(t, err)

	monitor := NewMonitor(device, &Config{
		Interval:      time.Millisecond,
		Baud:          pn532.Baud106kbitTypeA,
		RemovalMisses: 2,
	})
	return monitor, mock
}

func queueDetect(mock *pn532.MockTransport, info []byte) {
	mock.QueueExchange(cmdInListPassiveTarget, info)
}

func queueRelease(mock *pn532.MockTransport) {
	mock.QueueExchange(cmdInRelease, []byte{0x00})
}

func TestMonitor_CardArrival(t *testing.T) {
	t.Parallel()

	monitor, mock := newTestMonitor(t)
	queueDetect(mock, cardInField)
	queueRelease(mock)

	var seen []string
	monitor.OnCardDetected = func(target *pn532.Target) error {
		seen = append(seen, target.UIDString())
		return nil
	}

	require.NoError(t, monitor.poll(context.Background()))
	assert.Equal(t, []string{"deadbeef"}, seen)
}

func TestMonitor_SameCardFiresOnce(t *testing.T) {
	t.Parallel()

	monitor, mock := newTestMonitor(t)
	for i := 0; i < 3; i++ {
		queueDetect(mock, cardInField)
		queueRelease(mock)
	}

	detections := 0
	monitor.OnCardDetected = func(*pn532.Target) error {
		detections++
		return nil
	}

	for i := 0; i < 3; i++ {
		require.NoError(t, monitor.poll(context.Background()))
	}
	assert.Equal(t, 1, detections, "a card resting on the reader is one event")
}

func TestMonitor_RemovalIsDebounced(t *testing.T) {
	t.Parallel()

	monitor, mock := newTestMonitor(t)
	queueDetect(mock, cardInField)
	queueRelease(mock)
	queueDetect(mock, emptyField) // first miss: not yet a removal
	queueDetect(mock, emptyField) // second miss: removal

	removed := 0
	monitor.OnCardRemoved = func() { removed++ }

	require.NoError(t, monitor.poll(context.Background()))
	require.NoError(t, monitor.poll(context.Background()))
	assert.Zero(t, removed, "one empty cycle must not count as removal")

	require.NoError(t, monitor.poll(context.Background()))
	assert.Equal(t, 1, removed)
}

func TestMonitor_CardSwap(t *testing.T) {
	t.Parallel()

	otherCard := []byte{
		0x01, 0x01, 0x00, 0x04, 0x08, 0x04, 0xCA, 0xFE, 0xBA, 0xBE,
	}

	monitor, mock := newTestMonitor(t)
	queueDetect(mock, cardInField)
	queueRelease(mock)
	queueDetect(mock, otherCard)
	queueRelease(mock)

	var seen []string
	monitor.OnCardDetected = func(target *pn532.Target) error {
		seen = append(seen, target.UIDString())
		return nil
	}

	require.NoError(t, monitor.poll(context.Background()))
	require.NoError(t, monitor.poll(context.Background()))
	assert.Equal(t, []string{"deadbeef", "cafebabe"}, seen)
}

func TestMonitor_EmptyFieldNoCallbacks(t *testing.T) {
	t.Parallel()

	monitor, mock := newTestMonitor(t)
	queueDetect(mock, emptyField)

	monitor.OnCardRemoved = func() { t.Error("removal without a card present") }
	require.NoError(t, monitor.poll(context.Background()))
}

func TestMonitor_RunStopsOnCancel(t *testing.T) {
	t.Parallel()

	monitor, mock := newTestMonitor(t)
	queueDetect(mock, emptyField)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := monitor.Run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
