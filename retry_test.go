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

package pn532

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetryConfig(attempts int) *RetryConfig {
	return &RetryConfig{
		MaxAttempts:       attempts,
		InitialBackoff:    time.Microsecond,
		MaxBackoff:        time.Millisecond,
		BackoffMultiplier: 2.0,
	}
}

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	t.Parallel()

	calls := 0
	err := Retry(context.Background(), fastRetryConfig(3), func() error {
		calls++
		if calls < 3 {
			return fmt.Errorf("attempt %d: %w", calls, ErrNoACK)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	t.Parallel()

	calls := 0
	err := Retry(context.Background(), fastRetryConfig(3), func() error {
		calls++
		return fmt.Errorf("attempt %d: %w", calls, ErrChecksumMismatch)
	})

	require.ErrorIs(t, err, ErrChecksumMismatch)
	assert.Equal(t, 3, calls)
	assert.Contains(t, err.Error(), "attempt 3", "last failure wins")
}

func TestRetry_NonRetryableReturnsImmediately(t *testing.T) {
	t.Parallel()

	calls := 0
	err := Retry(context.Background(), fastRetryConfig(5), func() error {
		calls++
		return &CardError{Command: "InDataExchange", Code: 0x14}
	})

	require.ErrorIs(t, err, ErrCardOperation)
	assert.Equal(t, 1, calls, "card rejections must not be retried")
}

func TestRetry_SingleAttemptBypassesPolicy(t *testing.T) {
	t.Parallel()

	calls := 0
	err := Retry(context.Background(), fastRetryConfig(1), func() error {
		calls++
		return ErrNoACK
	})

	require.ErrorIs(t, err, ErrNoACK)
	assert.Equal(t, 1, calls)
}

func TestRetry_NilConfigUsesDefaults(t *testing.T) {
	t.Parallel()

	calls := 0
	err := Retry(context.Background(), nil, func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetry_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	config := &RetryConfig{
		MaxAttempts:       10,
		InitialBackoff:    50 * time.Millisecond,
		BackoffMultiplier: 1.0,
	}

	calls := 0
	err := Retry(ctx, config, func() error {
		calls++
		cancel() // cancel while the policy is backing off
		return ErrNoACK
	})

	require.ErrorIs(t, err, ErrNoACK, "last attempt error is reported, not the cancellation")
	assert.Equal(t, 1, calls)
}

func TestRetry_RecoverRunsBetweenAttempts(t *testing.T) {
	t.Parallel()

	config := fastRetryConfig(3)
	recoveries := 0
	config.Recover = func() error {
		recoveries++
		return nil
	}

	calls := 0
	_ = Retry(context.Background(), config, func() error {
		calls++
		return ErrNoACK
	})

	assert.Equal(t, 3, calls)
	assert.Equal(t, 2, recoveries, "recovery runs before each re-attempt only")
}

func TestDetectTargetWithRetry(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	device, err := New(mock, WithRetryConfig(fastRetryConfig(3)))
	require.NoError(t, err)

	// First attempt times out waiting for the ACK, second finds a card.
	mock.SetReady(false)
	mock.QueueExchange(cmdInListPassiveTarget, classicTargetInfo)

	target, err := device.DetectTargetWithRetry(context.Background(), Baud106kbitTypeA)
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", target.UIDString())
	assert.Equal(t, 1, mock.WakeCalls, "default recovery wakes the chip between attempts")
}

func TestJittered(t *testing.T) {
	t.Parallel()

	base := 100 * time.Millisecond
	assert.Equal(t, base, jittered(base, 0))

	for i := 0; i < 32; i++ {
		got := jittered(base, 0.1)
		assert.InDelta(t, float64(base), float64(got), 0.1*float64(base)+1)
	}
}

func TestNextBackoff(t *testing.T) {
	t.Parallel()

	config := &RetryConfig{BackoffMultiplier: 2.0, MaxBackoff: 300 * time.Millisecond}
	assert.Equal(t, 200*time.Millisecond, nextBackoff(100*time.Millisecond, config))
	assert.Equal(t, 300*time.Millisecond, nextBackoff(250*time.Millisecond, config))
}
