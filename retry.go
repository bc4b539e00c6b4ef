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
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"
)

// RetryConfig configures the caller-level retry policy. The protocol
// engine is strictly single-attempt; every retry, backoff and recovery
// decision lives here, layered on top.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (0 or 1 = no retry).
	MaxAttempts int
	// InitialBackoff is the delay before the second attempt.
	InitialBackoff time.Duration
	// MaxBackoff caps the delay between attempts.
	MaxBackoff time.Duration
	// BackoffMultiplier is the factor by which the backoff grows.
	BackoffMultiplier float64
	// Jitter adds proportional randomness to each backoff.
	Jitter float64
	// Recover, if set, runs between attempts - typically Device.Wakeup,
	// optionally followed by a SAM reconfigure for stubborn chips.
	Recover func() error
}

// DefaultRetryConfig returns a default retry configuration.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:       3,
		InitialBackoff:    10 * time.Millisecond,
		MaxBackoff:        1 * time.Second,
		BackoffMultiplier: 2.0,
		Jitter:            0.1,
	}
}

// Retry runs fn up to config.MaxAttempts times, backing off between
// attempts. Only failures IsRetryable classifies as transient are retried;
// card rejections and parameter errors return immediately. A Recover hook
// runs before each re-attempt so the caller can wake or reset the chip.
func Retry(ctx context.Context, config *RetryConfig, fn func() error) error {
	if config == nil {
		config = DefaultRetryConfig()
	}
	if config.MaxAttempts <= 1 {
		return fn()
	}

	var lastErr error
	backoff := config.InitialBackoff

	for attempt := 0; attempt < config.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return lastErr
			}
			return fmt.Errorf("retry cancelled: %w", err)
		}

		if attempt > 0 {
			if err := sleepContext(ctx, jittered(backoff, config.Jitter)); err != nil {
				return lastErr
			}
			backoff = nextBackoff(backoff, config)

			if config.Recover != nil {
				if err := config.Recover(); err != nil {
					Debugf("recovery between attempts failed: %v", err)
				}
			}
		}

		err := fn()
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		lastErr = err
		Debugf("attempt %d/%d failed: %v", attempt+1, config.MaxAttempts, err)
	}

	return lastErr
}

// DetectTargetWithRetry wraps DetectTarget in the device's retry policy
// with a wake between attempts. This is the re-architected form of the
// reference driver's ad hoc catch-and-retry loops.
func (d *Device) DetectTargetWithRetry(ctx context.Context, baud BaudRate) (*Target, error) {
	config := *d.config.RetryConfig
	if config.Recover == nil {
		config.Recover = d.Wakeup
	}

	var target *Target
	err := Retry(ctx, &config, func() error {
		var err error
		target, err = d.DetectTarget(baud)
		return err
	})
	return target, err
}

// jittered spreads a backoff by up to +/- jitter fraction.
func jittered(d time.Duration, jitter float64) time.Duration {
	if jitter <= 0 {
		return d
	}
	var raw [8]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return d
	}
	// Map to [-jitter, +jitter).
	f := float64(binary.LittleEndian.Uint64(raw[:])>>11) / (1 << 53)
	factor := 1 + jitter*(2*f-1)
	return time.Duration(float64(d) * factor)
}

func nextBackoff(current time.Duration, config *RetryConfig) time.Duration {
	next := time.Duration(float64(current) * config.BackoffMultiplier)
	if config.MaxBackoff > 0 && next > config.MaxBackoff {
		return config.MaxBackoff
	}
	return next
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
