// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ingest

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"
)

// sleepFunc suspends for the given duration, returning early with the
// context error if the context is cancelled first.
type sleepFunc func(ctx context.Context, d time.Duration) error

// timerSleep is the default sleepFunc.
func timerSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	select {
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Retryer executes operations with bounded retry and full-jitter exponential
// backoff. It is stateless across calls and safe for concurrent use.
type Retryer struct {
	retries    int
	multiplier time.Duration
	max        time.Duration
	sleep      sleepFunc
}

// NewRetryer creates a retryer that attempts an operation at most
// retries+1 times. On the i-th failure (0-indexed) it sleeps a uniformly
// random duration in [0, min(2^i * multiplier, max)].
func NewRetryer(retries int, multiplier, max time.Duration) (*Retryer, error) {
	if retries < 0 {
		return nil, ErrInvalidRetries
	}
	if multiplier <= 0 || max <= 0 {
		return nil, ErrInvalidBackoff
	}
	return &Retryer{
		retries:    retries,
		multiplier: multiplier,
		max:        max,
		sleep:      timerSleep,
	}, nil
}

// Do executes op, retrying on error up to the configured budget. The error
// from the final attempt is returned unchanged; intermediate failures are
// not reported individually.
func (r *Retryer) Do(ctx context.Context, op func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 0; ; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		lastErr = op(ctx)
		if lastErr == nil {
			if attempt > 0 {
				slog.Debug("operation succeeded after retry", "attempt", attempt+1)
			}
			return nil
		}

		if attempt == r.retries {
			return lastErr
		}

		slog.Debug("operation failed, will retry",
			"attempt", attempt+1, "maxAttempts", r.retries+1, "error", lastErr)

		if err := r.sleep(ctx, r.jitter(attempt)); err != nil {
			return err
		}
	}
}

// jitter samples the sleep duration for the i-th failure (0-indexed):
// uniform in [0, min(2^i * multiplier, max)]. Both the ceiling and the
// jitter range cap at max once backoff saturates.
func (r *Retryer) jitter(i int) time.Duration {
	delay := r.max
	// Guard the shift: past 62 doublings any positive multiplier saturates.
	if i < 63 {
		d := r.multiplier << uint(i)
		if d > 0 && d < r.max {
			delay = d
		}
	}
	return time.Duration(rand.Int64N(int64(delay) + 1))
}
