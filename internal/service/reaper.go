package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tasklight/tasklight/internal/core"
	"github.com/tasklight/tasklight/internal/data"
)

// ReaperOptions groups dependencies for Reaper.
type ReaperOptions struct {
	Accounts core.ReaperRepository
	Logger   *slog.Logger
	// Interval between sweeps. Sweeps run sequentially on a single ticker,
	// so a slow sweep delays the next one rather than overlapping it.
	Interval time.Duration
	// Clock is optional; defaults to the real time provider.
	Clock data.TimeProvider
}

// Reaper periodically deletes accounts whose lifetime has lapsed. It is a
// background safety net: the session resolver and login path already drop
// expired accounts on contact, so the reaper only has to catch accounts
// nobody touches.
type Reaper struct {
	accounts core.ReaperRepository
	logger   *slog.Logger
	interval time.Duration
	clock    data.TimeProvider
}

// NewReaper constructs a new Reaper.
func NewReaper(opts ReaperOptions) (*Reaper, error) {
	if opts.Accounts == nil {
		return nil, errors.New("ReaperRepository is required")
	}
	if opts.Interval <= 0 {
		return nil, errors.New("Interval must be positive")
	}
	return &Reaper{
		accounts: opts.Accounts,
		logger:   opts.Logger,
		interval: opts.Interval,
		clock:    firstClock(opts.Clock),
	}, nil
}

// ReapOnce performs a single sweep and returns the number of accounts
// removed.
func (r *Reaper) ReapOnce(ctx context.Context) (int64, error) {
	reaped, err := r.accounts.DeleteExpired(ctx, r.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("delete expired accounts: %w", err)
	}
	if reaped > 0 {
		r.log().InfoContext(ctx, "reaped expired accounts", "count", reaped)
	}
	return reaped, nil
}

// Run performs an eager sweep, then sweeps on the configured interval
// until the context is canceled. Cancellation is a clean shutdown, not an
// error. Sweep failures are logged and retried on the next tick.
func (r *Reaper) Run(ctx context.Context) error {
	r.log().InfoContext(ctx, "reaper started", "interval", r.interval.String())

	if _, err := r.ReapOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
		r.log().ErrorContext(ctx, "initial reap sweep failed", "error", err)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log().InfoContext(ctx, "reaper stopped")
			return nil
		case <-ticker.C:
			if _, err := r.ReapOnce(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					continue
				}
				r.log().ErrorContext(ctx, "reap sweep failed", "error", err)
			}
		}
	}
}

func (r *Reaper) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return slog.Default()
}

func firstClock(clock data.TimeProvider) data.TimeProvider {
	if clock != nil {
		return clock
	}
	return &data.RealTimeProvider{}
}
