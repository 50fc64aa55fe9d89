package queue

import (
	"context"
	"errors"
	"time"

	"github.com/OFFIS-RIT/greenlens/pkg/leaselock"
	"github.com/OFFIS-RIT/greenlens/pkg/logger"
)

// Guard runs fn while holding an exclusive lease on key.
type Guard func(ctx context.Context, key string, fn func(ctx context.Context) error) error

func runDirect(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// LeaseGuard guards work with Postgres leases. Work whose key is already
// leased by another worker is skipped.
func LeaseGuard(locks *leaselock.Client, ttl time.Duration) Guard {
	return func(ctx context.Context, key string, fn func(ctx context.Context) error) error {
		err := locks.WithLease(ctx, key, leaselock.Options{TTL: ttl}, fn)
		if errors.Is(err, leaselock.ErrBusy) {
			logger.Info("[Queue] Skipping work leased by another worker", "key", key)
			return nil
		}
		return err
	}
}
