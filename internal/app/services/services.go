// Package services implements the local-store-backed domain services. They
// stand in for a real backend: each operation simulates network latency and
// works purely against the key-value-backed repositories.
package services

import (
	"context"
	"time"
)

// simulateLatency mimics the fixed network delay of a hosted backend. It
// respects context cancellation while waiting.
func simulateLatency(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
