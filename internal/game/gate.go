// internal/game/gate.go
package game

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"
)

// DefaultGateTimeout bounds how long a caller waits for the table gate
// before getting ErrBusy back.
const DefaultGateTimeout = 5 * time.Second

// Gate is the single-writer admission control for one table. Any number of
// users may fire actions concurrently; exactly one holds the gate at a
// time, the rest wait up to the timeout and then fail with ErrBusy rather
// than blocking indefinitely.
type Gate struct {
	sem     *semaphore.Weighted
	timeout time.Duration
}

// NewGate builds a gate with the given acquisition timeout. Non-positive
// timeouts fall back to the default.
func NewGate(timeout time.Duration) *Gate {
	if timeout <= 0 {
		timeout = DefaultGateTimeout
	}
	return &Gate{
		sem:     semaphore.NewWeighted(1),
		timeout: timeout,
	}
}

// Acquire admits the caller or fails with ErrBusy once the timeout
// elapses. The returned release func must be deferred immediately so the
// gate is freed on every exit path.
func (gt *Gate) Acquire(ctx context.Context) (func(), error) {
	ctx, cancel := context.WithTimeout(ctx, gt.timeout)
	defer cancel()
	if err := gt.sem.Acquire(ctx, 1); err != nil {
		return nil, ErrBusy
	}
	return func() { gt.sem.Release(1) }, nil
}
