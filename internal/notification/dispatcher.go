package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Dispatcher delivers a single message synchronously.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg Message) error
}

// AsyncDispatcher fans each message out on its own goroutine so callers never
// block on, or fail because of, the email provider. Failed deliveries are
// logged and dropped.
type AsyncDispatcher struct {
	next    Dispatcher
	timeout time.Duration
	logger  *slog.Logger
	wg      sync.WaitGroup
}

// NewAsyncDispatcher creates a new AsyncDispatcher. Every dispatch gets its
// own deadline derived from timeout, detached from the caller's context.
func NewAsyncDispatcher(next Dispatcher, timeout time.Duration, logger *slog.Logger) *AsyncDispatcher {
	return &AsyncDispatcher{
		next:    next,
		timeout: timeout,
		logger:  logger,
	}
}

// Enqueue schedules msg for delivery and returns immediately.
func (d *AsyncDispatcher) Enqueue(msg Message) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.next.Dispatch(ctx, msg); err != nil {
			d.logger.Error("notification dispatch failed",
				"type", msg.Type,
				"to", msg.To,
				"error", err,
			)
			return
		}
		d.logger.Info("notification dispatched", "type", msg.Type, "to", msg.To)
	}()
}

// Wait blocks until all enqueued messages have been attempted. Used during
// graceful shutdown.
func (d *AsyncDispatcher) Wait() {
	d.wg.Wait()
}
