// Package worker runs refreshes requested through the message queue.
package worker

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"ynabviz/internal/amqp"
	"ynabviz/internal/log"
	"ynabviz/internal/services"
)

// Refresher runs one refresh and returns the response to send.
type Refresher interface {
	Handle(ctx context.Context) services.Response
}

// Consumer delivers refresh messages until ctx is done.
type Consumer interface {
	ConsumeRefresh(ctx context.Context, handler func(context.Context, *amqp.RefreshMessage) error) error
}

// RefreshWorker handles refresh messages one at a time. A request made
// before the start of the last successful refresh is already satisfied
// and is skipped.
type RefreshWorker struct {
	refresher Refresher
	logger    *log.Logger

	mu          sync.Mutex
	lastSuccess time.Time
	now         func() time.Time
}

func NewRefreshWorker(refresher Refresher, logger *log.Logger) *RefreshWorker {
	if logger == nil {
		logger = log.NewDiscard()
	}
	return &RefreshWorker{
		refresher: refresher,
		logger:    logger.WithComponent(log.ComponentWorker),
		now:       time.Now,
	}
}

// Run consumes messages until ctx is cancelled or the consumer fails.
func (w *RefreshWorker) Run(ctx context.Context, consumer Consumer) error {
	w.logger.InfoContext(ctx, "Refresh worker started", log.FieldOperation, log.OpStartup)
	return consumer.ConsumeRefresh(ctx, w.HandleRefresh)
}

// HandleRefresh processes a single refresh message.
func (w *RefreshWorker) HandleRefresh(ctx context.Context, msg *amqp.RefreshMessage) error {
	logger := w.logger.With(log.FieldRequestID, msg.RequestID)

	w.mu.Lock()
	last := w.lastSuccess
	w.mu.Unlock()
	if !msg.RequestedAt.IsZero() && msg.RequestedAt.Before(last) {
		logger.InfoContext(ctx, "Skipping stale refresh request",
			"requested_at", msg.RequestedAt,
			"last_success", last)
		return nil
	}

	start := w.now()
	logger.InfoContext(ctx, "Processing refresh message",
		"source", msg.Source,
		log.FieldOperation, log.OpConsume)

	resp := w.refresher.Handle(log.NewContext(ctx, logger))
	if resp.StatusCode != http.StatusOK {
		if body, ok := resp.Body.(services.ErrorBody); ok {
			return fmt.Errorf("refresh failed: %s", body.Error)
		}
		return fmt.Errorf("refresh failed with status %d", resp.StatusCode)
	}

	w.mu.Lock()
	if start.After(w.lastSuccess) {
		w.lastSuccess = start
	}
	w.mu.Unlock()
	return nil
}
