package notify

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"registrar/internal/platform/metrics"
)

const sendTimeout = 15 * time.Second

// Dispatcher fans confirmation emails out to a fixed pool of workers over a
// bounded queue. Enqueue never blocks the caller: when the queue is full the
// confirmation is dropped and counted.
type Dispatcher struct {
	sender  Sender
	queue   chan Confirmation
	workers int
	logger  *slog.Logger
	metrics *metrics.Metrics

	group  *errgroup.Group
	cancel context.CancelFunc
}

// NewDispatcher builds a dispatcher with the given worker count and queue
// capacity. Workers do not run until Start is called.
func NewDispatcher(sender Sender, workers, queueSize int, logger *slog.Logger, m *metrics.Metrics) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &Dispatcher{
		sender:  sender,
		queue:   make(chan Confirmation, queueSize),
		workers: workers,
		logger:  logger,
		metrics: m,
	}
}

// Start launches the worker pool. Workers drain the queue until Close is
// called and the queue empties.
func (d *Dispatcher) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.group, ctx = errgroup.WithContext(ctx)
	for i := 0; i < d.workers; i++ {
		d.group.Go(func() error {
			d.run(ctx)
			return nil
		})
	}
}

// Enqueue schedules a confirmation for delivery. It returns immediately;
// a full queue drops the confirmation rather than stalling intake.
func (d *Dispatcher) Enqueue(c Confirmation) {
	select {
	case d.queue <- c:
	default:
		d.logger.Warn("notification queue full, dropping confirmation", "email", c.Email)
		if d.metrics != nil {
			d.metrics.IncrementNotificationsDropped()
		}
	}
}

// Close stops accepting new confirmations, waits for in-flight sends to
// finish and releases the workers.
func (d *Dispatcher) Close() {
	close(d.queue)
	if d.group != nil {
		_ = d.group.Wait()
	}
	if d.cancel != nil {
		d.cancel()
	}
}

func (d *Dispatcher) run(ctx context.Context) {
	for c := range d.queue {
		d.deliver(ctx, c)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, c Confirmation) {
	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := d.sender.Send(sendCtx, c); err != nil {
		d.logger.ErrorContext(ctx, "confirmation email failed", "email", c.Email, "error", err)
		if d.metrics != nil {
			d.metrics.IncrementNotificationsFailed()
		}
		return
	}
	if d.metrics != nil {
		d.metrics.IncrementNotificationsSent()
	}
}
