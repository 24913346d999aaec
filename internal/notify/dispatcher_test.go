package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type fakeSender struct {
	mu    sync.Mutex
	sent  []Confirmation
	err   error
	block chan struct{}
}

func (f *fakeSender) Send(ctx context.Context, c Confirmation) error {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, c)
	return nil
}

func (f *fakeSender) delivered() []Confirmation {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Confirmation, len(f.sent))
	copy(out, f.sent)
	return out
}

type DispatcherSuite struct {
	suite.Suite
	logger *slog.Logger
}

func TestDispatcherSuite(t *testing.T) {
	suite.Run(t, new(DispatcherSuite))
}

func (s *DispatcherSuite) SetupTest() {
	s.logger = slog.New(slog.DiscardHandler)
}

func (s *DispatcherSuite) TestDeliversEnqueuedConfirmations() {
	sender := &fakeSender{}
	d := NewDispatcher(sender, 2, 8, s.logger, nil)
	d.Start(context.Background())

	d.Enqueue(Confirmation{Email: "a@example.com", FirstName: "A"})
	d.Enqueue(Confirmation{Email: "b@example.com", FirstName: "B"})
	d.Close()

	s.Len(sender.delivered(), 2)
}

func (s *DispatcherSuite) TestEnqueue_DropsWhenQueueFull() {
	block := make(chan struct{})
	sender := &fakeSender{block: block}
	d := NewDispatcher(sender, 1, 1, s.logger, nil)
	d.Start(context.Background())

	// One confirmation occupies the worker, one fills the queue; the
	// third has nowhere to go and must be dropped without blocking.
	done := make(chan struct{})
	go func() {
		d.Enqueue(Confirmation{Email: "busy@example.com"})
		d.Enqueue(Confirmation{Email: "queued@example.com"})
		d.Enqueue(Confirmation{Email: "dropped@example.com"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		s.Fail("Enqueue blocked on a full queue")
	}

	close(block)
	d.Close()
	s.LessOrEqual(len(sender.delivered()), 2)
}

func (s *DispatcherSuite) TestSendFailureDoesNotStopWorkers() {
	sender := &fakeSender{err: errors.New("smtp: connection refused")}
	d := NewDispatcher(sender, 1, 4, s.logger, nil)
	d.Start(context.Background())

	d.Enqueue(Confirmation{Email: "a@example.com"})
	d.Enqueue(Confirmation{Email: "b@example.com"})
	d.Close()

	s.Empty(sender.delivered())
}

func (s *DispatcherSuite) TestClose_DrainsQueue() {
	sender := &fakeSender{}
	d := NewDispatcher(sender, 1, 16, s.logger, nil)
	d.Start(context.Background())

	for i := 0; i < 10; i++ {
		d.Enqueue(Confirmation{Email: "n@example.com"})
	}
	d.Close()

	s.Len(sender.delivered(), 10)
}
