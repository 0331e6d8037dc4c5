package core

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

var ErrLoopStopped = errors.New("event loop stopped")

// EventLoop runs posted events one at a time, to completion, on a single goroutine.
// Transport events, microphone buffers and user actions all go through it, so state
// owned by handlers needs no locking.
type EventLoop struct {
	events chan func()
	done   chan struct{}
	once   sync.Once
	logger zerolog.Logger
}

func NewEventLoop(buffer int, logger zerolog.Logger) *EventLoop {
	if buffer <= 0 {
		buffer = 256
	}
	return &EventLoop{
		events: make(chan func(), buffer),
		done:   make(chan struct{}),
		logger: logger.With().Str("module", "core.loop").Logger(),
	}
}

// Post enqueues fn. It reports false once the loop has stopped.
func (l *EventLoop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.events <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Do posts fn and waits for its result. Must not be called from inside the loop.
func (l *EventLoop) Do(ctx context.Context, fn func() error) error {
	errc := make(chan error, 1)
	if !l.Post(func() { errc <- fn() }) {
		return ErrLoopStopped
	}
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrLoopStopped
	}
}

// Run processes events until ctx is cancelled.
func (l *EventLoop) Run(ctx context.Context) error {
	defer l.once.Do(func() { close(l.done) })
	for {
		select {
		case <-ctx.Done():
			l.logger.Info().Msg("event loop stopped")
			return ctx.Err()
		case fn := <-l.events:
			l.run(fn)
		}
	}
}

func (l *EventLoop) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error().Interface("panic", r).Msg("event handler panicked")
		}
	}()
	fn()
}

// Done is closed once Run has returned.
func (l *EventLoop) Done() <-chan struct{} { return l.done }
