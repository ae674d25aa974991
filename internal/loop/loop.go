// Package loop is the single goroutine every model mutation runs on.
//
// X events, timers and idle callbacks are all funneled into Loop.Run so the
// taskbar model never needs locking.
package loop

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

var ErrStopped = errors.New("loop stopped")

// Handle is an outstanding callback that can be canceled.
type Handle interface {
	Cancel()
}

// Scheduler posts deferred work back onto the loop goroutine.
type Scheduler interface {
	// Idle runs fn once the loop has no pending events.
	Idle(fn func()) Handle
	// After runs fn on the loop after d has elapsed.
	After(d time.Duration, fn func()) Handle
}

type source struct {
	fn       func()
	canceled bool
}

func (s *source) Cancel() {
	s.canceled = true
}

func (s *source) fire() {
	if s.canceled {
		return
	}
	s.canceled = true
	s.fn()
}

type timerSource struct {
	source
	timer *time.Timer
}

func (s *timerSource) Cancel() {
	s.canceled = true
	s.timer.Stop()
}

func New() *Loop {
	return &Loop{
		queue: make(chan func(), 256),
		doneC: make(chan struct{}),
	}
}

type Loop struct {
	queue chan func()
	doneC chan struct{}
	idle  []*source
}

func (l *Loop) String() string {
	return "loop.Loop"
}

// Post queues fn to run on the loop goroutine. Safe from any goroutine.
func (l *Loop) Post(ctx context.Context, fn func()) error {
	select {
	case <-l.doneC:
		return ErrStopped
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-l.doneC:
		return ErrStopped
	case l.queue <- fn:
		return nil
	}
}

// Do runs fn on the loop goroutine and waits for it to return.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	doneC := make(chan struct{})
	if err := l.Post(ctx, func() {
		defer close(doneC)
		fn()
	}); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-l.doneC:
		return ErrStopped
	case <-doneC:
		return nil
	}
}

// Idle must only be called from the loop goroutine.
func (l *Loop) Idle(fn func()) Handle {
	s := &source{fn: fn}
	l.idle = append(l.idle, s)
	return s
}

// After must only be called from the loop goroutine.
func (l *Loop) After(d time.Duration, fn func()) Handle {
	s := &timerSource{source: source{fn: fn}}
	s.timer = time.AfterFunc(d, func() {
		select {
		case l.queue <- s.fire:
		case <-l.doneC:
		}
	})
	return s
}

// Run dispatches posted work until ctx is canceled. Idle callbacks only run
// when the queue is empty, so bursts of events coalesce into one idle pass.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.doneC)
	slog := slog.With("func", "loop.Loop.Run")
	slog.Debug("started")

	for {
		if len(l.idle) > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case fn := <-l.queue:
				fn()
				continue
			default:
			}

			idle := l.idle
			l.idle = nil
			for _, s := range idle {
				s.fire()
			}
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.queue:
			fn()
		}
	}
}
