// Package effects drives the periodic decorations of the site: the navbar
// clock, the typewriter hero line and glitch triggers.
//
// Every effect runs on a Ticker owned by a context, so it stops when the
// view that started it goes away.
package effects

import (
	"context"
	"time"
)

// Ticker is a repeating timer bound to a context. Ticks are delivered on C
// until the context ends or Stop is called.
type Ticker struct {
	C <-chan time.Time

	c      chan time.Time
	cancel context.CancelFunc
	done   chan struct{}
}

// NewTicker starts a ticker firing every d.
func NewTicker(ctx context.Context, d time.Duration) *Ticker {
	ctx, cancel := context.WithCancel(ctx)
	c := make(chan time.Time)
	t := &Ticker{C: c, c: c, cancel: cancel, done: make(chan struct{})}
	go t.run(ctx, d)
	return t
}

func (t *Ticker) run(ctx context.Context, d time.Duration) {
	defer close(t.done)

	tick := time.NewTicker(d)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-tick.C:
			select {
			case t.c <- now:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Stop cancels the ticker and waits for its goroutine to exit. It is safe
// to call more than once.
func (t *Ticker) Stop() {
	t.cancel()
	<-t.done
}

// Done is closed once the ticker has stopped.
func (t *Ticker) Done() <-chan struct{} { return t.done }

// Every calls fn on each tick until ctx ends. It blocks, and returns
// ctx.Err().
func Every(ctx context.Context, d time.Duration, fn func(time.Time)) error {
	t := NewTicker(ctx, d)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-t.C:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fn(now)
		}
	}
}

// sleep waits for d or for ctx to end.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
