package effects

import (
	"context"
	"math/rand"
	"time"
)

// ClockLayout is how the navbar clock renders the time.
const ClockLayout = "15:04:05"

// Clock emits the formatted time immediately and then once per Interval.
type Clock struct {
	Interval time.Duration
	Now      func() time.Time
}

// NewClock returns a one-second clock on the wall time.
func NewClock() Clock {
	return Clock{Interval: time.Second, Now: time.Now}
}

// Run blocks until ctx ends.
func (c Clock) Run(ctx context.Context, emit func(string)) error {
	now := c.Now
	if now == nil {
		now = time.Now
	}
	emit(now().Format(ClockLayout))
	return Every(ctx, c.Interval, func(time.Time) {
		emit(now().Format(ClockLayout))
	})
}

// Typewriter reveals Text one rune per Speed after Delay.
type Typewriter struct {
	Text  string
	Speed time.Duration
	Delay time.Duration
}

// Frames returns every prefix of Text, one rune longer each time.
func (tw Typewriter) Frames() []string {
	runes := []rune(tw.Text)
	frames := make([]string, 0, len(runes))
	for i := 1; i <= len(runes); i++ {
		frames = append(frames, string(runes[:i]))
	}
	return frames
}

// Run emits each frame in turn and returns nil once the whole text is
// shown, or ctx.Err() if cancelled first.
func (tw Typewriter) Run(ctx context.Context, emit func(string)) error {
	if err := sleep(ctx, tw.Delay); err != nil {
		return err
	}
	frames := tw.Frames()
	if len(frames) == 0 {
		return nil
	}

	t := NewTicker(ctx, tw.Speed)
	defer t.Stop()

	for _, frame := range frames {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			emit(frame)
		}
	}
	return nil
}

// Glitch decides, every Interval, whether a glitch fires with probability
// Frequency.
type Glitch struct {
	Frequency float64
	Interval  time.Duration
	Rand      func() float64
}

// NewGlitch returns a glitch checked every 100ms.
func NewGlitch(frequency float64) Glitch {
	return Glitch{
		Frequency: frequency,
		Interval:  100 * time.Millisecond,
		Rand:      rand.Float64,
	}
}

// Fires reports whether a draw of r triggers a glitch.
func (g Glitch) Fires(r float64) bool {
	return r < g.Frequency
}

// Run blocks until ctx ends, calling emit on every triggered glitch.
func (g Glitch) Run(ctx context.Context, emit func()) error {
	draw := g.Rand
	if draw == nil {
		draw = rand.Float64
	}
	return Every(ctx, g.Interval, func(time.Time) {
		if g.Fires(draw()) {
			emit()
		}
	})
}
