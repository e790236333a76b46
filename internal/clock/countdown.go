// Package clock provides the frame-driven countdown that paces a quiz
// question. The host advances it once per rendered frame; the clock never
// spawns goroutines or arms timers, keeping the engine single-threaded.
package clock

import "vr-quiz-engine/internal/domain"

// Countdown counts from a starting duration to zero in Advance steps.
//
// Tick fires on every Advance while running, with the clamped remaining
// value, strictly before Expire when both apply to the same call. Expire
// fires exactly once per Start. Stop and Reset never fire Expire.
type Countdown struct {
	remaining float64
	max       float64
	running   bool

	onTick   func(remaining float64)
	onExpire func()
}

func New() *Countdown { return &Countdown{} }

// OnTick registers the per-frame notification. Listeners derive secondary
// thresholds (urgency, last-quarter cues) from the tick value and Max; the
// clock has no separate low-time callback.
func (c *Countdown) OnTick(fn func(remaining float64)) { c.onTick = fn }

// OnExpire registers the one-shot expiration notification.
func (c *Countdown) OnExpire(fn func()) { c.onExpire = fn }

// Start begins a fresh run of the given duration in seconds.
func (c *Countdown) Start(duration float64) error {
	if duration <= 0 {
		return domain.ErrInvalidDuration
	}
	c.max = duration
	c.remaining = duration
	c.running = true
	return nil
}

// Stop halts the countdown without firing Expire.
func (c *Countdown) Stop() { c.running = false }

// Reset halts the countdown and returns remaining to max without firing
// Expire.
func (c *Countdown) Reset() {
	c.running = false
	c.remaining = c.max
}

// Advance moves the clock forward by dt seconds. A no-op while stopped.
func (c *Countdown) Advance(dt float64) {
	if !c.running {
		return
	}
	c.remaining -= dt
	if c.remaining < 0 {
		c.remaining = 0
	}
	if c.onTick != nil {
		c.onTick(c.remaining)
	}
	if c.remaining == 0 {
		c.running = false
		if c.onExpire != nil {
			c.onExpire()
		}
	}
}

// Remaining is the clamped seconds left; read-only to everyone but Advance.
func (c *Countdown) Remaining() float64 { return c.remaining }

// Max is the duration of the current run.
func (c *Countdown) Max() float64 { return c.max }

// Running reports whether the countdown is live.
func (c *Countdown) Running() bool { return c.running }
