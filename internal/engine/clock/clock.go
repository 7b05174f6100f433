// Package clock provides frame timing for the main loop.
package clock

import "time"

// maxStep caps a single frame delta so a stall (window drag, breakpoint)
// does not teleport the vehicle.
const maxStep = 0.25

// Clock measures frame deltas and elapsed time since Start.
type Clock struct {
	now func() time.Time

	start    time.Time
	last     time.Time
	fpsTimer time.Time

	frames    int
	lastFPS   int
	frameTime time.Duration
}

// New creates a clock on wall time.
func New() *Clock {
	return NewWithSource(time.Now)
}

// NewWithSource creates a clock reading time from now.
func NewWithSource(now func() time.Time) *Clock {
	c := &Clock{now: now}
	c.Reset()
	return c
}

// Reset restarts elapsed time and discards the running frame count.
func (c *Clock) Reset() {
	t := c.now()
	c.start, c.last, c.fpsTimer = t, t, t
	c.frames = 0
}

// Tick ends a frame and returns its delta and the total elapsed time,
// both in seconds. The delta is never negative and is capped at 250ms.
func (c *Clock) Tick() (dt, elapsed float32) {
	t := c.now()
	d := t.Sub(c.last)
	c.last = t
	if d < 0 {
		d = 0
	}
	c.frameTime = d
	c.frames++

	dt = float32(d.Seconds())
	if dt > maxStep {
		dt = maxStep
	}
	return dt, float32(t.Sub(c.start).Seconds())
}

// Elapsed returns seconds since Reset.
func (c *Clock) Elapsed() float32 {
	return float32(c.last.Sub(c.start).Seconds())
}

// FPS reports the frame count of the last full second. ok is true once
// per second, when a new count is available.
func (c *Clock) FPS() (fps int, frameTime time.Duration, ok bool) {
	if c.last.Sub(c.fpsTimer) < time.Second {
		return c.lastFPS, c.frameTime, false
	}
	c.lastFPS = c.frames
	c.frames = 0
	c.fpsTimer = c.last
	return c.lastFPS, c.frameTime, true
}
