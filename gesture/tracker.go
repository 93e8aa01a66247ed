// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"time"

	"swipe.dev/f32"
	"swipe.dev/io/pointer"
)

// VelocityWindow is the span of history Detail velocities
// are computed over.
const VelocityWindow = 100 * time.Millisecond

// frameTime is the duration of one frame at 60fps in
// milliseconds. Velocities are expressed in pixels per frame.
const frameTime = 16.67

// Sample is a pointer position at a point in time.
type Sample struct {
	Position f32.Point
	Time     time.Duration
}

// Tracker records the positions of a single interaction and
// estimates its velocity. The zero value is ready to use.
type Tracker struct {
	samples []Sample
}

// Record adds the position of e. Events without a timestamp
// are stamped with now.
func (t *Tracker) Record(e pointer.Event, now time.Duration) Sample {
	at := e.Time
	if at == 0 {
		at = now
	}
	return t.Add(e.Position, at)
}

// Add appends a sample.
func (t *Tracker) Add(p f32.Point, at time.Duration) Sample {
	s := Sample{Position: p, Time: at}
	t.samples = append(t.samples, s)
	return s
}

// Reset clears the history.
func (t *Tracker) Reset() {
	t.samples = t.samples[:0]
}

// Len returns the number of recorded samples.
func (t *Tracker) Len() int {
	return len(t.samples)
}

// Velocity returns the movement per frame between the newest
// sample and the oldest sample no older than window. It reports
// false, with a zero velocity, when fewer than two samples fall
// in the window or the result is not finite.
func (t *Tracker) Velocity(window time.Duration) (f32.Point, bool) {
	n := len(t.samples)
	if n < 2 {
		return f32.Point{}, false
	}
	end := t.samples[n-1]
	start := n - 1
	for i := n - 2; i >= 0 && t.samples[i].Time >= end.Time-window; i-- {
		start = i
	}
	if start == n-1 {
		return f32.Point{}, false
	}
	first := t.samples[start]
	elapsed := end.Time - first.Time
	if elapsed <= 0 {
		return f32.Point{}, false
	}
	ms := float32(elapsed) / float32(time.Millisecond)
	v := end.Position.Sub(first.Position).Mul(frameTime / ms)
	if !v.Finite() {
		return f32.Point{}, false
	}
	return v, true
}
