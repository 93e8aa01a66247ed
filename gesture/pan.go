// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"math"

	"swipe.dev/f32"
)

// Default pan recognition parameters.
const (
	DefaultThreshold = 20
	DefaultMaxAngle  = 40
)

// PanRecognizer classifies a pointer path as a pan along an
// axis. It is a pure geometric classifier: the same sequence of
// positions always yields the same result.
type PanRecognizer struct {
	axis       Axis
	threshold2 float32
	maxAngle   float64

	start   f32.Point
	last    f32.Point
	dirty   bool
	result  int
	pointed int
}

// NewPanRecognizer returns a recognizer for pans along axis
// that commit once the pointer moved threshold pixels from the
// origin, at most maxAngle degrees away from the axis.
// Non-positive arguments select the defaults.
func NewPanRecognizer(axis Axis, threshold, maxAngle float32) *PanRecognizer {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if maxAngle <= 0 {
		maxAngle = DefaultMaxAngle
	}
	return &PanRecognizer{
		axis:       axis,
		threshold2: threshold * threshold,
		maxAngle:   float64(maxAngle),
	}
}

// Start resets the recognizer with the origin of a new path.
func (p *PanRecognizer) Start(pos f32.Point) {
	p.start = pos
	p.last = pos
	p.dirty = true
	p.result = 0
	p.pointed = 0
}

// Detect feeds the next position of the path and returns 1 once
// the path is a pan, -1 once it moved too far off the axis, and
// 0 while the path is still shorter than the threshold. The
// decision is kept until the next Start.
func (p *PanRecognizer) Detect(pos f32.Point) int {
	if !p.dirty {
		return p.result
	}
	p.last = pos
	d := pos.Sub(p.start)
	if d.Len2() < p.threshold2 {
		return 0
	}
	along, across := d.X, d.Y
	if p.axis == Vertical {
		along, across = across, along
	}
	angle := math.Atan2(math.Abs(float64(across)), math.Abs(float64(along))) * 180 / math.Pi
	if angle <= p.maxAngle {
		p.result = 1
		if along < 0 {
			p.pointed = -1
		} else {
			p.pointed = 1
		}
	} else {
		p.result = -1
	}
	p.dirty = false
	return p.result
}

// Result returns the last decision of Detect.
func (p *PanRecognizer) Result() int {
	return p.result
}

// Panning reports whether the path was classified as a pan.
func (p *PanRecognizer) Panning() bool {
	return p.result == 1
}

// Direction returns the sign of the pan along the axis: 1 for
// right or down, -1 for left or up, 0 when undecided.
func (p *PanRecognizer) Direction() int {
	return p.pointed
}

// Axis returns the configured axis.
func (p *PanRecognizer) Axis() Axis {
	return p.axis
}

// Last returns the most recent position fed to Detect.
func (p *PanRecognizer) Last() f32.Point {
	return p.last
}
