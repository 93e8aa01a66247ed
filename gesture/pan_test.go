// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"math"
	"testing"

	"swipe.dev/f32"
)

func polar(dist, deg float64) f32.Point {
	rad := deg * math.Pi / 180
	return f32.Pt(float32(dist*math.Cos(rad)), float32(dist*math.Sin(rad)))
}

func TestPanDetect(t *testing.T) {
	origin := f32.Pt(100, 100)
	for _, tc := range []struct {
		label string
		axis  Axis
		to    f32.Point
		want  int
		dir   int
	}{
		{"along x", Horizontal, f32.Pt(25, 0), 1, 1},
		{"against x", Horizontal, f32.Pt(-25, 0), 1, -1},
		{"50 degrees off x", Horizontal, polar(25, 50), -1, 0},
		{"30 degrees off x", Horizontal, polar(25, 30), 1, 1},
		{"below threshold", Horizontal, f32.Pt(10, 0), 0, 0},
		{"along y", Vertical, f32.Pt(0, -25), 1, -1},
		{"along x for y axis", Vertical, f32.Pt(25, 0), -1, 0},
	} {
		t.Run(tc.label, func(t *testing.T) {
			p := NewPanRecognizer(tc.axis, 20, 40)
			p.Start(origin)
			if got := p.Detect(origin.Add(tc.to)); got != tc.want {
				t.Errorf("Detect = %d, expected %d", got, tc.want)
			}
			if got := p.Direction(); got != tc.dir {
				t.Errorf("Direction = %d, expected %d", got, tc.dir)
			}
			if got := p.Panning(); got != (tc.want == 1) {
				t.Errorf("Panning = %v", got)
			}
		})
	}
}

func TestPanDeterministic(t *testing.T) {
	path := []f32.Point{{X: 1, Y: 0}, {X: 5, Y: 2}, {X: 9, Y: 3}, {X: 14, Y: 4}, {X: 22, Y: 6}, {X: 30, Y: 30}}
	var results [2][]int
	for run := range results {
		p := NewPanRecognizer(Horizontal, 0, 0)
		p.Start(f32.Point{})
		for _, pos := range path {
			results[run] = append(results[run], p.Detect(pos))
		}
	}
	for i := range path {
		if results[0][i] != results[1][i] {
			t.Fatalf("run results differ: %v vs %v", results[0], results[1])
		}
	}
	// The decision is kept even though the last point is off axis.
	if got := results[0][len(path)-1]; got != 1 {
		t.Errorf("final result %d, expected the sticky 1", got)
	}
}

func TestPanRestart(t *testing.T) {
	p := NewPanRecognizer(Horizontal, 20, 40)
	p.Start(f32.Point{})
	p.Detect(f32.Pt(0, 30))
	if p.Result() != -1 {
		t.Fatalf("got %d, expected rejection", p.Result())
	}
	p.Start(f32.Point{})
	if p.Result() != 0 {
		t.Errorf("Start kept result %d", p.Result())
	}
	if got := p.Detect(f32.Pt(30, 0)); got != 1 {
		t.Errorf("got %d after restart, expected 1", got)
	}
	if got := p.Last(); got != f32.Pt(30, 0) {
		t.Errorf("last position %v", got)
	}
}
