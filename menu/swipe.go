// SPDX-License-Identifier: Unlicense OR MIT

package menu

import (
	"swipe.dev/gesture"
	"swipe.dev/io/pointer"
)

// SwipePriority is the gesture priority of menu swipes.
const SwipePriority = 40

// SwipeName is the gesture name of menu swipes, for blockers.
const SwipeName = "menu-swipe"

// completeVelocity is the horizontal velocity in pixels per frame
// that completes a swipe regardless of distance.
const completeVelocity = 0.2

// swipe drives a menu from a horizontal pan.
type swipe struct {
	m *Menu
	g *gesture.Gesture
}

func newSwipe(m *Menu) *swipe {
	s := &swipe{m: m}
	nop := func(*gesture.Detail) {}
	s.g = gesture.New(m.cfg.Gestures, gesture.Options{
		Name:          SwipeName,
		Attach:        pointer.AttachWindow,
		Direction:     gesture.Horizontal,
		Priority:      SwipePriority,
		DisableScroll: true,
	}, gesture.Callbacks{
		CanStart:    s.canStart,
		OnStart:     s.start,
		OnMove:      s.move,
		OnEnd:       s.end,
		OnCancel:    s.cancel,
		OnDown:      nop,
		OnUp:        nop,
		NotCaptured: nop,
	})
	s.add()
	return s
}

func (s *swipe) add() {
	s.g.Add(s.m.cfg.Router, s.m.cfg.Viewport)
}

func (s *swipe) close() {
	s.g.Close()
}

// canStart accepts any swipe of an open menu, and swipes of a
// closed menu starting within MaxEdgeStart of its side.
func (s *swipe) canStart(d *gesture.Detail) bool {
	m := s.m
	if !m.enabled || m.busy() || m.disabled() {
		return false
	}
	if m.isOpen {
		return true
	}
	vp := m.cfg.Viewport
	switch m.cfg.Side {
	case Right:
		return vp.Max.X-d.Start.X <= m.cfg.MaxEdgeStart
	default:
		return d.Start.X-vp.Min.X <= m.cfg.MaxEdgeStart
	}
}

func (s *swipe) start(d *gesture.Detail) {
	s.m.SetProgressStart()
}

func (s *swipe) move(d *gesture.Detail) {
	s.m.SetProgress(s.ratio(d))
}

func (s *swipe) end(d *gesture.Detail) {
	s.m.SetProgress(s.ratio(d))
	s.m.SetProgressEnd(s.complete(d))
}

// cancel reverts a drag whose pointer was cancelled, or whose
// gesture was closed by Enabled(false) or Destroy.
func (s *swipe) cancel(d *gesture.Detail) {
	s.m.SetProgressEnd(false)
}

// ratio maps the pan delta to the open ratio of the menu.
func (s *swipe) ratio(d *gesture.Detail) float32 {
	m := s.m
	slide := d.Delta.X / m.cfg.Width
	if m.cfg.Side == Right {
		slide = -slide
	}
	if m.opening {
		return slide
	}
	return 1 + slide
}

// complete decides whether a released swipe finishes the
// transition. Fast flings complete regardless of distance; slow
// releases complete past half the menu width.
func (s *swipe) complete(d *gesture.Detail) bool {
	m := s.m
	v := d.Velocity.X
	half := m.cfg.Width / 2
	dx := d.Delta.X
	right := v >= 0 && (v > completeVelocity || dx > half)
	left := v <= 0 && (v < -completeVelocity || dx < -half)
	// Opening a left menu and closing a right one swipe rightwards.
	if (m.cfg.Side == Left) == m.opening {
		return right
	}
	return left
}
