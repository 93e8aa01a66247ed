// SPDX-License-Identifier: Unlicense OR MIT

// Package anim animates menus between their open and closed
// positions. Animations advance only when the host frame loop
// calls Tick.
package anim

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"swipe.dev/menu"
)

// DefaultDuration is the duration of a full open or close.
const DefaultDuration = 300 * time.Millisecond

// scrimOpacity is the opacity of the scrim of an open overlay menu.
const scrimOpacity = 0.35

// Drawer is a menu.Animator tweening the open ratio of a menu,
// 0 for closed and 1 for open.
type Drawer struct {
	// Duration of a full transition. Zero means DefaultDuration.
	Duration time.Duration
	// Ease defaults to ease.OutCubic.
	Ease ease.TweenFunc
	// Apply, if set, receives every new value.
	Apply func(value float32)

	value float32
	to    float32
	tween *gween.Tween
	done  func()
	// startOpen is the position a drag started from.
	startOpen bool
}

var _ menu.Animator = (*Drawer)(nil)

// Open animates to 1 or 0.
func (d *Drawer) Open(open bool, done func()) {
	d.animate(target(open), d.duration(), done)
}

// ProgressStart stops any animation and jumps to the position of
// the drag start.
func (d *Drawer) ProgressStart(isOpen bool) {
	d.finish()
	d.startOpen = isOpen
	d.set(target(isOpen))
}

// Progress jumps to ratio.
func (d *Drawer) Progress(ratio float32) {
	d.set(ratio)
}

// ProgressEnd animates to the end of the drag, or back to its
// start. The duration is scaled to the remaining distance.
func (d *Drawer) ProgressEnd(shouldComplete bool, done func()) {
	to := target(d.startOpen != shouldComplete)
	dist := to - d.value
	if dist < 0 {
		dist = -dist
	}
	d.animate(to, time.Duration(float32(d.duration())*dist), done)
}

// Tick advances the animation by dt and reports whether it is
// still running. The completion function runs on the tick the
// animation ends.
func (d *Drawer) Tick(dt time.Duration) bool {
	if d.tween == nil {
		return false
	}
	v, finished := d.tween.Update(float32(dt.Seconds()))
	if finished {
		d.set(d.to)
		d.finish()
		return false
	}
	d.set(v)
	return true
}

// Active reports whether an animation is running.
func (d *Drawer) Active() bool {
	return d.tween != nil
}

// Value returns the current open ratio.
func (d *Drawer) Value() float32 {
	return d.value
}

func (d *Drawer) animate(to float32, dur time.Duration, done func()) {
	d.finish()
	if dur <= 0 || to == d.value {
		d.set(to)
		done()
		return
	}
	fn := d.Ease
	if fn == nil {
		fn = ease.OutCubic
	}
	d.to = to
	d.tween = gween.New(d.value, to, float32(dur.Seconds()), fn)
	d.done = done
}

// finish ends the running animation at its current value and
// runs its completion.
func (d *Drawer) finish() {
	done := d.done
	d.tween = nil
	d.done = nil
	if done != nil {
		done()
	}
}

func (d *Drawer) set(v float32) {
	if v == d.value {
		return
	}
	d.value = v
	if d.Apply != nil {
		d.Apply(v)
	}
}

func (d *Drawer) duration() time.Duration {
	if d.Duration > 0 {
		return d.Duration
	}
	return DefaultDuration
}

func target(open bool) float32 {
	if open {
		return 1
	}
	return 0
}

// Offsets is the placement of a menu, its content and its scrim
// for an open ratio.
type Offsets struct {
	// Menu is the horizontal offset of the menu from its open
	// position.
	Menu float32
	// Content is the horizontal offset of the content from its
	// resting position.
	Content float32
	// Scrim is the opacity of the scrim over the content.
	Scrim float32
}

// Place computes the offsets of a menu of the given type, side and
// width at open ratio value.
func Place(typ menu.Type, side menu.Side, width, value float32) Offsets {
	var o Offsets
	hidden := -width * (1 - value)
	shift := width * value
	switch typ {
	case menu.Overlay:
		o.Menu = hidden
		o.Scrim = scrimOpacity * value
	case menu.Push:
		o.Menu = hidden
		o.Content = shift
	default:
		o.Content = shift
	}
	if side == menu.Right {
		o.Menu = -o.Menu
		o.Content = -o.Content
	}
	return o
}
