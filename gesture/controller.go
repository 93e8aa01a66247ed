// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"golang.org/x/exp/slices"
)

// Controller arbitrates between competing gestures. At most one
// registered gesture holds the capture at any time; blockers
// prevent named gestures from starting.
//
// A Controller is meant to be created once per application and
// passed to every component that recognizes gestures. It is not
// safe for concurrent use.
type Controller struct {
	handles  []*Handle
	blockers []*Blocker
	captured *Handle
	// seq orders Start calls for equal priority ties.
	seq uint64

	// scrollOwners hold the handles and blockers that
	// currently disable scrolling.
	scrollOwners []interface{}
	scrollHooks  []func(disabled bool)
}

// Handle is the registration of a gesture with a Controller.
type Handle struct {
	ctrl          *Controller
	name          string
	priority      int
	disableScroll bool

	started   bool
	startSeq  uint64
	captured  bool
	destroyed bool
	onCancel  func()
}

// BlockerOptions configures a Blocker.
type BlockerOptions struct {
	// Disable lists the gesture names blocked.
	Disable []string
	// All blocks every gesture, regardless of Disable.
	All bool
	// DisableScroll disables scrolling while blocked.
	DisableScroll bool
}

// Blocker prevents gestures from starting while blocked.
type Blocker struct {
	ctrl      *Controller
	owner     *Handle
	opts      BlockerOptions
	blocked   bool
	destroyed bool
}

// NewController returns an empty Controller.
func NewController() *Controller {
	return new(Controller)
}

// NewGesture registers a gesture. The gesture holds no claim
// until Start is called.
func (c *Controller) NewGesture(name string, priority int, disableScroll bool) *Handle {
	h := &Handle{
		ctrl:          c,
		name:          name,
		priority:      priority,
		disableScroll: disableScroll,
	}
	c.handles = append(c.handles, h)
	return h
}

// NewBlocker returns an unblocked Blocker.
func (c *Controller) NewBlocker(opts BlockerOptions) *Blocker {
	b := &Blocker{ctrl: c, opts: opts}
	c.blockers = append(c.blockers, b)
	return b
}

// Captured reports whether any gesture holds the capture.
func (c *Controller) Captured() bool {
	return c.captured != nil
}

// CapturedName returns the name of the capturing gesture, or
// the empty string.
func (c *Controller) CapturedName() string {
	if c.captured == nil {
		return ""
	}
	return c.captured.name
}

// Blocked reports whether gestures named name are blocked.
func (c *Controller) Blocked(name string) bool {
	return c.blocked(name, nil)
}

// ScrollDisabled reports whether a captured gesture or a blocker
// currently disables scrolling.
func (c *Controller) ScrollDisabled() bool {
	return len(c.scrollOwners) > 0
}

// OnScrollChange registers f to be called whenever scrolling
// becomes disabled or enabled again.
func (c *Controller) OnScrollChange(f func(disabled bool)) {
	c.scrollHooks = append(c.scrollHooks, f)
}

func (c *Controller) canStart(h *Handle) bool {
	if c.captured != nil {
		return false
	}
	return !c.blocked(h.name, h)
}

func (c *Controller) blocked(name string, h *Handle) bool {
	for _, b := range c.blockers {
		if !b.blocked || (h != nil && b.owner == h) {
			continue
		}
		if b.opts.All || slices.Contains(b.opts.Disable, name) {
			return true
		}
	}
	return false
}

// winner returns the started gesture with the highest priority,
// ties going to the earliest Start.
func (c *Controller) winner() *Handle {
	var w *Handle
	for _, h := range c.handles {
		if !h.started {
			continue
		}
		if w == nil || h.priority > w.priority ||
			(h.priority == w.priority && h.startSeq < w.startSeq) {
			w = h
		}
	}
	return w
}

func (c *Controller) disableScroll(owner interface{}) {
	if slices.Contains(c.scrollOwners, owner) {
		return
	}
	c.scrollOwners = append(c.scrollOwners, owner)
	if len(c.scrollOwners) == 1 {
		c.notifyScroll(true)
	}
}

func (c *Controller) enableScroll(owner interface{}) {
	i := slices.Index(c.scrollOwners, owner)
	if i == -1 {
		return
	}
	c.scrollOwners = slices.Delete(c.scrollOwners, i, i+1)
	if len(c.scrollOwners) == 0 {
		c.notifyScroll(false)
	}
}

func (c *Controller) notifyScroll(disabled bool) {
	for _, f := range c.scrollHooks {
		f(disabled)
	}
}

// Name returns the gesture name.
func (h *Handle) Name() string {
	return h.name
}

// Priority returns the gesture priority.
func (h *Handle) Priority() int {
	return h.priority
}

// Started reports whether the gesture holds a start reservation.
func (h *Handle) Started() bool {
	return h.started
}

// Captured reports whether the gesture holds the capture.
func (h *Handle) Captured() bool {
	return h.captured
}

// OnCancel sets the function called when the gesture loses its
// start reservation because another gesture captured.
func (h *Handle) OnCancel(f func()) {
	h.onCancel = f
}

// Start reserves a claim to capture. It fails while the gesture
// is blocked or while any gesture holds the capture.
func (h *Handle) Start() bool {
	c := h.ctrl
	if h.destroyed || c == nil {
		return false
	}
	if !c.canStart(h) {
		h.started = false
		return false
	}
	if !h.started {
		c.seq++
		h.started = true
		h.startSeq = c.seq
	}
	return true
}

// Capture promotes the gesture to the single captured slot. It
// succeeds only for the started gesture with the highest
// priority; the other started gestures lose their reservation
// and are notified through their OnCancel function.
func (h *Handle) Capture() bool {
	if !h.Start() {
		return false
	}
	c := h.ctrl
	if c.winner() != h {
		h.started = false
		return false
	}
	c.captured = h
	h.captured = true
	var losers []*Handle
	for _, o := range c.handles {
		if o != h && o.started {
			o.started = false
			losers = append(losers, o)
		}
	}
	if h.disableScroll {
		c.disableScroll(h)
	}
	for _, o := range losers {
		if o.onCancel != nil {
			o.onCancel()
		}
	}
	return true
}

// Release drops both the start reservation and the capture.
func (h *Handle) Release() {
	c := h.ctrl
	if c == nil {
		return
	}
	h.started = false
	if c.captured == h {
		c.captured = nil
	}
	h.captured = false
	if h.disableScroll {
		c.enableScroll(h)
	}
}

// Destroy releases the gesture and removes it from the Controller.
func (h *Handle) Destroy() {
	if h.destroyed {
		return
	}
	h.Release()
	c := h.ctrl
	if i := slices.Index(c.handles, h); i != -1 {
		c.handles = slices.Delete(c.handles, i, i+1)
	}
	h.destroyed = true
	h.onCancel = nil
}

// NewBlocker returns a Blocker that never blocks h itself.
func (h *Handle) NewBlocker(opts BlockerOptions) *Blocker {
	b := h.ctrl.NewBlocker(opts)
	b.owner = h
	return b
}

// Block starts blocking the configured gestures.
func (b *Blocker) Block() {
	if b.destroyed || b.blocked {
		return
	}
	b.blocked = true
	if b.opts.DisableScroll {
		b.ctrl.disableScroll(b)
	}
}

// Unblock stops blocking.
func (b *Blocker) Unblock() {
	if !b.blocked {
		return
	}
	b.blocked = false
	if b.opts.DisableScroll {
		b.ctrl.enableScroll(b)
	}
}

// Blocked reports whether the blocker is active.
func (b *Blocker) Blocked() bool {
	return b.blocked
}

// Destroy unblocks and removes the blocker from its Controller.
func (b *Blocker) Destroy() {
	if b.destroyed {
		return
	}
	b.Unblock()
	c := b.ctrl
	if i := slices.Index(c.blockers, b); i != -1 {
		c.blockers = slices.Delete(c.blockers, i, i+1)
	}
	b.destroyed = true
}
