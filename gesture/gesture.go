// SPDX-License-Identifier: Unlicense OR MIT

/*
Package gesture implements pan and press gestures and the
arbitration between competing gestures.

A Gesture receives pointer events from a router, classifies the
pointer path with a PanRecognizer and asks its Controller for the
exclusive capture before reporting a pan. Lifecycle notifications
go to the Callbacks given at construction; notifications without a
callback are queued and returned by Events.
*/
package gesture

import (
	"time"

	"swipe.dev/f32"
	"swipe.dev/io/pointer"
	"swipe.dev/io/router"
)

// MouseWait is how long mouse input is ignored after a touch
// event. Browsers and some platforms emulate mouse events for
// touches; both must not drive the same interaction.
const MouseWait = 2500 * time.Millisecond

// pressSlop is the maximum travel in each axis of a press.
const pressSlop = 10

// Options configures a Gesture. The zero value describes a
// horizontal pan attached to its own area with the default
// threshold and angle.
type Options struct {
	Name   string
	Attach pointer.Attach
	// Direction is the pan axis.
	Direction Axis
	// Threshold is the pan distance in pixels; 0 means
	// DefaultThreshold.
	Threshold float32
	// MaxAngle is the maximum angle in degrees between a pan
	// and its axis; 0 means DefaultMaxAngle.
	MaxAngle      float32
	Priority      int
	DisableScroll bool
	// AutoBlockAll blocks every other gesture for the lifetime
	// of the Gesture.
	AutoBlockAll bool
	// Type is the set of recognized gestures; 0 means TypePan.
	Type Type
	// Block lists gestures blocked while this gesture holds
	// the capture.
	Block []string
}

// Callbacks receive gesture lifecycle notifications. Every field
// is optional.
type Callbacks struct {
	// CanStart is asked before an interaction starts. Returning
	// false ignores the interaction.
	CanStart    func(d *Detail) bool
	OnDown      func(d *Detail)
	OnStart     func(d *Detail)
	OnMove      func(d *Detail)
	OnEnd       func(d *Detail)
	OnPress     func(d *Detail)
	OnUp        func(d *Detail)
	NotCaptured func(d *Detail)
	// OnCancel is called instead of OnEnd when a captured
	// interaction is cancelled or the gesture is closed.
	OnCancel func(d *Detail)
}

// EventKind is the kind of a lifecycle Event.
type EventKind uint8

// Event is a lifecycle notification queued for a Gesture without
// the matching callback.
type Event struct {
	Kind   EventKind
	Detail Detail
}

const (
	EventDown EventKind = iota
	EventStart
	EventMove
	EventEnd
	EventPress
	EventUp
	EventNotCaptured
	EventCancel
)

// Gesture recognizes pans and presses from pointer events.
type Gesture struct {
	opts   Options
	cb     Callbacks
	handle *Handle
	router *router.Router

	pan      *PanRecognizer
	hasPress bool

	detail  Detail
	tracker Tracker

	active   bool
	captured bool
	source   pointer.Source
	// gen identifies the current interaction for queued moves.
	gen        int
	moveQueued bool

	touched   bool
	lastTouch time.Duration

	blockAll *Blocker
	blocker  *Blocker

	events []Event
	closed bool
}

// New returns a Gesture registered with ctrl. The Gesture receives
// no input until it is added to a router.
func New(ctrl *Controller, opts Options, cb Callbacks) *Gesture {
	if opts.Type == 0 {
		opts.Type = TypePan
	}
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.MaxAngle <= 0 {
		opts.MaxAngle = DefaultMaxAngle
	}
	g := &Gesture{
		opts:     opts,
		cb:       cb,
		handle:   ctrl.NewGesture(opts.Name, opts.Priority, opts.DisableScroll),
		hasPress: opts.Type&TypePress != 0,
	}
	g.handle.OnCancel(g.lostCapture)
	if opts.Type&TypePan != 0 {
		g.pan = NewPanRecognizer(opts.Direction, opts.Threshold, opts.MaxAngle)
	}
	if opts.AutoBlockAll {
		g.blockAll = g.handle.NewBlocker(BlockerOptions{All: true, DisableScroll: true})
		g.blockAll.Block()
	}
	g.SetBlock(opts.Block)
	return g
}

// Add registers the gesture as a pointer handler of r. Area is
// the rectangle of the attach target.
func (g *Gesture) Add(r *router.Router, area f32.Rectangle) {
	if g.closed {
		return
	}
	g.router = r
	r.Add(router.InputOp{Tag: g, Attach: g.opts.Attach, Area: area})
}

// SetBlock replaces the set of gestures blocked while this
// gesture holds the capture.
func (g *Gesture) SetBlock(names []string) {
	if g.blocker != nil {
		g.blocker.Destroy()
		g.blocker = nil
	}
	g.opts.Block = names
	if len(names) > 0 {
		g.blocker = g.handle.NewBlocker(BlockerOptions{Disable: names})
		if g.captured {
			g.blocker.Block()
		}
	}
}

// Options returns the effective options.
func (g *Gesture) Options() Options {
	return g.opts
}

// Handle returns the controller registration.
func (g *Gesture) Handle() *Handle {
	return g.handle
}

// Active reports whether an interaction is in progress.
func (g *Gesture) Active() bool {
	return g.active
}

// Captured reports whether the current interaction holds the
// capture.
func (g *Gesture) Captured() bool {
	return g.captured
}

// Detail returns a copy of the current gesture frame.
func (g *Gesture) Detail() Detail {
	return g.detail
}

// Events returns the queued lifecycle events and clears the queue.
func (g *Gesture) Events() []Event {
	events := g.events
	g.events = nil
	return events
}

// Close aborts any interaction, destroys the blockers and
// unregisters the gesture.
func (g *Gesture) Close() {
	if g.closed {
		return
	}
	g.cancel()
	if g.blockAll != nil {
		g.blockAll.Destroy()
		g.blockAll = nil
	}
	if g.blocker != nil {
		g.blocker.Destroy()
		g.blocker = nil
	}
	g.handle.Destroy()
	if g.router != nil {
		g.router.Remove(g)
	}
	g.closed = true
}

// Event handles a pointer event. It implements router.Handler.
func (g *Gesture) Event(e pointer.Event) {
	if g.closed {
		return
	}
	if e.Kind == pointer.Cancel {
		g.cancel()
		return
	}
	if e.Time == 0 {
		e.Time = g.now()
	}
	if !e.Position.Finite() {
		if e.Kind == pointer.Press {
			return
		}
		e.Position = g.detail.Current
	}
	if e.Source == pointer.Touch {
		if g.active && g.source != pointer.Touch {
			return
		}
		g.touched = true
		g.lastTouch = e.Time
	} else if g.mouseSuppressed(e.Time) {
		return
	}
	switch e.Kind {
	case pointer.Press:
		if e.Source == pointer.Mouse && e.Buttons != 0 && !e.Buttons.Contain(pointer.ButtonPrimary) {
			return
		}
		g.down(e)
	case pointer.Move:
		if g.active && e.Source == g.source {
			g.move(e)
		}
	case pointer.Release:
		if g.active && e.Source == g.source {
			g.up(e)
		}
	}
}

func (g *Gesture) mouseSuppressed(t time.Duration) bool {
	return g.touched && t <= g.lastTouch+MouseWait
}

func (g *Gesture) down(e pointer.Event) {
	if g.active {
		return
	}
	d := &g.detail
	*d = Detail{
		Event:     e,
		Start:     e.Position,
		Current:   e.Position,
		StartTime: e.Time,
		Time:      e.Time,
	}
	g.tracker.Reset()
	if g.cb.CanStart != nil && !g.cb.CanStart(d) {
		return
	}
	g.tracker.Add(e.Position, e.Time)
	// Drop a reservation left over from an interaction that
	// never ended.
	g.handle.Release()
	if !g.handle.Start() {
		return
	}
	g.active = true
	g.captured = false
	g.moveQueued = false
	g.source = e.Source
	g.gen++
	if g.pan != nil {
		g.pan.Start(d.Start)
	}
	g.listen(true)
	g.emit(EventDown)
}

func (g *Gesture) move(e pointer.Event) {
	g.update(e)
	if g.pan == nil {
		return
	}
	if g.captured {
		g.queueMove()
		return
	}
	switch g.pan.Detect(g.detail.Current) {
	case 1:
		if !g.capture() {
			g.abort()
		}
	case -1:
		g.abort()
	}
}

func (g *Gesture) up(e pointer.Event) {
	g.handle.Release()
	g.update(e)
	d := &g.detail
	captured := g.captured
	press := g.hasPress && abs(d.Delta.X) < pressSlop && abs(d.Delta.Y) < pressSlop
	g.reset()
	g.emit(EventUp)
	switch {
	case captured:
		d.Type = TypePan
		g.emit(EventEnd)
	case press:
		d.Type = TypePress
		g.emit(EventPress)
	default:
		g.emit(EventNotCaptured)
	}
}

// update recomputes the detail from e.
func (g *Gesture) update(e pointer.Event) {
	d := &g.detail
	d.Event = e
	d.Current = e.Position
	d.Time = e.Time
	d.Delta = d.Current.Sub(d.Start)
	d.DirectionX = directionX(d.Delta.X)
	d.DirectionY = directionY(d.Delta.Y)
	g.tracker.Add(e.Position, e.Time)
	v, ok := g.tracker.Velocity(VelocityWindow)
	d.Velocity = v
	if ok {
		d.VelocityDirectionX = directionX(v.X)
		d.VelocityDirectionY = directionY(v.Y)
	} else {
		d.VelocityDirectionX = NoDirection
		d.VelocityDirectionY = NoDirection
	}
}

func (g *Gesture) capture() bool {
	if !g.handle.Capture() {
		return false
	}
	g.captured = true
	if g.blocker != nil {
		g.blocker.Block()
	}
	g.detail.Type = TypePan
	g.emit(EventStart)
	return true
}

// queueMove delivers at most one move per frame. The detail is
// read when the frame runs, so the latest position wins.
func (g *Gesture) queueMove() {
	if g.moveQueued {
		return
	}
	g.moveQueued = true
	gen := g.gen
	deliver := func() {
		if gen != g.gen {
			return
		}
		g.moveQueued = false
		if !g.captured {
			return
		}
		g.detail.Type = TypePan
		g.emit(EventMove)
	}
	if g.router == nil {
		deliver()
		return
	}
	g.router.Write(deliver)
}

// abort ends an interaction that failed to capture.
func (g *Gesture) abort() {
	g.reset()
	g.emit(EventNotCaptured)
}

// cancel aborts the interaction. Only a captured interaction
// reports EventCancel; its listeners already saw EventStart.
func (g *Gesture) cancel() {
	captured := g.captured
	g.reset()
	if captured {
		g.emit(EventCancel)
	}
}

// lostCapture aborts silently when another gesture captured.
func (g *Gesture) lostCapture() {
	if g.active && !g.captured {
		g.reset()
	}
}

// reset returns to idle and detaches the interaction listeners.
func (g *Gesture) reset() {
	if !g.active {
		return
	}
	g.active = false
	g.captured = false
	g.moveQueued = false
	g.gen++
	g.handle.Release()
	if g.blocker != nil {
		g.blocker.Unblock()
	}
	g.tracker.Reset()
	g.listen(false)
}

// listen enables the move and release listeners for the source
// of the interaction and disables them for the other source.
func (g *Gesture) listen(enable bool) {
	if g.router == nil {
		return
	}
	kinds := pointer.Release | pointer.Cancel
	if g.pan != nil {
		kinds |= pointer.Move
	}
	for src := pointer.Source(0); src < pointer.Sources; src++ {
		g.router.Enable(g, src, kinds, enable && src == g.source)
	}
}

func (g *Gesture) emit(kind EventKind) {
	var f func(*Detail)
	switch kind {
	case EventDown:
		f = g.cb.OnDown
	case EventStart:
		f = g.cb.OnStart
	case EventMove:
		f = g.cb.OnMove
	case EventEnd:
		f = g.cb.OnEnd
	case EventPress:
		f = g.cb.OnPress
	case EventUp:
		f = g.cb.OnUp
	case EventNotCaptured:
		f = g.cb.NotCaptured
	case EventCancel:
		f = g.cb.OnCancel
	}
	if f != nil {
		f(&g.detail)
		return
	}
	g.events = append(g.events, Event{Kind: kind, Detail: g.detail})
}

func (g *Gesture) now() time.Duration {
	if g.router != nil {
		return g.router.Now()
	}
	return 0
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func (k EventKind) String() string {
	switch k {
	case EventDown:
		return "Down"
	case EventStart:
		return "Start"
	case EventMove:
		return "Move"
	case EventEnd:
		return "End"
	case EventPress:
		return "Press"
	case EventUp:
		return "Up"
	case EventNotCaptured:
		return "NotCaptured"
	case EventCancel:
		return "Cancel"
	default:
		panic("invalid EventKind")
	}
}
