// SPDX-License-Identifier: Unlicense OR MIT

/*
Package router implements the plumbing between pointer event
producers and pointer handlers.

A Router keeps a registration order list of handlers. Press
events are delivered to every handler whose attach target is
hit; Move, Release and Cancel events only reach handlers that
enabled listeners for that source, so a handler's listener
lifetime can match the lifetime of the interaction it tracks.

The Router also owns a frame write queue: work scheduled with
Write runs at the next call to Frame, the way a platform runs
callbacks before painting.

A Router is not safe for concurrent use. All methods must be
called from the goroutine running the UI event loop.
*/
package router

import (
	"time"

	"swipe.dev/f32"
	"swipe.dev/io/event"
	"swipe.dev/io/pointer"
)

// Router dispatches pointer events to handlers.
// The zero value is ready to use.
type Router struct {
	handlers []*pointerHandler
	// writes scheduled for the next frame.
	writes []func()
	frames int

	clock func() time.Duration
	start time.Time
}

// Handler receives pointer events.
type Handler interface {
	event.Tag
	Event(e pointer.Event)
}

// InputOp declares a pointer handler and the area its
// attach target covers.
type InputOp struct {
	Tag    Handler
	Attach pointer.Attach
	// Area is the rectangle of the attach target for
	// pointer.AttachChild and pointer.AttachParent. It is
	// ignored for the other targets.
	Area f32.Rectangle
}

type pointerHandler struct {
	tag    Handler
	attach pointer.Attach
	area   f32.Rectangle
	// listen tracks the enabled event kinds per source.
	listen [pointer.Sources]pointer.Kind
}

// Add registers a handler, or updates the attach target of an
// existing one. New handlers listen for presses from every source.
func (r *Router) Add(op InputOp) {
	if h := r.lookup(op.Tag); h != nil {
		h.attach = op.Attach
		h.area = op.Area
		return
	}
	h := &pointerHandler{tag: op.Tag, attach: op.Attach, area: op.Area}
	for i := range h.listen {
		h.listen[i] = pointer.Press
	}
	r.handlers = append(r.handlers, h)
}

// Remove unregisters a handler.
func (r *Router) Remove(tag Handler) {
	for i, h := range r.handlers {
		if h.tag == tag {
			copy(r.handlers[i:], r.handlers[i+1:])
			r.handlers[len(r.handlers)-1] = nil
			r.handlers = r.handlers[:len(r.handlers)-1]
			return
		}
	}
}

// Enable turns the listeners for kinds from src on or off for
// the handler. Unknown handlers are ignored.
func (r *Router) Enable(tag Handler, src pointer.Source, kinds pointer.Kind, enable bool) {
	h := r.lookup(tag)
	if h == nil {
		return
	}
	if enable {
		h.listen[src] |= kinds
	} else {
		h.listen[src] &^= kinds
	}
}

// Listening returns the event kinds enabled for the handler
// and source.
func (r *Router) Listening(tag Handler, src pointer.Source) pointer.Kind {
	if h := r.lookup(tag); h != nil {
		return h.listen[src]
	}
	return 0
}

// Queue delivers events to the handlers in registration order.
// Handlers may add, remove or re-enable handlers while events
// are delivered; such changes take effect for the next event.
func (r *Router) Queue(events ...event.Event) {
	for _, evt := range events {
		e, ok := evt.(pointer.Event)
		if !ok {
			continue
		}
		targets := make([]*pointerHandler, 0, len(r.handlers))
		for _, h := range r.handlers {
			if !h.listening(e) {
				continue
			}
			if e.Kind == pointer.Press && !h.attach.Hit(h.area, e.Position) {
				continue
			}
			targets = append(targets, h)
		}
		for _, h := range targets {
			// Skip handlers disabled by an earlier target.
			if !h.listening(e) {
				continue
			}
			h.tag.Event(e)
		}
	}
}

// Write schedules f to run at the next frame.
func (r *Router) Write(f func()) {
	r.writes = append(r.writes, f)
}

// Frame runs the writes scheduled before the call. Writes
// scheduled while running are deferred to the following frame.
func (r *Router) Frame() {
	r.frames++
	writes := r.writes
	r.writes = nil
	for _, f := range writes {
		f()
	}
}

// Pending reports the number of writes waiting for a frame.
func (r *Router) Pending() int {
	return len(r.writes)
}

// Frames returns the number of frames run.
func (r *Router) Frames() int {
	return r.frames
}

// SetClock replaces the clock used to stamp events without a
// timestamp. The clock returns time relative to an arbitrary base.
func (r *Router) SetClock(now func() time.Duration) {
	r.clock = now
}

// Now returns the current time of the router clock.
func (r *Router) Now() time.Duration {
	if r.clock != nil {
		return r.clock()
	}
	if r.start.IsZero() {
		r.start = time.Now()
	}
	return time.Since(r.start)
}

// listening reports whether h wants e. Cancel events reach
// handlers listening for cancels from any source.
func (h *pointerHandler) listening(e pointer.Event) bool {
	if e.Kind == pointer.Cancel {
		for _, kinds := range h.listen {
			if kinds&pointer.Cancel != 0 {
				return true
			}
		}
		return false
	}
	return h.listen[e.Source]&e.Kind != 0
}

func (r *Router) lookup(tag Handler) *pointerHandler {
	for _, h := range r.handlers {
		if h.tag == tag {
			return h
		}
	}
	return nil
}
