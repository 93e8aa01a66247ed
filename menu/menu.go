// SPDX-License-Identifier: Unlicense OR MIT

/*
Package menu implements side drawers that open and close with an
animation, either programmatically or by an edge swipe.

A Menu is a state machine over Closed, Opening, Open and Closing.
Transitions are started by SetOpen and its shorthands, or by the
drag entry points SetProgressStart, SetProgress and SetProgressEnd
driven by the menu swipe gesture. Each transition returns a channel
closed when the transition settles.

After every transition step a short disable window rejects new
transitions, so a swipe that ends on a toggle button does not
immediately reverse itself.

Menus are not safe for concurrent use; like gestures they belong
to the UI goroutine.
*/
package menu

import (
	"fmt"
	"log"
	"time"

	"swipe.dev/f32"
	"swipe.dev/gesture"
	"swipe.dev/internal/logutil"
	"swipe.dev/io/router"
)

// DisableWindow is the time after a transition step during which
// further transitions are ignored.
const DisableWindow = 20 * time.Millisecond

const (
	// DefaultWidth is the menu width used when none is configured.
	DefaultWidth = 304
	// DefaultMaxEdgeStart is the distance from the menu side in
	// which a swipe may start opening a closed menu.
	DefaultMaxEdgeStart = 50
	// DefaultID is the ID of menus configured without one.
	DefaultID = "menu"
)

// State is the state of a Menu.
type State uint8

// Side is the screen edge a Menu is attached to.
type Side uint8

// Type is the presentation of a Menu relative to the content.
type Type uint8

const (
	Closed State = iota
	Opening
	Open
	Closing
)

const (
	Left Side = iota
	Right
)

const (
	// Reveal slides the content away to reveal the menu below.
	Reveal Type = iota
	// Overlay slides the menu over the content.
	Overlay
	// Push slides the menu in and pushes the content along.
	Push
)

// Animator plays the open and close animations of a menu. Done
// functions must be called exactly once, possibly before the
// method returns.
type Animator interface {
	// Open animates to the open or closed position.
	Open(open bool, done func())
	// ProgressStart prepares a drag from the current position.
	ProgressStart(isOpen bool)
	// Progress moves to ratio, where 0 is closed and 1 is open.
	Progress(ratio float32)
	// ProgressEnd animates from the dragged position to the end
	// of the drag when shouldComplete is set, or back to the start.
	ProgressEnd(shouldComplete bool, done func())
}

// View is the visual representation of a menu and its content.
type View interface {
	// ShowMenu marks the menu and its scrim visible or hidden.
	ShowMenu(show bool)
	// SetContentOpen marks the content as displaced by the open
	// menu.
	SetContentOpen(open bool)
	// SetScrimHandler installs f as the tap handler of the
	// content covered by the scrim. A nil f removes the handler.
	SetScrimHandler(f func())
}

// Config configures a Menu.
type Config struct {
	// ID names the menu in its Controller. Empty means DefaultID.
	ID   string
	Side Side
	Type Type
	// Content is the view the menu operates on. A Menu without
	// Content is inert.
	Content View
	// Animator defaults to an animator that completes instantly.
	Animator Animator
	// Controller, if set, registers the menu.
	Controller *Controller
	// Gestures and Router, if both set, enable the swipe gesture.
	Gestures *gesture.Controller
	Router   *router.Router
	// Width is the menu width in pixels.
	Width float32
	// Viewport is the area the swipe gesture listens to.
	Viewport     f32.Rectangle
	MaxEdgeStart float32
	// Now defaults to time.Now.
	Now    func() time.Time
	Logger *log.Logger
	// OnChange is called after every state change.
	OnChange func(m *Menu, s State)
}

// Menu is a side drawer state machine.
type Menu struct {
	cfg  Config
	view View
	anim Animator
	log  *log.Logger

	state         State
	isOpen        bool
	enabled       bool
	inert         bool
	destroyed     bool
	transitioning bool
	disableUntil  time.Time

	// dragging is set between SetProgressStart and
	// SetProgressEnd; opening records the drag direction.
	dragging bool
	opening  bool

	swipe *swipe
}

var logger = logutil.GetLogger("[menu] ")

// New returns a closed Menu. A Menu without Content logs an error
// and stays closed and inert.
func New(cfg Config) *Menu {
	if cfg.ID == "" {
		cfg.ID = DefaultID
	}
	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.MaxEdgeStart <= 0 {
		cfg.MaxEdgeStart = DefaultMaxEdgeStart
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = logger
	}
	if cfg.Animator == nil {
		cfg.Animator = instant{}
	}
	m := &Menu{
		cfg:     cfg,
		view:    cfg.Content,
		anim:    cfg.Animator,
		log:     cfg.Logger,
		enabled: true,
	}
	if m.view == nil {
		m.log.Printf("menu %q: must have a content view to listen for swipes on", cfg.ID)
		m.inert = true
		return m
	}
	if cfg.Controller != nil {
		cfg.Controller.Register(m)
	}
	m.initSwipe()
	return m
}

// ID returns the menu ID.
func (m *Menu) ID() string {
	return m.cfg.ID
}

// Side returns the menu side.
func (m *Menu) Side() Side {
	return m.cfg.Side
}

// Type returns the menu presentation type.
func (m *Menu) Type() Type {
	return m.cfg.Type
}

// Width returns the menu width.
func (m *Menu) Width() float32 {
	return m.cfg.Width
}

// State returns the current state.
func (m *Menu) State() State {
	return m.state
}

// IsOpen reports whether the last settled transition opened the
// menu.
func (m *Menu) IsOpen() bool {
	return m.isOpen
}

// IsEnabled reports whether the menu accepts swipes and scrim taps.
func (m *Menu) IsEnabled() bool {
	return m.enabled
}

// Inert reports whether the menu was created without content.
func (m *Menu) Inert() bool {
	return m.inert
}

// Transitioning reports whether an animation or drag is in
// progress.
func (m *Menu) Transitioning() bool {
	return m.transitioning
}

// SetOpen starts a transition to the open or closed state. The
// returned channel is closed when the transition completes. A
// request for the current state, a request during another
// transition and a request within the disable window are ignored;
// their channels are already closed.
func (m *Menu) SetOpen(open bool) <-chan struct{} {
	if m.inert || m.destroyed || m.busy() || open == m.isOpen || m.disabled() {
		return settled()
	}
	m.before()
	if open {
		m.setState(Opening)
	} else {
		m.setState(Closing)
	}
	ch := make(chan struct{})
	m.anim.Open(open, m.once(func() {
		m.after(open)
		close(ch)
	}))
	return ch
}

// Open is short for SetOpen(true).
func (m *Menu) Open() <-chan struct{} {
	return m.SetOpen(true)
}

// Close is short for SetOpen(false).
func (m *Menu) Close() <-chan struct{} {
	return m.SetOpen(false)
}

// Toggle opens a closed menu and closes an open one.
func (m *Menu) Toggle() <-chan struct{} {
	return m.SetOpen(!m.isOpen)
}

// SetProgressStart starts a drag. It is ignored within the
// disable window and during another transition.
func (m *Menu) SetProgressStart() {
	if m.inert || m.destroyed || m.busy() || m.disabled() {
		return
	}
	m.before()
	m.dragging = true
	m.opening = !m.isOpen
	if m.opening {
		m.setState(Opening)
	} else {
		m.setState(Closing)
	}
	m.anim.ProgressStart(m.isOpen)
}

// SetProgress moves a drag to ratio, where 0 is closed and 1 is
// open. Ratios outside [0, 1] are clamped.
func (m *Menu) SetProgress(ratio float32) {
	if !m.dragging {
		return
	}
	m.disable()
	m.transitioning = true
	m.anim.Progress(clamp(ratio))
}

// SetProgressEnd ends a drag. When shouldComplete is set the menu
// ends in the state the drag was heading to, otherwise it returns
// to the state the drag started from.
func (m *Menu) SetProgressEnd(shouldComplete bool) <-chan struct{} {
	if !m.dragging {
		return settled()
	}
	m.disable()
	m.dragging = false
	isOpen := m.opening == shouldComplete
	ch := make(chan struct{})
	m.anim.ProgressEnd(shouldComplete, m.once(func() {
		m.after(isOpen)
		close(ch)
	}))
	return ch
}

// Enabled enables or disables the menu. A disabled menu ignores
// swipes and scrim taps but can still be opened and closed
// programmatically.
func (m *Menu) Enabled(enable bool) {
	if m.inert || m.destroyed || enable == m.enabled {
		return
	}
	m.enabled = enable
	if enable {
		m.initSwipe()
	} else if m.swipe != nil {
		m.swipe.close()
		m.swipe = nil
	}
}

// SetViewport updates the area the swipe gesture listens to.
func (m *Menu) SetViewport(r f32.Rectangle) {
	m.cfg.Viewport = r
	if m.swipe != nil {
		m.swipe.add()
	}
}

// ScrimTap closes an enabled menu. It is the handler installed by
// SetScrimHandler while the menu is open.
func (m *Menu) ScrimTap() {
	if m.enabled {
		m.Close()
	}
}

// Destroy unregisters the menu and removes its gesture. In-flight
// transitions still settle.
func (m *Menu) Destroy() {
	if m.inert || m.destroyed {
		return
	}
	m.destroyed = true
	if m.swipe != nil {
		m.swipe.close()
		m.swipe = nil
	}
	if m.cfg.Controller != nil {
		m.cfg.Controller.Unregister(m)
	}
	m.view.SetScrimHandler(nil)
}

func (m *Menu) initSwipe() {
	if m.swipe != nil || m.cfg.Gestures == nil || m.cfg.Router == nil {
		return
	}
	m.swipe = newSwipe(m)
}

// before places the menu for a transition. It precedes every
// Animator call that starts a transition.
func (m *Menu) before() {
	m.view.ShowMenu(true)
	m.disable()
	m.transitioning = true
}

// after settles a transition. It follows every Animator completion.
func (m *Menu) after(isOpen bool) {
	m.disable()
	m.transitioning = false
	m.isOpen = isOpen
	m.view.SetContentOpen(isOpen)
	m.view.SetScrimHandler(nil)
	if isOpen {
		if !m.destroyed {
			m.view.SetScrimHandler(m.ScrimTap)
		}
		m.setState(Open)
	} else {
		m.view.ShowMenu(false)
		m.setState(Closed)
	}
}

func (m *Menu) setState(s State) {
	if s == m.state {
		return
	}
	m.state = s
	if m.cfg.OnChange != nil {
		m.cfg.OnChange(m, s)
	}
}

func (m *Menu) busy() bool {
	return m.state == Opening || m.state == Closing
}

func (m *Menu) disable() {
	m.disableUntil = m.cfg.Now().Add(DisableWindow)
}

func (m *Menu) disabled() bool {
	return m.disableUntil.After(m.cfg.Now())
}

// once guards against animators completing twice.
func (m *Menu) once(f func()) func() {
	done := false
	return func() {
		if done {
			m.log.Printf("menu %q: animation completed twice", m.cfg.ID)
			return
		}
		done = true
		f()
	}
}

// settled returns a closed channel.
func settled() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

func clamp(v float32) float32 {
	switch {
	case v < 0 || v != v:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// instant is an Animator without animation.
type instant struct{}

func (instant) Open(open bool, done func())                  { done() }
func (instant) ProgressStart(isOpen bool)                    {}
func (instant) Progress(ratio float32)                       {}
func (instant) ProgressEnd(shouldComplete bool, done func()) { done() }

// ParseSide parses "left" or "right". The empty string is Left.
func ParseSide(s string) (Side, error) {
	switch s {
	case "", "left", "start":
		return Left, nil
	case "right", "end":
		return Right, nil
	}
	return 0, fmt.Errorf("menu: unknown side %q", s)
}

// ParseType parses a menu type. The empty string is Reveal.
func ParseType(s string) (Type, error) {
	switch s {
	case "", "reveal":
		return Reveal, nil
	case "overlay":
		return Overlay, nil
	case "push":
		return Push, nil
	}
	return 0, fmt.Errorf("menu: unknown type %q", s)
}

func (s State) String() string {
	switch s {
	case Closed:
		return "Closed"
	case Opening:
		return "Opening"
	case Open:
		return "Open"
	case Closing:
		return "Closing"
	default:
		panic("invalid State")
	}
}

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		panic("invalid Side")
	}
}

func (t Type) String() string {
	switch t {
	case Reveal:
		return "reveal"
	case Overlay:
		return "overlay"
	case Push:
		return "push"
	default:
		panic("invalid Type")
	}
}
