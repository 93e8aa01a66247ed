// SPDX-License-Identifier: Unlicense OR MIT

package trace

import (
	"fmt"
	"time"

	"swipe.dev/anim"
	"swipe.dev/config"
	"swipe.dev/f32"
	"swipe.dev/gesture"
	"swipe.dev/internal/logutil"
	"swipe.dev/io/router"
	"swipe.dev/menu"
)

var logger = logutil.GetLogger("[trace] ")

// Result is the outcome of a replay.
type Result struct {
	// Log lists the lifecycle notifications in order.
	Log   []Entry
	Menus []MenuResult
	// Duration is the virtual time at the end of the replay.
	Duration time.Duration
}

// Entry is a lifecycle notification.
type Entry struct {
	At   time.Duration
	Text string
}

func (e Entry) String() string {
	return fmt.Sprintf("%8v %s", e.At, e.Text)
}

// MenuResult is the final state of a menu.
type MenuResult struct {
	ID    string
	State menu.State
	Open  bool
	// Value is the open ratio of the menu animation.
	Value float32
}

// replay holds the world a trace runs in.
type replay struct {
	now      time.Duration
	router   router.Router
	gestures *gesture.Controller
	menus    *menu.Controller
	// order lists the menus in creation order.
	order   []*menu.Menu
	drawers map[*menu.Menu]*anim.Drawer
	views   map[*menu.Menu]*view
	free    []*gesture.Gesture
	log     []Entry
}

// view records the visual side effects of a menu.
type view struct {
	r     *replay
	id    string
	shown bool
	scrim func()
}

func (v *view) ShowMenu(show bool) {
	if show != v.shown {
		v.shown = show
		v.r.logf("menu %s: shown=%v", v.id, show)
	}
}

func (v *view) SetContentOpen(open bool) {}

func (v *view) SetScrimHandler(f func()) {
	v.scrim = f
}

// Replay runs tr and returns the resulting log and menu states.
// A trace without gestures and menus runs against
// config.Default.
func Replay(tr Trace) (Result, error) {
	if err := tr.Validate(); err != nil {
		return Result{}, err
	}
	cfg := tr.Config
	if len(cfg.Gestures) == 0 && len(cfg.Menus) == 0 {
		cfg.Menus = config.Default().Menus
	}
	r := &replay{
		gestures: gesture.NewController(),
		menus:    menu.NewController(),
		drawers:  make(map[*menu.Menu]*anim.Drawer),
		views:    make(map[*menu.Menu]*view),
	}
	r.router.SetClock(func() time.Duration { return r.now })
	r.gestures.OnScrollChange(func(disabled bool) {
		r.logf("scroll disabled=%v", disabled)
	})
	viewport := cfg.ViewportRect()
	for _, mc := range cfg.Menus {
		if err := r.addMenu(mc, viewport); err != nil {
			return Result{}, err
		}
	}
	for _, gc := range cfg.Gestures {
		if err := r.addGesture(gc, viewport); err != nil {
			return Result{}, err
		}
	}
	for _, s := range tr.Steps {
		r.step(s)
	}
	res := Result{Log: r.log, Duration: r.now}
	for _, m := range r.order {
		res.Menus = append(res.Menus, MenuResult{
			ID:    m.ID(),
			State: m.State(),
			Open:  m.IsOpen(),
			Value: r.drawers[m].Value(),
		})
	}
	for _, g := range r.free {
		g.Close()
	}
	for _, m := range r.order {
		m.Destroy()
	}
	return res, nil
}

func (r *replay) addMenu(mc config.MenuConfig, viewport f32.Rectangle) error {
	cfg, dur, err := mc.Config()
	if err != nil {
		return err
	}
	if cfg.ID == "" {
		cfg.ID = menu.DefaultID
	}
	d := &anim.Drawer{Duration: dur}
	v := &view{r: r, id: cfg.ID}
	cfg.Content = v
	cfg.Animator = d
	cfg.Controller = r.menus
	cfg.Gestures = r.gestures
	cfg.Router = &r.router
	cfg.Viewport = viewport
	cfg.Now = r.wallClock
	cfg.Logger = logger
	cfg.OnChange = func(m *menu.Menu, s menu.State) {
		r.logf("menu %s: %v", m.ID(), s)
	}
	m := menu.New(cfg)
	if mc.Disabled {
		m.Enabled(false)
	}
	r.order = append(r.order, m)
	r.drawers[m] = d
	r.views[m] = v
	return nil
}

func (r *replay) addGesture(gc config.GestureConfig, viewport f32.Rectangle) error {
	opts, err := gc.Options()
	if err != nil {
		return err
	}
	name := opts.Name
	report := func(what string) func(d *gesture.Detail) {
		return func(d *gesture.Detail) {
			r.logf("gesture %s: %s at %v delta %v", name, what, d.Current, d.Delta)
		}
	}
	g := gesture.New(r.gestures, opts, gesture.Callbacks{
		OnDown:      report("down"),
		OnStart:     report("start"),
		OnMove:      report("move"),
		OnEnd:       report("end"),
		OnPress:     report("press"),
		OnUp:        report("up"),
		NotCaptured: report("not captured"),
		OnCancel:    report("cancel"),
	})
	g.Add(&r.router, gc.AreaRect(viewport))
	r.free = append(r.free, g)
	return nil
}

func (r *replay) step(s Step) {
	switch s.Kind {
	case "frame":
		dt, _ := s.frame()
		r.now += dt
		r.router.Frame()
		for _, m := range r.order {
			r.drawers[m].Tick(dt)
		}
	case "open":
		r.menus.Open(s.Menu)
	case "close":
		r.menus.Close(s.Menu)
	case "toggle":
		r.menus.Toggle(s.Menu)
	case "enable", "disable":
		r.menus.Enable(s.Menu, s.Kind == "enable")
	case "scrim":
		if m := r.menus.Get(s.Menu); m != nil {
			if v := r.views[m]; v.scrim != nil {
				r.logf("menu %s: scrim tap", m.ID())
				v.scrim()
			}
		}
	default:
		e, _ := s.event()
		if e.Time > r.now {
			r.now = e.Time
		}
		r.router.Queue(e)
	}
}

// wallClock maps the virtual clock to wall time for menus.
func (r *replay) wallClock() time.Time {
	return time.Unix(0, 0).Add(r.now)
}

func (r *replay) logf(format string, args ...interface{}) {
	r.log = append(r.log, Entry{At: r.now, Text: fmt.Sprintf(format, args...)})
}
