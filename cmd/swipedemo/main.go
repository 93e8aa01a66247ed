// SPDX-License-Identifier: Unlicense OR MIT

// Command swipedemo opens a window with the configured menus and
// drives them with live mouse and touch input. Space toggles the
// first menu, Escape quits. With -record, the session is saved as
// a trace that the swipe command can replay.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"io"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"swipe.dev/anim"
	"swipe.dev/config"
	"swipe.dev/f32"
	"swipe.dev/gesture"
	"swipe.dev/internal/logutil"
	"swipe.dev/io/pointer"
	"swipe.dev/io/router"
	"swipe.dev/menu"
	"swipe.dev/trace"
)

var (
	configFile = flag.String("config", config.DefaultConfigPath(), "configuration file")
	recordFile = flag.String("record", "", "save the session as a trace file")
	verbose    = flag.Bool("v", false, "log diagnostics to stderr")
)

var logger = logutil.GetLogger("[swipedemo] ")

// tapSlop is the distance a press may travel and still count as a
// tap on the scrim.
const tapSlop = 10

var (
	background = color.RGBA{R: 0x20, G: 0x20, B: 0x24, A: 0xff}
	contentCol = color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}
	menuCol    = color.RGBA{R: 0x3a, G: 0x6e, B: 0xc8, A: 0xff}
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: swipedemo [-config FILE] [-record FILE]\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if !*verbose {
		logutil.SetOutput(io.Discard)
	}
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "swipedemo: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return err
	}
	d, err := newDemo(cfg)
	if err != nil {
		return err
	}
	defer d.close()
	ebiten.SetWindowTitle("swipe")
	ebiten.SetWindowSize(int(d.viewport.Dx()), int(d.viewport.Dy()))
	if err := ebiten.RunGame(d); err != nil && err != ebiten.Termination {
		return err
	}
	if *recordFile == "" {
		return nil
	}
	f, err := os.Create(*recordFile)
	if err != nil {
		return err
	}
	if err := trace.Encode(f, d.rec.Trace()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// drawer is a menu with its animation and view.
type drawer struct {
	m    *menu.Menu
	anim *anim.Drawer
	view *view
}

// view tracks the visible state of a menu for drawing.
type view struct {
	shown bool
	scrim func()
}

func (v *view) ShowMenu(show bool)       { v.shown = show }
func (v *view) SetContentOpen(open bool) {}
func (v *view) SetScrimHandler(f func()) { v.scrim = f }

// contact is an active pointer.
type contact struct {
	id    pointer.ID
	pos   f32.Point
	start f32.Point
}

type demo struct {
	now      time.Duration
	viewport f32.Rectangle
	router   router.Router
	gestures *gesture.Controller
	menus    *menu.Controller
	drawers  []*drawer
	free     []*gesture.Gesture
	rec      *trace.Recorder

	mouse   *contact
	touches map[ebiten.TouchID]*contact
	touchID []ebiten.TouchID
	nextID  pointer.ID
	pixel   *ebiten.Image
}

func newDemo(cfg config.File) (*demo, error) {
	d := &demo{
		viewport: cfg.ViewportRect(),
		gestures: gesture.NewController(),
		menus:    menu.NewController(),
		rec:      trace.NewRecorder("swipedemo", cfg),
		touches:  make(map[ebiten.TouchID]*contact),
		pixel:    ebiten.NewImage(1, 1),
	}
	d.pixel.Fill(color.White)
	d.router.SetClock(func() time.Duration { return d.now })
	d.gestures.OnScrollChange(func(disabled bool) {
		logger.Printf("scroll disabled=%v", disabled)
	})
	for _, mc := range cfg.Menus {
		if err := d.addMenu(mc); err != nil {
			return nil, err
		}
	}
	for _, gc := range cfg.Gestures {
		opts, err := gc.Options()
		if err != nil {
			return nil, err
		}
		name := opts.Name
		report := func(what string) func(*gesture.Detail) {
			return func(dt *gesture.Detail) {
				logger.Printf("gesture %s: %s at %v velocity %v", name, what, dt.Current, dt.Velocity)
			}
		}
		// Every callback is set so that no events queue up.
		g := gesture.New(d.gestures, opts, gesture.Callbacks{
			OnDown:      report("down"),
			OnStart:     report("start"),
			OnMove:      report("move"),
			OnEnd:       report("end"),
			OnPress:     report("press"),
			OnUp:        report("up"),
			NotCaptured: report("not captured"),
			OnCancel:    report("cancel"),
		})
		g.Add(&d.router, gc.AreaRect(d.viewport))
		d.free = append(d.free, g)
	}
	return d, nil
}

func (d *demo) addMenu(mc config.MenuConfig) error {
	cfg, dur, err := mc.Config()
	if err != nil {
		return err
	}
	dr := &drawer{anim: &anim.Drawer{Duration: dur}, view: new(view)}
	cfg.Content = dr.view
	cfg.Animator = dr.anim
	cfg.Controller = d.menus
	cfg.Gestures = d.gestures
	cfg.Router = &d.router
	cfg.Viewport = d.viewport
	cfg.Logger = logger
	cfg.OnChange = func(m *menu.Menu, s menu.State) {
		logger.Printf("menu %s: %v", m.ID(), s)
	}
	dr.m = menu.New(cfg)
	if mc.Disabled {
		dr.m.Enabled(false)
	}
	d.drawers = append(d.drawers, dr)
	return nil
}

func (d *demo) close() {
	for _, g := range d.free {
		g.Close()
	}
	for _, dr := range d.drawers {
		dr.m.Destroy()
	}
}

func (d *demo) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	dt := time.Second / time.Duration(ebiten.TPS())
	d.now += dt
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		d.rec.Menu("toggle", "")
		d.menus.Toggle("")
	}
	d.processMouse()
	d.processTouches()
	d.router.Frame()
	d.rec.Frame(dt)
	for _, dr := range d.drawers {
		dr.anim.Tick(dt)
	}
	return nil
}

func (d *demo) processMouse() {
	mx, my := ebiten.CursorPosition()
	pos := f32.Pt(float32(mx), float32(my))
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	switch {
	case pressed && d.mouse == nil:
		d.mouse = d.press(pointer.Mouse, pos)
	case pressed && d.mouse.pos != pos:
		d.move(pointer.Mouse, d.mouse, pos)
	case !pressed && d.mouse != nil:
		d.release(pointer.Mouse, d.mouse, pos)
		d.mouse = nil
	}
}

func (d *demo) processTouches() {
	d.touchID = ebiten.AppendTouchIDs(d.touchID[:0])
	active := make(map[ebiten.TouchID]bool, len(d.touchID))
	for _, tid := range d.touchID {
		active[tid] = true
		tx, ty := ebiten.TouchPosition(tid)
		pos := f32.Pt(float32(tx), float32(ty))
		c, ok := d.touches[tid]
		switch {
		case !ok:
			d.touches[tid] = d.press(pointer.Touch, pos)
		case c.pos != pos:
			d.move(pointer.Touch, c, pos)
		}
	}
	for tid, c := range d.touches {
		if !active[tid] {
			d.release(pointer.Touch, c, c.pos)
			delete(d.touches, tid)
		}
	}
}

func (d *demo) press(src pointer.Source, pos f32.Point) *contact {
	d.nextID++
	c := &contact{id: d.nextID, pos: pos, start: pos}
	d.queue(pointer.Press, src, c)
	return c
}

func (d *demo) move(src pointer.Source, c *contact, pos f32.Point) {
	c.pos = pos
	d.queue(pointer.Move, src, c)
}

func (d *demo) release(src pointer.Source, c *contact, pos f32.Point) {
	c.pos = pos
	d.queue(pointer.Release, src, c)
	if pos.Sub(c.start).Len2() > tapSlop*tapSlop {
		return
	}
	for _, dr := range d.drawers {
		if dr.view.scrim != nil && !pos.In(d.menuRect(dr)) {
			d.rec.Menu("scrim", dr.m.ID())
			dr.view.scrim()
			return
		}
	}
}

func (d *demo) queue(kind pointer.Kind, src pointer.Source, c *contact) {
	e := pointer.Event{
		Kind:      kind,
		Source:    src,
		PointerID: c.id,
		Time:      d.now,
		Position:  c.pos,
	}
	if src == pointer.Mouse && kind != pointer.Release {
		e.Buttons = pointer.ButtonPrimary
	}
	d.rec.Event(e)
	d.router.Queue(e)
}

// menuRect returns the current bounds of a menu.
func (d *demo) menuRect(dr *drawer) f32.Rectangle {
	w := dr.m.Width()
	o := anim.Place(dr.m.Type(), dr.m.Side(), w, dr.anim.Value())
	x := o.Menu
	if dr.m.Side() == menu.Right {
		x += d.viewport.Dx() - w
	}
	return f32.Rect(x, 0, x+w, d.viewport.Dy())
}

func (d *demo) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	var open *drawer
	for _, dr := range d.drawers {
		if dr.view.shown {
			open = dr
			break
		}
	}
	vw, vh := d.viewport.Dx(), d.viewport.Dy()
	if open == nil {
		d.fill(screen, f32.Rect(0, 0, vw, vh), contentCol, 1)
		return
	}
	o := anim.Place(open.m.Type(), open.m.Side(), open.m.Width(), open.anim.Value())
	content := f32.Rect(o.Content, 0, o.Content+vw, vh)
	if open.m.Type() == menu.Reveal {
		d.fill(screen, d.menuRect(open), menuCol, 1)
		d.fill(screen, content, contentCol, 1)
		return
	}
	d.fill(screen, content, contentCol, 1)
	if o.Scrim > 0 {
		d.fill(screen, content, color.Black, o.Scrim)
	}
	d.fill(screen, d.menuRect(open), menuCol, 1)
}

// fill draws r in c at opacity alpha.
func (d *demo) fill(dst *ebiten.Image, r f32.Rectangle, c color.Color, alpha float32) {
	cr, cg, cb, _ := c.RGBA()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(r.Dx()), float64(r.Dy()))
	op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
	op.ColorScale.Scale(float32(cr)/0xffff*alpha, float32(cg)/0xffff*alpha, float32(cb)/0xffff*alpha, alpha)
	dst.DrawImage(d.pixel, op)
}

func (d *demo) Layout(_, _ int) (int, int) {
	return int(d.viewport.Dx()), int(d.viewport.Dy())
}
