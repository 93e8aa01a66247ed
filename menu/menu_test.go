// SPDX-License-Identifier: Unlicense OR MIT

package menu

import (
	"bytes"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type recorder struct {
	calls []string
	scrim func()
}

func (r *recorder) ShowMenu(show bool) {
	if show {
		r.calls = append(r.calls, "show")
	} else {
		r.calls = append(r.calls, "hide")
	}
}

func (r *recorder) SetContentOpen(open bool) {
	if open {
		r.calls = append(r.calls, "content-open")
	} else {
		r.calls = append(r.calls, "content-closed")
	}
}

func (r *recorder) SetScrimHandler(f func()) {
	r.scrim = f
}

// manual completes animations when told to.
type manual struct {
	view     *recorder
	opens    int
	progress []float32
	pending  func()
}

func (a *manual) Open(open bool, done func()) {
	a.opens++
	a.view.calls = append(a.view.calls, "animate")
	a.pending = done
}

func (a *manual) ProgressStart(isOpen bool) {
	a.view.calls = append(a.view.calls, "progress-start")
}

func (a *manual) Progress(ratio float32) {
	a.progress = append(a.progress, ratio)
}

func (a *manual) ProgressEnd(shouldComplete bool, done func()) {
	a.view.calls = append(a.view.calls, "progress-end")
	a.pending = done
}

func (a *manual) finish() {
	done := a.pending
	a.pending = nil
	done()
}

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time {
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestMenu(cfg Config) (*Menu, *recorder, *manual, *clock) {
	view := new(recorder)
	a := &manual{view: view}
	clk := &clock{t: time.Unix(0, 0)}
	cfg.Content = view
	cfg.Animator = a
	cfg.Now = clk.now
	return New(cfg), view, a, clk
}

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestSetOpen(t *testing.T) {
	m, view, a, clk := newTestMenu(Config{})
	ch := m.SetOpen(true)
	if m.State() != Opening || isClosed(ch) {
		t.Fatalf("state %v after SetOpen, expected Opening", m.State())
	}
	a.finish()
	if !isClosed(ch) || m.State() != Open || !m.IsOpen() {
		t.Fatalf("state %v after animation, expected Open", m.State())
	}
	if view.scrim == nil {
		t.Error("scrim handler not attached to an open menu")
	}
	clk.advance(DisableWindow)
	ch = m.Close()
	a.finish()
	if !isClosed(ch) || m.State() != Closed || m.IsOpen() {
		t.Fatalf("state %v after close, expected Closed", m.State())
	}
	if view.scrim != nil {
		t.Error("scrim handler attached to a closed menu")
	}
	want := []string{"show", "animate", "content-open", "show", "animate", "content-closed", "hide"}
	if diff := cmp.Diff(want, view.calls); diff != "" {
		t.Errorf("view calls (-want +got):\n%s", diff)
	}
}

func TestSetOpenIdempotent(t *testing.T) {
	m, _, a, clk := newTestMenu(Config{})
	first := m.SetOpen(true)
	clk.advance(5 * time.Millisecond)
	second := m.SetOpen(true)
	if !isClosed(second) {
		t.Error("repeated request did not settle immediately")
	}
	a.finish()
	clk.advance(5 * time.Millisecond)
	third := m.SetOpen(true)
	if a.opens != 1 {
		t.Errorf("got %d animations, expected 1", a.opens)
	}
	if !isClosed(first) || !isClosed(third) {
		t.Error("futures not resolved")
	}
}

func TestDisableWindow(t *testing.T) {
	m := New(Config{Content: new(recorder), Now: (&clock{t: time.Unix(0, 0)}).now})
	// The instant animator settles within the call.
	m.Open()
	if !m.IsOpen() {
		t.Fatal("menu not open")
	}
	m.Close()
	if !m.IsOpen() {
		t.Error("close within the disable window was not ignored")
	}
}

func TestToggle(t *testing.T) {
	clk := &clock{t: time.Unix(0, 0)}
	m := New(Config{Content: new(recorder), Now: clk.now})
	for i, want := range []bool{true, false, true} {
		m.Toggle()
		if m.IsOpen() != want {
			t.Errorf("toggle %d: open %v, expected %v", i, m.IsOpen(), want)
		}
		clk.advance(DisableWindow)
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name     string
		open     bool
		complete bool
		want     bool
	}{
		{"open", false, true, true},
		{"open cancelled", false, false, false},
		{"close", true, true, false},
		{"close cancelled", true, false, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m, view, a, clk := newTestMenu(Config{})
			if test.open {
				m.Open()
				a.finish()
				clk.advance(DisableWindow)
			}
			view.calls = nil
			m.SetProgressStart()
			if m.State() != Opening && m.State() != Closing {
				t.Fatalf("state %v during drag", m.State())
			}
			m.SetProgress(0.5)
			m.SetProgress(1.5)
			if got := m.SetOpen(!test.open); !isClosed(got) || a.opens > 1 {
				t.Error("SetOpen during a drag was not ignored")
			}
			ch := m.SetProgressEnd(test.complete)
			a.finish()
			if !isClosed(ch) || m.IsOpen() != test.want {
				t.Errorf("open %v after drag, expected %v", m.IsOpen(), test.want)
			}
			if diff := cmp.Diff([]float32{0.5, 1}, a.progress); diff != "" {
				t.Errorf("progress (-want +got):\n%s", diff)
			}
			if view.calls[0] != "show" || view.calls[1] != "progress-start" {
				t.Errorf("drag did not place the menu before animating: %v", view.calls)
			}
			if (view.scrim != nil) != test.want {
				t.Errorf("scrim attached %v, expected %v", view.scrim != nil, test.want)
			}
		})
	}
}

func TestProgressStartDisabled(t *testing.T) {
	m, _, a, _ := newTestMenu(Config{})
	m.Open()
	a.finish()
	m.SetProgressStart()
	if m.State() != Open {
		t.Errorf("drag started within the disable window: %v", m.State())
	}
	if ch := m.SetProgressEnd(true); !isClosed(ch) {
		t.Error("ending a drag that never started did not settle")
	}
}

func TestMissingContent(t *testing.T) {
	var buf bytes.Buffer
	ctrl := NewController()
	m := New(Config{ID: "left", Controller: ctrl, Logger: log.New(&buf, "", 0)})
	if !strings.Contains(buf.String(), "content") {
		t.Errorf("no error logged, got %q", buf.String())
	}
	if !m.Inert() {
		t.Error("menu without content is not inert")
	}
	if !isClosed(m.Open()) || m.IsOpen() || m.State() != Closed {
		t.Error("inert menu opened")
	}
	m.SetProgressStart()
	if m.State() != Closed {
		t.Error("inert menu started a drag")
	}
	if ctrl.Get("left") != nil {
		t.Error("inert menu registered")
	}
}

func TestScrimTap(t *testing.T) {
	clk := &clock{t: time.Unix(0, 0)}
	view := new(recorder)
	m := New(Config{Content: view, Now: clk.now})
	m.Open()
	clk.advance(DisableWindow)
	m.Enabled(false)
	view.scrim()
	if !m.IsOpen() {
		t.Error("scrim tap closed a disabled menu")
	}
	m.Enabled(true)
	view.scrim()
	if m.IsOpen() {
		t.Error("scrim tap did not close the menu")
	}
}

func TestOnChange(t *testing.T) {
	var states []State
	m, _, a, _ := newTestMenu(Config{OnChange: func(m *Menu, s State) { states = append(states, s) }})
	m.Open()
	a.finish()
	if diff := cmp.Diff([]State{Opening, Open}, states); diff != "" {
		t.Errorf("states (-want +got):\n%s", diff)
	}
}

func TestAnimatorCompletesTwice(t *testing.T) {
	var buf bytes.Buffer
	m, _, a, clk := newTestMenu(Config{Logger: log.New(&buf, "", 0)})
	m.Open()
	done := a.pending
	a.finish()
	clk.advance(DisableWindow)
	m.Close()
	done()
	if !m.Transitioning() || m.State() != Closing {
		t.Errorf("stale completion settled the close: %v", m.State())
	}
	if buf.Len() == 0 {
		t.Error("double completion not logged")
	}
}

func TestParse(t *testing.T) {
	if s, err := ParseSide("right"); err != nil || s != Right {
		t.Errorf("ParseSide(right) = %v, %v", s, err)
	}
	if _, err := ParseSide("top"); err == nil {
		t.Error("ParseSide(top) succeeded")
	}
	if typ, err := ParseType(""); err != nil || typ != Reveal {
		t.Errorf("ParseType(\"\") = %v, %v", typ, err)
	}
	if typ, err := ParseType("overlay"); err != nil || typ != Overlay {
		t.Errorf("ParseType(overlay) = %v, %v", typ, err)
	}
}
