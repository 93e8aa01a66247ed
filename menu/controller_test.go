// SPDX-License-Identifier: Unlicense OR MIT

package menu

import (
	"testing"
	"time"
)

func newMenus(t *testing.T) (*Controller, *Menu, *Menu, *clock) {
	t.Helper()
	clk := &clock{t: time.Unix(0, 0)}
	ctrl := NewController()
	left := New(Config{ID: "left", Side: Left, Content: new(recorder), Controller: ctrl, Now: clk.now})
	right := New(Config{ID: "right", Side: Right, Content: new(recorder), Controller: ctrl, Now: clk.now})
	return ctrl, left, right, clk
}

func TestControllerOpenClosesOthers(t *testing.T) {
	ctrl, left, right, clk := newMenus(t)
	ctrl.Open("left")
	if !left.IsOpen() || ctrl.GetOpen() != left {
		t.Fatal("left menu not open")
	}
	clk.advance(DisableWindow)
	ctrl.Open("right")
	if left.IsOpen() || !right.IsOpen() {
		t.Errorf("left open %v, right open %v; expected only right", left.IsOpen(), right.IsOpen())
	}
	clk.advance(DisableWindow)
	ctrl.Close("")
	if ctrl.IsOpen("") {
		t.Error("close all left a menu open")
	}
}

func TestControllerLookup(t *testing.T) {
	ctrl, left, right, _ := newMenus(t)
	if ctrl.Get("right") != right || ctrl.Get("") != left {
		t.Error("lookup by id failed")
	}
	if ctrl.GetBySide(Right) != right || ctrl.GetBySide(Left) != left {
		t.Error("lookup by side failed")
	}
	if ctrl.Get("missing") != nil {
		t.Error("found a missing menu")
	}
	if ch := ctrl.Open("missing"); !isClosed(ch) {
		t.Error("opening a missing menu did not settle")
	}
	right.Destroy()
	if got := len(ctrl.Menus()); got != 1 {
		t.Errorf("got %d menus after destroy, expected 1", got)
	}
}

func TestControllerEnable(t *testing.T) {
	ctrl, left, _, _ := newMenus(t)
	other := New(Config{ID: "other", Side: Left, Content: new(recorder), Controller: ctrl})
	ctrl.Enable("other", true)
	if left.IsEnabled() || !other.IsEnabled() {
		t.Errorf("left enabled %v, other enabled %v", left.IsEnabled(), other.IsEnabled())
	}
	if ctrl.GetBySide(Left) != other {
		t.Error("side lookup returned a disabled menu")
	}
}

func TestControllerToggleAnimating(t *testing.T) {
	clk := &clock{t: time.Unix(0, 0)}
	ctrl := NewController()
	view := new(recorder)
	a := &manual{view: view}
	m := New(Config{Content: view, Animator: a, Controller: ctrl, Now: clk.now})
	ctrl.Toggle(DefaultID)
	if !ctrl.IsAnimating() {
		t.Error("controller not animating during a transition")
	}
	a.finish()
	if ctrl.IsAnimating() || !ctrl.IsOpen(DefaultID) {
		t.Error("transition did not settle")
	}
	clk.advance(DisableWindow)
	ctrl.Toggle("")
	a.finish()
	if m.IsOpen() {
		t.Error("toggle did not close the menu")
	}
}

func TestControllerOpenDuringTransition(t *testing.T) {
	clk := &clock{t: time.Unix(0, 0)}
	ctrl := NewController()
	newMenu := func(id string, side Side) (*Menu, *manual) {
		view := new(recorder)
		a := &manual{view: view}
		return New(Config{ID: id, Side: side, Content: view, Animator: a, Controller: ctrl, Now: clk.now}), a
	}
	left, la := newMenu("left", Left)
	right, ra := newMenu("right", Right)

	ctrl.Open("left")
	clk.advance(40 * time.Millisecond)
	if ch := ctrl.Open("right"); !isClosed(ch) || right.State() != Closed {
		t.Fatalf("open during a transition started %v", right.State())
	}
	la.finish()
	if !left.IsOpen() || right.IsOpen() {
		t.Fatalf("left open %v, right open %v; expected only left", left.IsOpen(), right.IsOpen())
	}

	clk.advance(DisableWindow)
	ctrl.Open("right")
	if left.State() != Closing || right.State() != Opening {
		t.Fatalf("got left %v and right %v, expected Closing and Opening", left.State(), right.State())
	}
	la.finish()
	ra.finish()
	if left.IsOpen() || !right.IsOpen() {
		t.Errorf("left open %v, right open %v; expected only right", left.IsOpen(), right.IsOpen())
	}
}

func TestControllerOpenWhileOtherDisabled(t *testing.T) {
	ctrl, left, right, clk := newMenus(t)
	ctrl.Open("left")
	// Within the disable window the open menu refuses to close.
	if ch := ctrl.Open("right"); !isClosed(ch) || right.IsOpen() {
		t.Fatal("opened a second menu while the first could not close")
	}
	clk.advance(DisableWindow)
	ctrl.Open("right")
	if left.IsOpen() || !right.IsOpen() {
		t.Errorf("left open %v, right open %v; expected only right", left.IsOpen(), right.IsOpen())
	}
}
