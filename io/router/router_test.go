// SPDX-License-Identifier: Unlicense OR MIT

package router

import (
	"testing"
	"time"

	"swipe.dev/f32"
	"swipe.dev/io/pointer"
)

type recorder struct {
	events  []pointer.Event
	onEvent func(e pointer.Event)
}

func (r *recorder) Event(e pointer.Event) {
	r.events = append(r.events, e)
	if r.onEvent != nil {
		r.onEvent(e)
	}
}

func (r *recorder) kinds() []pointer.Kind {
	var kinds []pointer.Kind
	for _, e := range r.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

func assertKinds(t *testing.T, got []pointer.Kind, want ...pointer.Kind) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v events, expected %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("event %d: got %v, expected %v", i, got[i], want[i])
		}
	}
}

func TestPressHitTest(t *testing.T) {
	child := new(recorder)
	doc := new(recorder)
	var r Router
	r.Add(InputOp{Tag: child, Attach: pointer.AttachChild, Area: f32.Rect(0, 0, 50, 50)})
	r.Add(InputOp{Tag: doc, Attach: pointer.AttachDocument})

	r.Queue(
		pointer.Event{Kind: pointer.Press, Position: f32.Pt(10, 10)},
		pointer.Event{Kind: pointer.Press, Position: f32.Pt(100, 10)},
	)
	if got := len(child.events); got != 1 {
		t.Errorf("child got %d presses, expected 1", got)
	}
	if got := len(doc.events); got != 2 {
		t.Errorf("document got %d presses, expected 2", got)
	}
}

func TestListenersFollowEnable(t *testing.T) {
	h := new(recorder)
	var r Router
	r.Add(InputOp{Tag: h, Attach: pointer.AttachWindow})

	move := pointer.Event{Kind: pointer.Move, Source: pointer.Touch}
	r.Queue(move)
	assertKinds(t, h.kinds())

	r.Enable(h, pointer.Touch, pointer.Move|pointer.Release, true)
	if got := r.Listening(h, pointer.Touch); got != pointer.Press|pointer.Move|pointer.Release {
		t.Errorf("listening %v, expected Press|Release|Move", got)
	}
	r.Queue(move, pointer.Event{Kind: pointer.Move, Source: pointer.Mouse})
	assertKinds(t, h.kinds(), pointer.Move)

	r.Enable(h, pointer.Touch, pointer.Move|pointer.Release, false)
	r.Queue(move)
	assertKinds(t, h.kinds(), pointer.Move)
}

func TestDisabledDuringDispatch(t *testing.T) {
	first := new(recorder)
	second := new(recorder)
	var r Router
	r.Add(InputOp{Tag: first, Attach: pointer.AttachWindow})
	r.Add(InputOp{Tag: second, Attach: pointer.AttachWindow})
	r.Enable(first, pointer.Mouse, pointer.Release, true)
	r.Enable(second, pointer.Mouse, pointer.Release, true)
	first.onEvent = func(e pointer.Event) {
		r.Enable(second, pointer.Mouse, pointer.Release, false)
	}
	r.Queue(pointer.Event{Kind: pointer.Release})
	if len(second.events) != 0 {
		t.Errorf("disabled handler received %v", second.kinds())
	}
}

func TestRemove(t *testing.T) {
	h := new(recorder)
	var r Router
	r.Add(InputOp{Tag: h, Attach: pointer.AttachWindow})
	r.Remove(h)
	r.Queue(pointer.Event{Kind: pointer.Press})
	if len(h.events) != 0 {
		t.Errorf("removed handler received events")
	}
	r.Enable(h, pointer.Mouse, pointer.Move, true)
	if got := r.Listening(h, pointer.Mouse); got != 0 {
		t.Errorf("removed handler listening for %v", got)
	}
}

func TestFrameWrites(t *testing.T) {
	var r Router
	var order []int
	r.Write(func() {
		order = append(order, 1)
		r.Write(func() { order = append(order, 3) })
	})
	r.Write(func() { order = append(order, 2) })
	if got := r.Pending(); got != 2 {
		t.Fatalf("pending %d, expected 2", got)
	}
	r.Frame()
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("first frame ran %v, expected [1 2]", order)
	}
	r.Frame()
	if len(order) != 3 || order[2] != 3 {
		t.Errorf("second frame ran %v, expected [1 2 3]", order)
	}
	if got := r.Frames(); got != 2 {
		t.Errorf("got %d frames, expected 2", got)
	}
}

func TestClock(t *testing.T) {
	var r Router
	r.SetClock(func() time.Duration { return 42 * time.Millisecond })
	if got := r.Now(); got != 42*time.Millisecond {
		t.Errorf("got %v, expected 42ms", got)
	}
}
