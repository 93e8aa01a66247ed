// SPDX-License-Identifier: Unlicense OR MIT

/*
Package pointer implements pointer events.

Mouse and touch input is normalized into Events carrying a
position, a timestamp and the Source that produced them. A
handler declares where it listens with an Attach target; the
router decides which handlers see which events.
*/
package pointer

import (
	"fmt"
	"strings"
	"time"

	"swipe.dev/f32"
)

// Event is a pointer event.
type Event struct {
	Kind   Kind
	Source Source
	// PointerID is the id for the pointer and can be used
	// to track a particular pointer from Press to
	// Release or Cancel.
	PointerID ID
	// Time is when the event was received. The
	// timestamp is relative to an undefined base. A zero
	// Time means the producer did not stamp the event and
	// consumers substitute their own clock.
	Time time.Duration
	// Buttons are the set of pressed mouse buttons for this event.
	Buttons Buttons
	// Position is the page coordinates of the event.
	Position f32.Point
}

type ID uint16

// Kind of an Event.
type Kind uint

// Source of an Event.
type Source uint8

// Buttons is a set of mouse buttons
type Buttons uint8

// Attach is the element a handler listens on for presses.
type Attach uint8

const (
	// A Cancel event is generated when the current gesture is
	// interrupted by other handlers or the system.
	Cancel Kind = 1 << iota
	// Press of a pointer.
	Press
	// Release of a pointer.
	Release
	// Move of a pointer.
	Move
)

const (
	// Mouse generated event.
	Mouse Source = iota
	// Touch generated event.
	Touch
)

const (
	// ButtonPrimary is the primary button, usually the left button for a
	// right-handed user.
	ButtonPrimary Buttons = 1 << iota
	// ButtonSecondary is the secondary button, usually the right button for a
	// right-handed user.
	ButtonSecondary
	// ButtonTertiary is the tertiary button, usually the middle button.
	ButtonTertiary
)

const (
	// AttachChild listens on the handler's own area.
	AttachChild Attach = iota
	// AttachParent listens on the area of the handler's parent.
	AttachParent
	// AttachBody listens on the whole page body.
	AttachBody
	// AttachDocument listens on the whole document.
	AttachDocument
	// AttachWindow listens on the window, including
	// events outside the document.
	AttachWindow
)

// Sources is the number of distinct Sources.
const Sources = 2

// Hit reports whether a press at an area-relative position
// is delivered to a handler attached with a.
func (a Attach) Hit(area f32.Rectangle, pos f32.Point) bool {
	switch a {
	case AttachChild, AttachParent:
		return pos.In(area)
	default:
		return true
	}
}

// ParseAttach parses the textual attach targets "child", "parent",
// "body", "document" and "window". The empty string means child.
func ParseAttach(s string) (Attach, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "child":
		return AttachChild, nil
	case "parent":
		return AttachParent, nil
	case "body":
		return AttachBody, nil
	case "document":
		return AttachDocument, nil
	case "window":
		return AttachWindow, nil
	default:
		return 0, fmt.Errorf("pointer: unknown attach target %q", s)
	}
}

// ParseSource parses "mouse" or "touch".
func ParseSource(s string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mouse":
		return Mouse, nil
	case "touch":
		return Touch, nil
	default:
		return 0, fmt.Errorf("pointer: unknown source %q", s)
	}
}

// ParseKind parses a single event kind such as "press" or "move".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "press":
		return Press, nil
	case "release":
		return Release, nil
	case "move":
		return Move, nil
	case "cancel":
		return Cancel, nil
	default:
		return 0, fmt.Errorf("pointer: unknown event kind %q", s)
	}
}

func (t Kind) String() string {
	if t == Cancel {
		return "Cancel"
	}
	var buf strings.Builder
	for tt := Kind(1); tt > 0; tt <<= 1 {
		if t&tt > 0 {
			if buf.Len() > 0 {
				buf.WriteByte('|')
			}
			buf.WriteString((t & tt).string())
		}
	}
	return buf.String()
}

func (t Kind) string() string {
	switch t {
	case Press:
		return "Press"
	case Release:
		return "Release"
	case Cancel:
		return "Cancel"
	case Move:
		return "Move"
	default:
		panic("unknown Type")
	}
}

func (s Source) String() string {
	switch s {
	case Mouse:
		return "Mouse"
	case Touch:
		return "Touch"
	default:
		panic("unknown source")
	}
}

func (a Attach) String() string {
	switch a {
	case AttachChild:
		return "child"
	case AttachParent:
		return "parent"
	case AttachBody:
		return "body"
	case AttachDocument:
		return "document"
	case AttachWindow:
		return "window"
	default:
		panic("unknown attach")
	}
}

// Contain reports whether the set b contains
// all of the buttons.
func (b Buttons) Contain(buttons Buttons) bool {
	return b&buttons == buttons
}

func (b Buttons) String() string {
	var strs []string
	if b.Contain(ButtonPrimary) {
		strs = append(strs, "ButtonPrimary")
	}
	if b.Contain(ButtonSecondary) {
		strs = append(strs, "ButtonSecondary")
	}
	if b.Contain(ButtonTertiary) {
		strs = append(strs, "ButtonTertiary")
	}
	return strings.Join(strs, "|")
}

func (Event) ImplementsEvent() {}
