// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"fmt"
	"strings"
	"time"

	"swipe.dev/f32"
	"swipe.dev/io/pointer"
)

// Detail describes the current frame of a gesture. A Gesture
// owns its Detail and mutates it in place; callbacks must not
// retain the pointer past their return.
type Detail struct {
	Type Type
	// Event is the pointer event that produced this frame.
	Event pointer.Event

	Start     f32.Point
	StartTime time.Duration
	Current   f32.Point
	Time      time.Duration
	Delta     f32.Point
	// Velocity is in pixels per 60fps frame.
	Velocity f32.Point

	DirectionX         Direction
	DirectionY         Direction
	VelocityDirectionX Direction
	VelocityDirectionY Direction
}

// Direction of movement along one axis.
type Direction uint8

// Type is a set of gesture types.
type Type uint8

// Axis is the axis of a pan.
type Axis uint8

const (
	NoDirection Direction = iota
	Left
	Right
	Up
	Down
)

const (
	// TypePan is a directional drag.
	TypePan Type = 1 << iota
	// TypePress is a press and release without movement.
	TypePress
)

const (
	Horizontal Axis = iota
	Vertical
)

func directionX(dx float32) Direction {
	switch {
	case dx > 0:
		return Right
	case dx < 0:
		return Left
	default:
		return NoDirection
	}
}

func directionY(dy float32) Direction {
	switch {
	case dy > 0:
		return Down
	case dy < 0:
		return Up
	default:
		return NoDirection
	}
}

// ParseType parses a comma separated list of gesture types,
// such as "pan", "press" or "pan, press".
func ParseType(s string) (Type, error) {
	var t Type
	for _, f := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "pan":
			t |= TypePan
		case "press":
			t |= TypePress
		case "":
		default:
			return 0, fmt.Errorf("gesture: unknown type %q", f)
		}
	}
	return t, nil
}

// ParseAxis parses "x" or "y".
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "x":
		return Horizontal, nil
	case "y":
		return Vertical, nil
	default:
		return 0, fmt.Errorf("gesture: unknown direction %q", s)
	}
}

func (d Direction) String() string {
	switch d {
	case NoDirection:
		return "none"
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		panic("invalid Direction")
	}
}

func (t Type) String() string {
	var strs []string
	if t&TypePan != 0 {
		strs = append(strs, "pan")
	}
	if t&TypePress != 0 {
		strs = append(strs, "press")
	}
	return strings.Join(strs, ",")
}

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "Horizontal"
	case Vertical:
		return "Vertical"
	default:
		panic("invalid Axis")
	}
}
