// SPDX-License-Identifier: Unlicense OR MIT

/*
Package event contains the types shared by event producers
and consumers.

Producers such as a platform input loop or a recorded trace
hand events to a router; consumers such as gestures receive
them from the router as they arrive.
*/
package event

// Tag is the stable identifier for an event handler.
// For a handler h, the tag is typically &h.
type Tag interface{}

// Event is the marker interface for events.
type Event interface {
	ImplementsEvent()
}
