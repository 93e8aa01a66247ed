// SPDX-License-Identifier: Unlicense OR MIT

/*
Package trace records and replays pointer input against gestures
and menus.

A Trace is a configuration and a list of steps: pointer events,
frames and programmatic menu operations. Replay runs the steps on
a virtual clock and returns a log of every gesture and menu
lifecycle notification, which makes traces usable as regression
tests and as reproductions of field reports.
*/
package trace

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"swipe.dev/config"
	"swipe.dev/f32"
	"swipe.dev/io/pointer"
)

// DefaultFrame is the duration of frame steps without one.
const DefaultFrame = 16 * time.Millisecond

// Trace is a recorded or hand written input sequence.
type Trace struct {
	Name   string      `yaml:"name,omitempty"`
	Config config.File `yaml:"config,omitempty"`
	Steps  []Step      `yaml:"steps,omitempty"`
}

// Step is a single trace step. Kind is one of the pointer event
// kinds "press", "move", "release" and "cancel", "frame", or the
// menu operations "open", "close", "toggle", "enable", "disable"
// and "scrim".
type Step struct {
	Kind string `yaml:"kind"`
	// Source is "touch" or "mouse". Empty means touch.
	Source string  `yaml:"source,omitempty"`
	X      float32 `yaml:"x,omitempty"`
	Y      float32 `yaml:"y,omitempty"`
	// At is the event time, such as "120ms". Events without
	// a time happen at the current frame time.
	At string `yaml:"at,omitempty"`
	// DT is the frame duration. Empty means DefaultFrame.
	DT string `yaml:"dt,omitempty"`
	// Menu is the menu ID of menu operations.
	Menu string `yaml:"menu,omitempty"`
}

// Load reads a YAML trace file.
func Load(path string) (Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Trace{}, fmt.Errorf("failed to read trace: %w", err)
	}
	tr, err := Parse(data)
	if err != nil {
		return Trace{}, fmt.Errorf("%s: %w", path, err)
	}
	return tr, nil
}

// Parse decodes and validates a YAML trace.
func Parse(data []byte) (Trace, error) {
	var tr Trace
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&tr); err != nil && err != io.EOF {
		return Trace{}, fmt.Errorf("failed to decode trace: %w", err)
	}
	if err := tr.Validate(); err != nil {
		return Trace{}, err
	}
	return tr, nil
}

// Encode writes tr as YAML.
func Encode(w io.Writer, tr Trace) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tr); err != nil {
		return err
	}
	return enc.Close()
}

// Validate reports the first invalid step or setting.
func (tr Trace) Validate() error {
	if err := tr.Config.Validate(); err != nil {
		return err
	}
	for i, s := range tr.Steps {
		if err := s.validate(); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}

func (s Step) validate() error {
	switch s.Kind {
	case "frame":
		_, err := s.frame()
		return err
	case "open", "close", "toggle", "enable", "disable", "scrim":
		return nil
	}
	_, err := s.event()
	return err
}

// event converts a pointer step. Unset times are zero.
func (s Step) event() (pointer.Event, error) {
	kind, err := pointer.ParseKind(s.Kind)
	if err != nil {
		return pointer.Event{}, err
	}
	e := pointer.Event{
		Kind:     kind,
		Source:   pointer.Touch,
		Position: f32.Pt(s.X, s.Y),
	}
	if s.Source != "" {
		if e.Source, err = pointer.ParseSource(s.Source); err != nil {
			return e, err
		}
	}
	if e.Source == pointer.Mouse {
		e.Buttons = pointer.ButtonPrimary
	}
	if s.At != "" {
		if e.Time, err = parseDuration(s.At); err != nil {
			return e, err
		}
	}
	return e, nil
}

func (s Step) frame() (time.Duration, error) {
	if s.DT == "" {
		return DefaultFrame, nil
	}
	return parseDuration(s.DT)
}

func parseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", s)
	}
	return d, nil
}

// Recorder builds a Trace from live input. Event times and frame
// durations are expected to come from the same clock.
type Recorder struct {
	tr Trace
}

// NewRecorder returns a Recorder for a trace with the given name
// and configuration.
func NewRecorder(name string, cfg config.File) *Recorder {
	return &Recorder{tr: Trace{Name: name, Config: cfg}}
}

// Event records e.
func (r *Recorder) Event(e pointer.Event) {
	s := Step{X: e.Position.X, Y: e.Position.Y}
	if e.Time > 0 {
		s.At = e.Time.String()
	}
	switch e.Kind {
	case pointer.Press:
		s.Kind = "press"
	case pointer.Release:
		s.Kind = "release"
	case pointer.Move:
		s.Kind = "move"
	case pointer.Cancel:
		s.Kind = "cancel"
	}
	if e.Source == pointer.Mouse {
		s.Source = "mouse"
	}
	r.tr.Steps = append(r.tr.Steps, s)
}

// Frame records a frame of duration dt.
func (r *Recorder) Frame(dt time.Duration) {
	s := Step{Kind: "frame"}
	if dt != DefaultFrame {
		s.DT = dt.String()
	}
	r.tr.Steps = append(r.tr.Steps, s)
}

// Menu records a menu operation on the menu with the given ID.
func (r *Recorder) Menu(kind, id string) {
	r.tr.Steps = append(r.tr.Steps, Step{Kind: kind, Menu: id})
}

// Trace returns the recorded trace.
func (r *Recorder) Trace() Trace {
	tr := r.tr
	tr.Steps = append([]Step(nil), r.tr.Steps...)
	return tr
}
