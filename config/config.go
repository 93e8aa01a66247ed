// SPDX-License-Identifier: Unlicense OR MIT

// Package config loads gesture and menu configuration from YAML or
// TOML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"swipe.dev/f32"
	"swipe.dev/gesture"
	"swipe.dev/io/pointer"
	"swipe.dev/menu"
)

// Format is a configuration file format.
type Format uint8

const (
	YAML Format = iota
	TOML
)

// File is a configuration file.
type File struct {
	// Viewport is the screen rectangle as [x0, y0, x1, y1].
	Viewport []float32      `yaml:"viewport,omitempty" toml:"viewport,omitempty"`
	Gestures []GestureConfig `yaml:"gestures,omitempty" toml:"gestures,omitempty"`
	Menus    []MenuConfig    `yaml:"menus,omitempty" toml:"menus,omitempty"`
}

// GestureConfig configures a free-standing gesture.
type GestureConfig struct {
	Name          string   `yaml:"name" toml:"name"`
	AttachTo      string   `yaml:"attachTo,omitempty" toml:"attach-to,omitempty"`
	Direction     string   `yaml:"direction,omitempty" toml:"direction,omitempty"`
	Threshold     float32  `yaml:"threshold,omitempty" toml:"threshold,omitempty"`
	MaxAngle      float32  `yaml:"maxAngle,omitempty" toml:"max-angle,omitempty"`
	Priority      int      `yaml:"gesturePriority,omitempty" toml:"gesture-priority,omitempty"`
	DisableScroll bool     `yaml:"disableScroll,omitempty" toml:"disable-scroll,omitempty"`
	AutoBlockAll  bool     `yaml:"autoBlockAll,omitempty" toml:"auto-block-all,omitempty"`
	Type          string   `yaml:"type,omitempty" toml:"type,omitempty"`
	Block         []string `yaml:"block,omitempty" toml:"block,omitempty"`
	// Area is the rectangle of the attach target as
	// [x0, y0, x1, y1]. Empty means the viewport.
	Area []float32 `yaml:"area,omitempty" toml:"area,omitempty"`
}

// MenuConfig configures a menu.
type MenuConfig struct {
	ID           string  `yaml:"id,omitempty" toml:"id,omitempty"`
	Side         string  `yaml:"side,omitempty" toml:"side,omitempty"`
	Type         string  `yaml:"type,omitempty" toml:"type,omitempty"`
	Width        float32 `yaml:"width,omitempty" toml:"width,omitempty"`
	MaxEdgeStart float32 `yaml:"maxEdgeStart,omitempty" toml:"max-edge-start,omitempty"`
	// Duration of the open and close animations, such as "300ms".
	Duration string `yaml:"duration,omitempty" toml:"duration,omitempty"`
	Disabled bool   `yaml:"disabled,omitempty" toml:"disabled,omitempty"`
}

// DefaultViewport is the viewport of configurations without one.
var DefaultViewport = f32.Rect(0, 0, 400, 800)

// Default returns the configuration used without a file: a single
// left reveal menu.
func Default() File {
	return File{
		Menus: []MenuConfig{{ID: menu.DefaultID, Side: "left", Type: "reveal"}},
	}
}

// Load reads the file at path. The format follows the extension:
// .toml files are TOML, anything else is YAML. A missing file is
// not an error and yields Default.
func Load(path string) (File, error) {
	if path == "" {
		return File{}, errors.New("config path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return File{}, fmt.Errorf("failed to read config: %w", err)
	}
	f, err := Parse(data, FormatOf(path))
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return TOML
	}
	return YAML
}

// Parse decodes and validates a configuration. Unknown keys are
// errors.
func Parse(data []byte, format Format) (File, error) {
	var f File
	switch format {
	case TOML:
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return File{}, fmt.Errorf("failed to decode config: %w", err)
		}
		if undec := md.Undecoded(); len(undec) > 0 {
			return File{}, fmt.Errorf("unknown config key %q", undec[0].String())
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && err != io.EOF {
			return File{}, fmt.Errorf("failed to decode config: %w", err)
		}
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// Encode writes f in the given format.
func Encode(w io.Writer, f File, format Format) error {
	switch format {
	case TOML:
		return toml.NewEncoder(w).Encode(f)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return err
		}
		return enc.Close()
	}
}

// Validate reports the first invalid setting.
func (f File) Validate() error {
	if _, err := rect(f.Viewport, DefaultViewport); err != nil {
		return fmt.Errorf("viewport: %w", err)
	}
	seen := map[string]bool{}
	for i, g := range f.Gestures {
		if _, err := g.Options(); err != nil {
			return fmt.Errorf("gesture %d: %w", i, err)
		}
		if _, err := rect(g.Area, DefaultViewport); err != nil {
			return fmt.Errorf("gesture %d: area: %w", i, err)
		}
	}
	for i, m := range f.Menus {
		if _, _, err := m.Config(); err != nil {
			return fmt.Errorf("menu %d: %w", i, err)
		}
		id := m.ID
		if id == "" {
			id = menu.DefaultID
		}
		if seen[id] {
			return fmt.Errorf("menu %d: duplicate id %q", i, id)
		}
		seen[id] = true
	}
	return nil
}

// ViewportRect returns the viewport rectangle.
func (f File) ViewportRect() f32.Rectangle {
	r, _ := rect(f.Viewport, DefaultViewport)
	return r
}

// Options converts the configuration to gesture options.
func (c GestureConfig) Options() (gesture.Options, error) {
	opts := gesture.Options{
		Name:          c.Name,
		Threshold:     c.Threshold,
		MaxAngle:      c.MaxAngle,
		Priority:      c.Priority,
		DisableScroll: c.DisableScroll,
		AutoBlockAll:  c.AutoBlockAll,
		Block:         c.Block,
	}
	if c.Name == "" {
		return opts, errors.New("missing name")
	}
	if c.Threshold < 0 || c.MaxAngle < 0 || c.MaxAngle > 90 {
		return opts, fmt.Errorf("invalid threshold %v or angle %v", c.Threshold, c.MaxAngle)
	}
	var err error
	if opts.Attach, err = pointer.ParseAttach(c.AttachTo); err != nil {
		return opts, err
	}
	if opts.Direction, err = gesture.ParseAxis(c.Direction); err != nil {
		return opts, err
	}
	if opts.Type, err = gesture.ParseType(c.Type); err != nil {
		return opts, err
	}
	return opts, nil
}

// AreaRect returns the gesture area, defaulting to viewport.
func (c GestureConfig) AreaRect(viewport f32.Rectangle) f32.Rectangle {
	r, _ := rect(c.Area, viewport)
	return r
}

// Config converts the configuration to a menu configuration and
// the animation duration. Collaborators are left for the caller.
func (c MenuConfig) Config() (menu.Config, time.Duration, error) {
	cfg := menu.Config{
		ID:           c.ID,
		Width:        c.Width,
		MaxEdgeStart: c.MaxEdgeStart,
	}
	var err error
	if cfg.Side, err = menu.ParseSide(c.Side); err != nil {
		return cfg, 0, err
	}
	if cfg.Type, err = menu.ParseType(c.Type); err != nil {
		return cfg, 0, err
	}
	if c.Width < 0 || c.MaxEdgeStart < 0 {
		return cfg, 0, fmt.Errorf("invalid width %v or edge %v", c.Width, c.MaxEdgeStart)
	}
	var d time.Duration
	if c.Duration != "" {
		if d, err = time.ParseDuration(c.Duration); err != nil {
			return cfg, 0, err
		}
		if d < 0 {
			return cfg, 0, fmt.Errorf("negative duration %v", d)
		}
	}
	return cfg, d, nil
}

func rect(v []float32, def f32.Rectangle) (f32.Rectangle, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 4:
		r := f32.Rect(v[0], v[1], v[2], v[3])
		if r.Empty() {
			return def, fmt.Errorf("empty rectangle %v", r)
		}
		return r, nil
	}
	return def, fmt.Errorf("rectangle needs 4 coordinates, got %d", len(v))
}
