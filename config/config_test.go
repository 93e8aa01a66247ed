// SPDX-License-Identifier: Unlicense OR MIT

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"swipe.dev/f32"
	"swipe.dev/gesture"
	"swipe.dev/io/pointer"
	"swipe.dev/menu"
)

const yamlConfig = `
viewport: [0, 0, 320, 640]
gestures:
  - name: range
    attachTo: parent
    direction: "y"
    threshold: 10
    gesturePriority: 5
    autoBlockAll: true
    type: pan,press
    area: [0, 100, 320, 200]
menus:
  - id: nav
    side: right
    type: overlay
    width: 250
    duration: 150ms
`

const tomlConfig = `
viewport = [0, 0, 320, 640]

[[gestures]]
name = "range"
attach-to = "parent"
direction = "y"
threshold = 10
gesture-priority = 5
auto-block-all = true
type = "pan,press"
area = [0, 100, 320, 200]

[[menus]]
id = "nav"
side = "right"
type = "overlay"
width = 250
duration = "150ms"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	want := File{
		Viewport: []float32{0, 0, 320, 640},
		Gestures: []GestureConfig{{
			Name:         "range",
			AttachTo:     "parent",
			Direction:    "y",
			Threshold:    10,
			Priority:     5,
			AutoBlockAll: true,
			Type:         "pan,press",
			Area:         []float32{0, 100, 320, 200},
		}},
		Menus: []MenuConfig{{ID: "nav", Side: "right", Type: "overlay", Width: 250, Duration: "150ms"}},
	}
	for _, name := range []string{"config.yaml", "config.toml"} {
		content := yamlConfig
		if FormatOf(name) == TOML {
			content = tomlConfig
		}
		got, err := Load(writeFile(t, name, content))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s (-want +got):\n%s", name, diff)
		}
	}
}

func TestLoadMissing(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if _, err := Load(""); err == nil {
		t.Error("empty path accepted")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
		want   string
	}{
		{"unknown yaml key", YAML, "menus:\n  - colour: red\n", "colour"},
		{"unknown toml key", TOML, "[[menus]]\ncolour = \"red\"\n", "colour"},
		{"bad attach", YAML, "gestures:\n  - name: g\n    attachTo: body2\n", "body2"},
		{"missing name", YAML, "gestures:\n  - type: pan\n", "missing name"},
		{"bad side", YAML, "menus:\n  - side: top\n", "top"},
		{"bad duration", YAML, "menus:\n  - duration: soon\n", "soon"},
		{"duplicate menu", YAML, "menus:\n  - id: a\n  - id: a\n", "duplicate"},
		{"short viewport", YAML, "viewport: [1, 2]\n", "4 coordinates"},
		{"empty area", YAML, "gestures:\n  - name: g\n    area: [5, 5, 5, 9]\n", "empty"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse([]byte(test.data), test.format)
			if err == nil || !strings.Contains(err.Error(), test.want) {
				t.Errorf("got error %v, expected one mentioning %q", err, test.want)
			}
		})
	}
}

func TestGestureOptions(t *testing.T) {
	f, err := Parse([]byte(yamlConfig), YAML)
	if err != nil {
		t.Fatal(err)
	}
	opts, err := f.Gestures[0].Options()
	if err != nil {
		t.Fatal(err)
	}
	want := gesture.Options{
		Name:         "range",
		Attach:       pointer.AttachParent,
		Direction:    gesture.Vertical,
		Threshold:    10,
		Priority:     5,
		AutoBlockAll: true,
		Type:         gesture.TypePan | gesture.TypePress,
	}
	if diff := cmp.Diff(want, opts); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got := f.Gestures[0].AreaRect(f.ViewportRect()); got != f32.Rect(0, 100, 320, 200) {
		t.Errorf("got area %v", got)
	}
	if got := (GestureConfig{}).AreaRect(f.ViewportRect()); got != f32.Rect(0, 0, 320, 640) {
		t.Errorf("got default area %v, expected the viewport", got)
	}
}

func TestMenuConfig(t *testing.T) {
	cfg, d, err := MenuConfig{ID: "nav", Side: "right", Type: "push", Duration: "150ms"}.Config()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ID != "nav" || cfg.Side != menu.Right || cfg.Type != menu.Push || d != 150*time.Millisecond {
		t.Errorf("got %+v, %v", cfg, d)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	f, err := Parse([]byte(yamlConfig), YAML)
	if err != nil {
		t.Fatal(err)
	}
	for _, format := range []Format{YAML, TOML} {
		var buf bytes.Buffer
		if err := Encode(&buf, f, format); err != nil {
			t.Fatal(err)
		}
		got, err := Parse(buf.Bytes(), format)
		if err != nil {
			t.Fatalf("format %d: %v\n%s", format, err, buf.String())
		}
		if diff := cmp.Diff(f, got); diff != "" {
			t.Errorf("format %d (-want +got):\n%s", format, diff)
		}
	}
}

func TestXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "swipe", "config.yaml") {
		t.Errorf("got config path %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "swipe", "traces.db") {
		t.Errorf("got db path %q", got)
	}
}
