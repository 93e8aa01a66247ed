// SPDX-License-Identifier: Unlicense OR MIT

package logutil

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestSetOutput(t *testing.T) {
	defer SetOutput(os.Stderr)
	before := GetLogger("before: ")
	var buf bytes.Buffer
	SetOutput(&buf)
	after := GetLogger("after: ")
	before.Print("one")
	after.Print("two")
	got := buf.String()
	for _, want := range []string{"before: ", "one", "after: ", "two"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q lacks %q", got, want)
		}
	}
}
