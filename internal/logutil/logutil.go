// SPDX-License-Identifier: Unlicense OR MIT

// Package logutil provides loggers sharing one switchable output.
package logutil

import (
	"io"
	"log"
	"os"
	"sync"
)

// Discard is a Logger that ignores all output.
var Discard = log.New(io.Discard, "", 0)

var (
	mu      sync.Mutex
	out     io.Writer = os.Stderr
	loggers []*log.Logger
)

// GetLogger returns a Logger with the given prefix writing to the
// shared output.
func GetLogger(prefix string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	l := log.New(out, prefix, log.LstdFlags)
	loggers = append(loggers, l)
	return l
}

// SetOutput redirects every Logger returned by GetLogger, including
// those created later.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	for _, l := range loggers {
		l.SetOutput(w)
	}
}
