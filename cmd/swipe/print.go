// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	goisatty "github.com/mattn/go-isatty"

	"swipe.dev/menu"
	"swipe.dev/trace"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	menuStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	scrollStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	openStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	closedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
)

func isatty(fd uintptr) bool {
	return goisatty.IsTerminal(fd) || goisatty.IsCygwinTerminal(fd)
}

// printer writes replay results, styled on terminals. The first
// write error sticks.
type printer struct {
	w      io.Writer
	styled bool
	err    error
}

func newPrinter(w io.Writer, styled bool) *printer {
	return &printer{w: w, styled: styled}
}

func (p *printer) style(s lipgloss.Style, text string) string {
	if !p.styled {
		return text
	}
	return s.Render(text)
}

func (p *printer) println(s string) {
	if p.err != nil {
		return
	}
	if _, err := fmt.Fprintln(p.w, s); err != nil {
		p.err = fmt.Errorf("failed to write output: %w", err)
	}
}

func (p *printer) result(name string, res trace.Result) {
	p.println(p.style(titleStyle, fmt.Sprintf("== %s (%v)", name, res.Duration)))
	for _, e := range res.Log {
		s := menuStyle
		if strings.HasPrefix(e.Text, "scroll") {
			s = scrollStyle
		}
		p.println(p.style(timeStyle, fmt.Sprintf("%8v", e.At)) + " " + p.style(s, e.Text))
	}
	if len(res.Menus) == 0 {
		return
	}
	var rows []string
	for _, m := range res.Menus {
		s := closedStyle
		if m.Open {
			s = openStyle
		}
		rows = append(rows, fmt.Sprintf("%-8s %s %3.0f%%", m.ID, p.style(s, pad(m.State)), m.Value*100))
	}
	summary := strings.Join(rows, "\n")
	if p.styled {
		summary = cardStyle.Render(summary)
	}
	p.println(summary)
}

func pad(s menu.State) string {
	return fmt.Sprintf("%-7v", s)
}
