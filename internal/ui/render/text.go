// Package render provides text helpers for fixed-width terminal cells.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// Sanitize strips control characters and invalid UTF-8 from remote metadata.
// Non-breaking spaces become plain spaces.
func Sanitize(s string) string {
	clean := true
	for _, r := range s {
		if r == utf8.RuneError || r == ' ' || (r != '\t' && unicode.IsControl(r)) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	return strings.Map(func(r rune) rune {
		switch {
		case r == utf8.RuneError:
			return -1
		case r == ' ':
			return ' '
		case r != '\t' && unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
}

// Truncate shortens s to at most width cells.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(Sanitize(s), width, Ellipsis)
}

// Fit truncates s and pads it to exactly width cells.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(Truncate(s, width), width)
}

// Center pads s on both sides to width cells. Styled input is measured by
// its visible width.
func Center(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

// Row places left and right at opposite ends of a width-cell line.
func Row(left, right string, width int) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// Separator is a horizontal rule.
func Separator(width int) string {
	return strings.Repeat("─", max(width, 0))
}
