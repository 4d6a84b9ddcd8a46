package ui

import (
	"github.com/mattn/go-runewidth"
)

// Display widths are in terminal columns, not bytes or runes

const ellipsis = "..."

// RuneWidth returns the display width of a single rune. Control and
// combining characters take no columns.
func RuneWidth(r rune) int {
	return max(runewidth.RuneWidth(r), 0)
}

// StringWidth returns the display width of a string
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateToWidth cuts s to at most maxWidth columns without splitting a rune
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return runewidth.Truncate(s, maxWidth, "")
}

// TruncateToWidthWithEllipsis cuts s to maxWidth columns, ending in an
// ellipsis when anything was cut
func TruncateToWidthWithEllipsis(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if maxWidth <= len(ellipsis) {
		return TruncateToWidth(s, maxWidth)
	}
	return runewidth.Truncate(s, maxWidth, ellipsis)
}

// PadStringToWidth pads s with spaces up to width columns
func PadStringToWidth(s string, width int) string {
	return runewidth.FillRight(s, width)
}
