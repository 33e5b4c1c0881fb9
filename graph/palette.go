package graph

import "github.com/mgutz/ansi"

// defaultPaletteNames mirrors the rotation asciidag's own
// COLUMN_COLORS_ANSI palette used: a handful of high-contrast
// foreground colors, cycling once all are used.
var defaultPaletteNames = []string{
	"red",
	"green",
	"yellow",
	"blue",
	"magenta",
	"cyan",
}

// DefaultPalette returns the renderer's default column palette: an
// ordered list of ANSI escape sequences with the reset sequence as
// the last element, built with github.com/mgutz/ansi instead of
// hand-written escape strings.
func DefaultPalette() []string {
	palette := make([]string, 0, len(defaultPaletteNames)+1)
	for _, name := range defaultPaletteNames {
		palette = append(palette, ansi.ColorCode(name))
	}
	return append(palette, ansi.Reset)
}
