package service

import (
	"fmt"
	"strings"
)

// DefaultColor is the colour a new task draft starts with.
const DefaultColor = "blue"

// Palette is the closed set of task colours, in display order.
type Palette []string

// DefaultPalette is used when no palette is configured.
// indigo is available only through configuration.
var DefaultPalette = Palette{
	"red", "orange", "yellow", "green", "blue", "purple", "pink", "brown",
}

// Contains reports whether color is in the palette.
func (p Palette) Contains(color string) bool {
	return p.Index(color) >= 0
}

// Index returns the position of color in the palette, or -1.
func (p Palette) Index(color string) int {
	for i, c := range p {
		if c == color {
			return i
		}
	}
	return -1
}

// Validate checks that the palette is non-empty and its entries are
// non-empty, lower-case and unique.
func (p Palette) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("palette is empty")
	}
	seen := make(map[string]bool, len(p))
	for _, c := range p {
		if strings.TrimSpace(c) == "" {
			return fmt.Errorf("palette contains an empty colour")
		}
		if c != strings.ToLower(c) {
			return fmt.Errorf("palette colour must be lower-case: %s", c)
		}
		if seen[c] {
			return fmt.Errorf("duplicate palette colour: %s", c)
		}
		seen[c] = true
	}
	return nil
}
