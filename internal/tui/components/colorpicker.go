package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/service"
)

// ColorPicker renders a palette as a row of swatches. The selection is
// owned by the caller.
type ColorPicker struct {
	Palette service.Palette
}

// View renders one swatch per palette entry; the selected one is bracketed
// and its name follows the row.
func (p ColorPicker) View(selected string) string {
	var b strings.Builder
	for i, color := range p.Palette {
		if i > 0 {
			b.WriteString(" ")
		}
		dot := lipgloss.NewStyle().Foreground(Swatch(color)).Render(Marker)
		if color == selected {
			b.WriteString("[" + dot + "]")
		} else {
			b.WriteString(" " + dot + " ")
		}
	}
	b.WriteString("  ")
	b.WriteString(Subtle.Render(selected))
	return b.String()
}

// Next returns the entry after selected, wrapping around.
func (p ColorPicker) Next(selected string) string {
	return p.step(selected, 1)
}

// Prev returns the entry before selected, wrapping around.
func (p ColorPicker) Prev(selected string) string {
	return p.step(selected, -1)
}

func (p ColorPicker) step(selected string, delta int) string {
	n := len(p.Palette)
	if n == 0 {
		return selected
	}
	i := p.Palette.Index(selected)
	if i < 0 {
		return p.Palette[0]
	}
	return p.Palette[((i+delta)%n+n)%n]
}
