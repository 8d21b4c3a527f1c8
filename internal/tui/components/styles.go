// Package components holds stateless widgets for the task UI.
package components

import "github.com/charmbracelet/lipgloss"

// NeutralColor renders colours the swatch table does not know.
const NeutralColor = lipgloss.Color("#7f8c8d")

var swatches = map[string]lipgloss.Color{
	"red":    lipgloss.Color("#e74c3c"),
	"orange": lipgloss.Color("#e67e22"),
	"yellow": lipgloss.Color("#f1c40f"),
	"green":  lipgloss.Color("#2ecc71"),
	"blue":   lipgloss.Color("#3498db"),
	"indigo": lipgloss.Color("#5c6bc0"),
	"purple": lipgloss.Color("#9b59b6"),
	"pink":   lipgloss.Color("#e84393"),
	"brown":  lipgloss.Color("#8d6e63"),
	"gray":   NeutralColor,
	"grey":   NeutralColor,
}

// Swatch returns the terminal colour for a palette name.
func Swatch(name string) lipgloss.Color {
	if c, ok := swatches[name]; ok {
		return c
	}
	return NeutralColor
}

// Shared styles.
var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#fafafa")).
		Background(lipgloss.Color("#3498db")).Padding(0, 1)
	Subtle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f8c8d"))
	ErrorBox = lipgloss.NewStyle().Foreground(lipgloss.Color("#e74c3c")).Bold(true)
	Cursor   = lipgloss.NewStyle().Foreground(lipgloss.Color("#3498db")).Bold(true)
	Done     = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("#7f8c8d"))
	Faint    = lipgloss.NewStyle().Faint(true)
)

// Marker is the colour dot used in rows and the picker.
const Marker = "●"
