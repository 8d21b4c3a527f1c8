package googletasks

import "strings"

// colorPrefix starts the notes line that holds a task's colour.
const colorPrefix = "color:"

// splitNotes returns the colour stored in notes and the remaining lines.
func splitNotes(notes string) (color, rest string) {
	if notes == "" {
		return "", ""
	}
	var kept []string
	for _, line := range strings.Split(notes, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(strings.ToLower(trimmed), colorPrefix) {
			if color == "" {
				color = strings.ToLower(strings.TrimSpace(trimmed[len(colorPrefix):]))
			}
			continue
		}
		kept = append(kept, line)
	}
	return color, strings.Join(kept, "\n")
}

// withColor replaces the colour line of notes, keeping the other lines.
func withColor(notes, color string) string {
	_, rest := splitNotes(notes)
	line := colorPrefix + " " + color
	if strings.TrimSpace(rest) == "" {
		return line
	}
	return line + "\n" + rest
}
