package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rook-computer/moodlight/internal/palette"
)

const swatchWidth = 12

// TerminalChannels shows every channel write as a colored block on a single
// line that is redrawn in place.
type TerminalChannels struct {
	Out     io.Writer
	Palette *palette.Palette

	dirty bool
}

func NewTerminalChannels(w io.Writer) *TerminalChannels {
	return &TerminalChannels{Out: w}
}

func (t *TerminalChannels) Set(c palette.Color) {
	swatch := lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Render(strings.Repeat(" ", swatchWidth))
	label := c.Hex()
	if t.Palette != nil {
		label = t.Palette.Name(c)
	}
	fmt.Fprintf(t.Out, "\r%s %-8s %3d %3d %3d", swatch, label, c.R, c.G, c.B)
	t.dirty = true
}

// Finish ends the line being redrawn.
func (t *TerminalChannels) Finish() {
	if t.dirty {
		fmt.Fprintln(t.Out)
		t.dirty = false
	}
}
