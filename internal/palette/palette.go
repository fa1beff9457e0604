package palette

import (
	"errors"
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is one LED setting: an 8-bit intensity per channel.
type Color struct {
	R, G, B uint8
}

// Black is the color the LED powers up with.
var Black = Color{}

// Hex formats the color as #rrggbb.
func (c Color) Hex() string {
	return c.colorful().Hex()
}

func (c Color) String() string { return c.Hex() }

// Sum is the combined intensity of all three channels.
func (c Color) Sum() int { return int(c.R) + int(c.G) + int(c.B) }

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255.0, G: float64(c.G) / 255.0, B: float64(c.B) / 255.0}
}

// ParseHex parses "#rrggbb" (the leading '#' is optional).
func ParseHex(s string) (Color, error) {
	if len(s) > 0 && s[0] != '#' {
		s = "#" + s
	}
	parsed, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := parsed.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// Named is a palette entry.
type Named struct {
	Name  string
	Color Color
}

// Rand is the part of a random generator the palette needs.
// Intn returns a uniformly distributed integer in [0, n).
type Rand interface {
	Intn(n int) int
}

var ErrTooFewColors = errors.New("palette needs at least two distinct colors")

// Palette is a fixed, ordered set of colors. It is read-only after New.
type Palette struct {
	entries []Named
}

// New builds a palette from entries. It fails unless at least two entries
// differ, which is what keeps PickExcept from looping forever.
func New(entries []Named) (*Palette, error) {
	distinct := make(map[Color]struct{}, len(entries))
	for _, entry := range entries {
		distinct[entry.Color] = struct{}{}
	}
	if len(distinct) < 2 {
		return nil, fmt.Errorf("%w (got %d)", ErrTooFewColors, len(distinct))
	}
	out := make([]Named, len(entries))
	copy(out, entries)
	return &Palette{entries: out}, nil
}

func (p *Palette) Len() int { return len(p.entries) }

// Entries returns a copy of the palette entries in order.
func (p *Palette) Entries() []Named {
	out := make([]Named, len(p.entries))
	copy(out, p.entries)
	return out
}

// Pick returns a uniformly chosen palette color.
func (p *Palette) Pick(r Rand) Color {
	return p.entries[r.Intn(len(p.entries))].Color
}

// PickExcept draws until the result differs from exclude.
func (p *Palette) PickExcept(r Rand, exclude Color) Color {
	for {
		c := p.Pick(r)
		if c != exclude {
			return c
		}
	}
}

// Name returns the palette name of c, or its hex form when c is not in the palette.
func (p *Palette) Name(c Color) string {
	for _, entry := range p.entries {
		if entry.Color == c {
			return entry.Name
		}
	}
	return c.Hex()
}
