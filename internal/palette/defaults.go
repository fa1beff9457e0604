package palette

// Channel limits that keep the LED supply within budget: no channel is ever
// driven to the literal maximum and mixed colors share a single channel's worth
// of current.
const (
	MaxChannel        = 254
	MaxTotalIntensity = 254
)

// Default is the stock palette. Every color's channels sum to at most
// MaxTotalIntensity.
func Default() []Named {
	return []Named{
		{Name: "red", Color: Color{R: 254}},
		{Name: "green", Color: Color{G: 254}},
		{Name: "blue", Color: Color{B: 254}},
		{Name: "cyan", Color: Color{G: 127, B: 127}},
		{Name: "magenta", Color: Color{R: 127, B: 127}},
		{Name: "yellow", Color: Color{R: 127, G: 127}},
		{Name: "white", Color: Color{R: 85, G: 85, B: 84}},
	}
}

// WithinBudget reports whether c may be shown without overloading the supply.
func WithinBudget(c Color) bool {
	if c.R > MaxChannel || c.G > MaxChannel || c.B > MaxChannel {
		return false
	}
	return c.Sum() <= MaxTotalIntensity
}
