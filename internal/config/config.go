package config

import (
	"fmt"
	"math"

	"github.com/rook-computer/moodlight/internal/fade"
	"github.com/rook-computer/moodlight/internal/palette"
)

// Config holds the values that shape the light show. They are fixed when
// the binary is built; binaries only expose hardware wiring as flags.
type Config struct {
	Palette           []palette.Named
	BootFadeSeconds   float64
	SteadyFadeSeconds float64
	PauseSeconds      float64
	StepsPerSecond    int
}

func Default() Config {
	return Config{
		Palette:           palette.Default(),
		BootFadeSeconds:   3,
		SteadyFadeSeconds: 5,
		PauseSeconds:      10,
		StepsPerSecond:    fade.DefaultStepsPerSecond,
	}
}

// MaxSeconds bounds every configured duration. A fade plans one color per
// step up front, so an hour at 1000 steps/s is the largest plan built.
const MaxSeconds = 3600

// Validate checks the config and builds its palette.
func (c Config) Validate() (*palette.Palette, error) {
	if c.StepsPerSecond <= 0 || c.StepsPerSecond > 1000 {
		return nil, fmt.Errorf("steps per second must be in [1, 1000] (got %d)", c.StepsPerSecond)
	}
	for name, seconds := range map[string]float64{
		"boot fade":   c.BootFadeSeconds,
		"steady fade": c.SteadyFadeSeconds,
		"pause":       c.PauseSeconds,
	} {
		if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 || seconds > MaxSeconds {
			return nil, fmt.Errorf("%s duration must be in [0, %d] seconds (got %v)", name, MaxSeconds, seconds)
		}
	}
	for _, entry := range c.Palette {
		if !palette.WithinBudget(entry.Color) {
			return nil, fmt.Errorf("color %s %s exceeds the power budget", entry.Name, entry.Color)
		}
	}
	p, err := palette.New(c.Palette)
	if err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}
	return p, nil
}
