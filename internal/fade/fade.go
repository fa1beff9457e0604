// Package fade moves the LED from one color to another in fixed-rate linear steps.
package fade

import (
	"time"

	"github.com/rook-computer/moodlight/internal/palette"
	"github.com/rook-computer/moodlight/internal/system"
)

const DefaultStepsPerSecond = 25

type Logger interface {
	Debugf(component string, format string, args ...interface{})
	Infof(component string, format string, args ...interface{})
}

// Fader writes interpolated colors to Out and waits one step interval after
// each write. A fade blocks the caller for its whole duration.
type Fader struct {
	Out            system.Channels
	Delayer        system.Delayer
	StepsPerSecond int
	Logger         Logger
}

func New(out system.Channels, delayer system.Delayer, stepsPerSecond int) *Fader {
	return &Fader{Out: out, Delayer: delayer, StepsPerSecond: stepsPerSecond, Logger: noopLogger{}}
}

// StepInterval is 1000ms divided by the step rate, truncated to whole milliseconds.
func StepInterval(stepsPerSecond int) time.Duration {
	if stepsPerSecond <= 0 {
		stepsPerSecond = DefaultStepsPerSecond
	}
	return time.Duration(1000/stepsPerSecond) * time.Millisecond
}

// Plan returns every color a fade writes: one per step, then to itself.
// The fractional part of seconds*stepsPerSecond is dropped; the final write
// covers it.
func Plan(from, to palette.Color, seconds float64, stepsPerSecond int) []palette.Color {
	if stepsPerSecond <= 0 {
		stepsPerSecond = DefaultStepsPerSecond
	}
	total := int(seconds * float64(stepsPerSecond))
	if total < 0 {
		total = 0
	}
	out := make([]palette.Color, 0, total+1)
	for i := 0; i < total; i++ {
		out = append(out, palette.Color{
			R: lerp(from.R, to.R, i, total),
			G: lerp(from.G, to.G, i, total),
			B: lerp(from.B, to.B, i, total),
		})
	}
	return append(out, to)
}

// lerp is from + (to-from)/total*i, truncated to a whole level.
func lerp(from, to uint8, i, total int) uint8 {
	delta := float64(int(to)-int(from)) / float64(total)
	return uint8(float64(from) + delta*float64(i))
}

// Fade runs the plan for from→to against the hardware. from == to is not
// short-circuited: the LED holds still for the full duration.
func (f *Fader) Fade(from, to palette.Color, seconds float64) {
	logger := f.Logger
	if logger == nil {
		logger = noopLogger{}
	}
	interval := StepInterval(f.StepsPerSecond)
	plan := Plan(from, to, seconds, f.StepsPerSecond)
	logger.Infof("fade", "%s -> %s over %.2fs (%d steps of %v)", from, to, seconds, len(plan)-1, interval)

	for i, c := range plan {
		f.Out.Set(c)
		logger.Debugf("fade", "step %d/%d %s", i, len(plan)-1, c)
		f.Delayer.Delay(interval)
	}
}

type noopLogger struct{}

func (noopLogger) Debugf(string, string, ...interface{}) {}
func (noopLogger) Infof(string, string, ...interface{})  {}
