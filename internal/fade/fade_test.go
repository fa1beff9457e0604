package fade

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/rook-computer/moodlight/internal/palette"
)

type recordingChannels struct {
	writes []palette.Color
}

func (r *recordingChannels) Set(c palette.Color) { r.writes = append(r.writes, c) }

type recordingDelayer struct {
	delays []time.Duration
}

func (r *recordingDelayer) Delay(d time.Duration) { r.delays = append(r.delays, d) }

func (r *recordingDelayer) total() time.Duration {
	var sum time.Duration
	for _, d := range r.delays {
		sum += d
	}
	return sum
}

func newRecordingFader(stepsPerSecond int) (*Fader, *recordingChannels, *recordingDelayer) {
	out := &recordingChannels{}
	delayer := &recordingDelayer{}
	return New(out, delayer, stepsPerSecond), out, delayer
}

func TestFadeBlackToRedOneSecond(t *testing.T) {
	f, out, delayer := newRecordingFader(25)
	red := palette.Color{R: 254}

	f.Fade(palette.Black, red, 1.0)

	require.Len(t, out.writes, 26)
	for i := 0; i < 25; i++ {
		want := uint8(254.0 / 25.0 * float64(i))
		assert.Equal(t, palette.Color{R: want}, out.writes[i], "step %d", i)
	}
	assert.Equal(t, uint8(0), out.writes[0].R)
	assert.Equal(t, uint8(10), out.writes[1].R)
	assert.Equal(t, uint8(243), out.writes[24].R)
	assert.Equal(t, red, out.writes[25])

	require.Len(t, delayer.delays, 26)
	for _, d := range delayer.delays {
		assert.Equal(t, 40*time.Millisecond, d)
	}
}

func TestFadeSameColorHoldsForDuration(t *testing.T) {
	f, out, delayer := newRecordingFader(25)
	cyan := palette.Color{G: 127, B: 127}

	f.Fade(cyan, cyan, 2.0)

	require.Len(t, out.writes, 51)
	for _, c := range out.writes {
		assert.Equal(t, cyan, c)
	}
	assert.InDelta(t, (2 * time.Second).Seconds(), delayer.total().Seconds(), 2*StepInterval(25).Seconds())
}

func TestFadeShorterThanOneStep(t *testing.T) {
	f, out, delayer := newRecordingFader(25)
	f.Fade(palette.Black, palette.Color{B: 254}, 0.01)

	assert.Equal(t, []palette.Color{{B: 254}}, out.writes)
	assert.Len(t, delayer.delays, 1)
}

func TestFadeFractionalStepsAbsorbedBySnap(t *testing.T) {
	// 1.5s at 3 steps/s is 4.5 steps: four interpolated writes plus the snap.
	plan := Plan(palette.Black, palette.Color{G: 200}, 1.5, 3)
	require.Len(t, plan, 5)
	assert.Equal(t, palette.Color{G: 200}, plan[4])
	assert.Equal(t, uint8(150), plan[3].G)
}

func TestStepInterval(t *testing.T) {
	assert.Equal(t, 40*time.Millisecond, StepInterval(25))
	assert.Equal(t, 33*time.Millisecond, StepInterval(30))
	assert.Equal(t, time.Millisecond, StepInterval(1000))
	assert.Equal(t, 40*time.Millisecond, StepInterval(0))
}

func colorGen() *rapid.Generator[palette.Color] {
	return rapid.Custom(func(t *rapid.T) palette.Color {
		return palette.Color{
			R: rapid.Uint8().Draw(t, "r"),
			G: rapid.Uint8().Draw(t, "g"),
			B: rapid.Uint8().Draw(t, "b"),
		}
	})
}

func TestFadeAlwaysEndsOnTarget(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		from := colorGen().Draw(t, "from")
		to := colorGen().Draw(t, "to")
		seconds := rapid.Float64Range(0, 10).Draw(t, "seconds")
		stepsPerSecond := rapid.IntRange(1, 100).Draw(t, "stepsPerSecond")

		f, out, delayer := newRecordingFader(stepsPerSecond)
		f.Fade(from, to, seconds)

		if got := out.writes[len(out.writes)-1]; got != to {
			t.Fatalf("last write %v, want %v", got, to)
		}
		if len(delayer.delays) != len(out.writes) {
			t.Fatalf("%d delays for %d writes", len(delayer.delays), len(out.writes))
		}
	})
}

func TestPlanIsMonotonicPerChannel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		from := colorGen().Draw(t, "from")
		to := colorGen().Draw(t, "to")
		seconds := rapid.Float64Range(0, 20).Draw(t, "seconds")
		stepsPerSecond := rapid.IntRange(1, 100).Draw(t, "stepsPerSecond")

		plan := Plan(from, to, seconds, stepsPerSecond)
		channel := func(c palette.Color, idx int) int {
			return int([3]uint8{c.R, c.G, c.B}[idx])
		}
		for idx := 0; idx < 3; idx++ {
			start, end := channel(from, idx), channel(to, idx)
			for i := 1; i < len(plan); i++ {
				prev, cur := channel(plan[i-1], idx), channel(plan[i], idx)
				if end > start && cur < prev {
					t.Fatalf("channel %d decreased at step %d: %d -> %d", idx, i, prev, cur)
				}
				if end < start && cur > prev {
					t.Fatalf("channel %d increased at step %d: %d -> %d", idx, i, prev, cur)
				}
				if end == start && cur != start {
					t.Fatalf("flat channel %d moved at step %d: %d", idx, i, cur)
				}
			}
		}
	})
}
