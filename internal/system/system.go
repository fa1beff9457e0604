package system

import (
	"time"

	"github.com/rook-computer/moodlight/internal/palette"
)

// Channels drives the three LED outputs. Set writes all channels together.
// Writes are assumed to succeed; implementations log failures and carry on.
type Channels interface {
	Set(c palette.Color)
}

// NoiseSource samples an unconnected input. The value is only used as a seed.
type NoiseSource interface {
	ReadNoise() int
}

// Delayer blocks the calling goroutine.
type Delayer interface {
	Delay(d time.Duration)
}

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// NoopChannels discards writes. Start and Stop make it usable as a backend.
type NoopChannels struct{}

func (NoopChannels) Set(palette.Color) {}
func (NoopChannels) Start() error      { return nil }
func (NoopChannels) Stop() error       { return nil }

// FixedNoise always returns the same sample.
type FixedNoise int

func (n FixedNoise) ReadNoise() int { return int(n) }

type SleepDelayer struct{}

func (SleepDelayer) Delay(d time.Duration) { time.Sleep(d) }

// ScaledDelayer sleeps for d divided by Speed. Speed <= 0 means real time.
type ScaledDelayer struct {
	Speed float64
}

func (s ScaledDelayer) Delay(d time.Duration) {
	if s.Speed > 0 {
		d = time.Duration(float64(d) / s.Speed)
	}
	time.Sleep(d)
}

type noopLogger struct{}

func (noopLogger) Infof(string, string, ...interface{})  {}
func (noopLogger) Errorf(string, string, ...interface{}) {}
