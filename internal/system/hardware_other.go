//go:build !linux

package system

import (
	"errors"
	"time"

	"github.com/rook-computer/moodlight/internal/palette"
)

const (
	DefaultPWMRoot     = "/sys/class/pwm"
	DefaultPWMPeriodNs = 1000000
	DefaultADCPath     = "/sys/bus/iio/devices/iio:device0/in_voltage3_raw"
)

var errLinuxOnly = errors.New("sysfs hardware is only available on linux")

// SysfsPWM is unavailable off linux; Start always fails.
type SysfsPWM struct {
	Root      string
	Chip      int
	Channels  [3]int
	PeriodNs  int64
	ActiveLow bool
	Logger    Logger
}

func NewSysfsPWM(chip int, channels [3]int) *SysfsPWM {
	return &SysfsPWM{Root: DefaultPWMRoot, Chip: chip, Channels: channels, PeriodNs: DefaultPWMPeriodNs}
}

func (p *SysfsPWM) Start() error      { return errLinuxOnly }
func (p *SysfsPWM) Set(palette.Color) {}
func (p *SysfsPWM) Stop() error       { return nil }

// ADCNoise falls back to the clock off linux.
type ADCNoise struct {
	Path   string
	Logger Logger
}

func (n ADCNoise) ReadNoise() int {
	if n.Logger != nil {
		n.Logger.Errorf("noise", "no adc on this platform, using clock")
	}
	return int(time.Now().UnixNano() & 0x7fffffff)
}

// TakeConsole is a no-op off linux.
func TakeConsole(l Logger) (restore func()) { return func() {} }
