//go:build linux

package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/sys/unix"

	"github.com/rook-computer/moodlight/internal/palette"
)

const (
	DefaultPWMRoot     = "/sys/class/pwm"
	DefaultPWMPeriodNs = 1000000 // 1 kHz
)

// SysfsPWM drives an RGB LED through the kernel PWM sysfs interface.
// Channels lists the red, green and blue PWM indexes on the chip.
type SysfsPWM struct {
	Root      string
	Chip      int
	Channels  [3]int
	PeriodNs  int64
	ActiveLow bool // common-anode LEDs light up on low duty
	Logger    Logger

	chipDir string
	started bool
	write   func(path, value string) error
}

func NewSysfsPWM(chip int, channels [3]int) *SysfsPWM {
	return &SysfsPWM{Root: DefaultPWMRoot, Chip: chip, Channels: channels, PeriodNs: DefaultPWMPeriodNs}
}

// Start exports the three channels when needed, programs the period and
// enables output with the LED off.
func (p *SysfsPWM) Start() error {
	if p.Logger == nil {
		p.Logger = noopLogger{}
	}
	if p.Root == "" {
		p.Root = DefaultPWMRoot
	}
	if p.PeriodNs <= 0 {
		p.PeriodNs = DefaultPWMPeriodNs
	}
	if p.write == nil {
		p.write = writeAttr
	}
	p.chipDir = filepath.Join(p.Root, fmt.Sprintf("pwmchip%d", p.Chip))
	if _, err := os.Stat(p.chipDir); err != nil {
		return fmt.Errorf("pwm chip %d: %w", p.Chip, err)
	}

	for _, channel := range p.Channels {
		dir := p.channelDir(channel)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := p.write(filepath.Join(p.chipDir, "export"), strconv.Itoa(channel)); err != nil {
				return fmt.Errorf("export pwm%d: %w", channel, err)
			}
		} else {
			// The kernel rejects a period shorter than the current duty cycle,
			// which a previous run may have left behind.
			if err := p.write(filepath.Join(dir, "duty_cycle"), "0"); err != nil {
				return fmt.Errorf("pwm%d duty_cycle reset: %w", channel, err)
			}
		}
		if err := p.write(filepath.Join(dir, "period"), strconv.FormatInt(p.PeriodNs, 10)); err != nil {
			return fmt.Errorf("pwm%d period: %w", channel, err)
		}
		if err := p.write(filepath.Join(dir, "duty_cycle"), strconv.FormatInt(p.duty(0), 10)); err != nil {
			return fmt.Errorf("pwm%d duty_cycle: %w", channel, err)
		}
		if err := p.write(filepath.Join(dir, "enable"), "1"); err != nil {
			return fmt.Errorf("pwm%d enable: %w", channel, err)
		}
	}
	p.started = true
	p.Logger.Infof("pwm", "pwmchip%d channels %v enabled, period=%dns", p.Chip, p.Channels, p.PeriodNs)
	return nil
}

func (p *SysfsPWM) Set(c palette.Color) {
	if !p.started {
		return
	}
	levels := [3]uint8{c.R, c.G, c.B}
	for i, channel := range p.Channels {
		path := filepath.Join(p.channelDir(channel), "duty_cycle")
		if err := p.write(path, strconv.FormatInt(p.duty(levels[i]), 10)); err != nil {
			p.Logger.Errorf("pwm", "pwm%d duty_cycle: %v", channel, err)
		}
	}
}

// Stop switches the LED off and disables the channels. Channels stay exported.
func (p *SysfsPWM) Stop() error {
	if !p.started {
		return nil
	}
	p.Set(palette.Black)
	p.started = false
	var firstErr error
	for _, channel := range p.Channels {
		if err := p.write(filepath.Join(p.channelDir(channel), "enable"), "0"); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("pwm%d disable: %w", channel, err)
		}
	}
	return firstErr
}

func (p *SysfsPWM) channelDir(channel int) string {
	return filepath.Join(p.chipDir, fmt.Sprintf("pwm%d", channel))
}

// duty converts an 8-bit level into a duty cycle in nanoseconds.
func (p *SysfsPWM) duty(level uint8) int64 {
	if p.ActiveLow {
		level = 255 - level
	}
	return p.PeriodNs * int64(level) / 255
}

func writeAttr(path, value string) error {
	fd, err := unix.Open(path, unix.O_WRONLY|unix.O_TRUNC|unix.O_CLOEXEC, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer unix.Close(fd)
	if _, err := unix.Write(fd, []byte(value)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
