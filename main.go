package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/rook-computer/moodlight/internal/app"
	"github.com/rook-computer/moodlight/internal/config"
	"github.com/rook-computer/moodlight/internal/render"
	"github.com/rook-computer/moodlight/internal/system"
)

func main() {
	cliApp := &cli.App{
		Name:  "moodlight",
		Usage: "fade an RGB LED through a fixed palette",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "backend", Value: "pwm", Usage: "channel backend: pwm | fb | noop", EnvVars: []string{"MOODLIGHT_BACKEND"}},
			&cli.IntFlag{Name: "pwm-chip", Value: 0, Usage: "pwmchip index under /sys/class/pwm", EnvVars: []string{"MOODLIGHT_PWM_CHIP"}},
			&cli.StringFlag{Name: "pwm-channels", Value: "0,1,2", Usage: "red,green,blue pwm channel indexes", EnvVars: []string{"MOODLIGHT_PWM_CHANNELS"}},
			&cli.Int64Flag{Name: "pwm-period-ns", Value: system.DefaultPWMPeriodNs, Usage: "pwm period in nanoseconds", EnvVars: []string{"MOODLIGHT_PWM_PERIOD_NS"}},
			&cli.BoolFlag{Name: "active-low", Usage: "invert duty cycles for common-anode LEDs", EnvVars: []string{"MOODLIGHT_ACTIVE_LOW"}},
			&cli.StringFlag{Name: "adc-path", Value: system.DefaultADCPath, Usage: "raw sample file of the unconnected seed input", EnvVars: []string{"MOODLIGHT_ADC_PATH"}},
			&cli.StringFlag{Name: "fb-device", Value: render.DefaultDevice, Usage: "framebuffer device for the fb backend", EnvVars: []string{"MOODLIGHT_FB_DEVICE"}},
			&cli.BoolFlag{Name: "debug", Usage: "enable debug logging to ./moodlight-debug.log", EnvVars: []string{"MOODLIGHT_DEBUG"}},
			&cli.StringFlag{Name: "stdio-log", Usage: "redirect stdout+stderr (including panics) to this file", EnvVars: []string{"MOODLIGHT_STDIO_LOG"}},
		},
		Action: run,
	}
	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "moodlight:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	// Best-effort: crashes stay diagnosable even when the console is left in graphics mode.
	if path := c.String("stdio-log"); path != "" {
		if err := redirectStdIO(path); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	logger := app.NewLogrusLogger(os.Stderr, false)
	if c.Bool("debug") {
		f, err := os.OpenFile("./moodlight-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Println("debug log open error:", err)
		} else {
			defer f.Close()
			logger = app.NewLogrusLogger(f, true)
			logger.Infof("main", "debug logging enabled")
		}
	}

	out, err := newBackend(c, logger)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	if c.String("backend") == "fb" {
		restore := system.TakeConsole(logger)
		defer restore()
	}
	if err := out.Start(); err != nil {
		return cli.Exit(fmt.Sprintf("%s backend start: %v", c.String("backend"), err), 1)
	}
	defer func() {
		if err := out.Stop(); err != nil {
			logger.Errorf("main", "backend stop: %v", err)
		}
	}()

	noise := &system.ADCNoise{Path: c.String("adc-path"), Logger: logger}
	// Boot reseeds from the noise input; this seed is never observed.
	rng := rand.New(rand.NewSource(1))
	a, err := app.New(config.Default(), out, noise, system.SleepDelayer{}, rng)
	if err != nil {
		return cli.Exit(fmt.Sprintf("config: %v", err), 2)
	}
	a.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Infof("main", "moodlight starting, backend=%s", c.String("backend"))
	if err := a.Start(ctx); err != nil && ctx.Err() == nil {
		logger.Errorf("main", "app stopped: %v", err)
	}
	a.Stop()
	return nil
}

func newBackend(c *cli.Context, logger app.Logger) (render.Renderer, error) {
	switch name := c.String("backend"); name {
	case "pwm":
		channels, err := parseChannels(c.String("pwm-channels"))
		if err != nil {
			return nil, err
		}
		pwm := system.NewSysfsPWM(c.Int("pwm-chip"), channels)
		pwm.PeriodNs = c.Int64("pwm-period-ns")
		pwm.ActiveLow = c.Bool("active-low")
		pwm.Logger = logger
		return pwm, nil
	case "fb":
		fbr := render.NewFBRenderer()
		fbr.Device = c.String("fb-device")
		fbr.Logger = logger
		return fbr, nil
	case "noop":
		return system.NoopChannels{}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

// parseChannels reads "r,g,b" pwm indexes.
func parseChannels(s string) ([3]int, error) {
	var out [3]int
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return out, fmt.Errorf("pwm channels %q: want three comma-separated indexes", s)
	}
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return out, fmt.Errorf("pwm channels %q: bad index %q", s, part)
		}
		out[i] = n
	}
	return out, nil
}
