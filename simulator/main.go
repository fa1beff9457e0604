package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/rook-computer/moodlight/internal/app"
	"github.com/rook-computer/moodlight/internal/config"
	"github.com/rook-computer/moodlight/internal/palette"
	"github.com/rook-computer/moodlight/internal/system"
)

type options struct {
	Speed   float64
	Seed    int
	Cycles  int
	Palette string
	Logger  app.Logger
}

func main() {
	cliApp := &cli.App{
		Name:  "moodlight-simulator",
		Usage: "run the moodlight color cycle against a terminal swatch",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "speed", Value: 1, Usage: "time multiplier; 10 runs ten times faster than the device", EnvVars: []string{"MOODLIGHT_SIM_SPEED"}},
			&cli.IntFlag{Name: "seed", Value: -1, Usage: "fixed noise sample; negative samples the clock", EnvVars: []string{"MOODLIGHT_SIM_SEED"}},
			&cli.IntFlag{Name: "cycles", Value: 0, Usage: "stop after this many cycles; 0 runs until interrupted", EnvVars: []string{"MOODLIGHT_SIM_CYCLES"}},
			&cli.StringFlag{Name: "palette", Usage: "comma-separated hex colors replacing the built-in palette", EnvVars: []string{"MOODLIGHT_SIM_PALETTE"}},
			&cli.BoolFlag{Name: "debug", Usage: "enable debug logging to ./moodlight-sim-debug.log", EnvVars: []string{"MOODLIGHT_DEBUG"}},
		},
		Action: func(c *cli.Context) error {
			opts := options{
				Speed:   c.Float64("speed"),
				Seed:    c.Int("seed"),
				Cycles:  c.Int("cycles"),
				Palette: c.String("palette"),
				Logger:  app.NoopLogger{},
			}
			if c.Bool("debug") {
				f, err := os.OpenFile("./moodlight-sim-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
				if err != nil {
					return cli.Exit(fmt.Sprintf("debug log open error: %v", err), 1)
				}
				defer f.Close()
				opts.Logger = app.NewLogrusLogger(f, true)
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := simulate(ctx, opts, os.Stdout); err != nil {
				return cli.Exit(err.Error(), 2)
			}
			return nil
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "simulator:", err)
		os.Exit(1)
	}
}

// simulate runs the controller until ctx ends or opts.Cycles cycles are done.
// An interrupt is a normal way to leave and is not reported as an error.
func simulate(ctx context.Context, opts options, w io.Writer) error {
	cfg := config.Default()
	if opts.Palette != "" {
		entries, err := parsePalette(opts.Palette)
		if err != nil {
			return err
		}
		cfg.Palette = entries
	}

	var noise system.NoiseSource = clockNoise{}
	if opts.Seed >= 0 {
		noise = system.FixedNoise(opts.Seed)
	}
	term := NewTerminalChannels(w)
	a, err := app.New(cfg, term, noise, system.ScaledDelayer{Speed: opts.Speed}, rand.New(rand.NewSource(1)))
	if err != nil {
		return err
	}
	if opts.Logger != nil {
		a.SetLogger(opts.Logger)
	}
	term.Palette = a.Palette()

	fmt.Fprintf(w, "moodlight simulator: %d colors, speed x%g\n", a.Palette().Len(), opts.Speed)
	st, err := a.Run(ctx, opts.Cycles)
	term.Finish()
	fmt.Fprintf(w, "stopped after %d cycles on %s\n", st.Cycles, a.Palette().Name(st.Current))
	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// parsePalette reads "#ff0000,00ff00,...". Each color is named by its hex code.
func parsePalette(s string) ([]palette.Named, error) {
	var out []palette.Named
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		c, err := palette.ParseHex(part)
		if err != nil {
			return nil, err
		}
		out = append(out, palette.Named{Name: c.Hex(), Color: c})
	}
	return out, nil
}

// clockNoise stands in for the floating ADC input.
type clockNoise struct{}

func (clockNoise) ReadNoise() int { return int(time.Now().UnixNano() & 0x3ff) }
