package app

import (
	"context"
	"time"

	"github.com/rook-computer/moodlight/internal/config"
	"github.com/rook-computer/moodlight/internal/fade"
	"github.com/rook-computer/moodlight/internal/palette"
	"github.com/rook-computer/moodlight/internal/state"
	"github.com/rook-computer/moodlight/internal/system"
)

// Rand is a seedable uniform generator; *math/rand.Rand satisfies it.
type Rand interface {
	Seed(seed int64)
	Intn(n int) int
}

// App is the color-cycle controller. Everything runs on the caller's
// goroutine: fades and pauses block until they are done.
type App struct {
	Config   config.Config
	Channels system.Channels
	Noise    system.NoiseSource
	Delayer  system.Delayer
	Rand     Rand
	Logger   Logger

	palette *palette.Palette
	fader   *fade.Fader
}

func New(cfg config.Config, channels system.Channels, noise system.NoiseSource, delayer system.Delayer, rng Rand) (*App, error) {
	p, err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Channels: channels, Noise: noise, Delayer: delayer, Rand: rng, Logger: NoopLogger{}, palette: p}
	app.fader = fade.New(channels, delayer, cfg.StepsPerSecond)
	return app, nil
}

func (app *App) Palette() *palette.Palette { return app.palette }

// SetLogger replaces the logger used by the controller and its fader.
func (app *App) SetLogger(logger Logger) {
	if logger == nil {
		logger = NoopLogger{}
	}
	app.Logger = logger
	app.fader.Logger = logger
}

// Boot seeds the generator from the noise input, throws away the first draw
// (it tends to repeat across power cycles), and fades from st.Current to a
// random palette color.
func (app *App) Boot(st state.State) state.State {
	st.Phase = state.BOOTING
	seed := app.Noise.ReadNoise()
	app.Rand.Seed(int64(seed))
	app.Rand.Intn(app.palette.Len())
	app.Logger.Infof("app", "seeded from noise sample %d", seed)

	first := app.palette.Pick(app.Rand)
	app.Logger.Infof("app", "boot fade to %s", app.palette.Name(first))
	app.fader.Fade(st.Current, first, app.Config.BootFadeSeconds)

	st.Current = first
	st.Phase = state.SELECTING
	return st
}

// Cycle selects a color other than st.Current, fades to it and pauses.
func (app *App) Cycle(st state.State) state.State {
	st.Phase = state.SELECTING
	next := app.palette.PickExcept(app.Rand, st.Current)

	st.Phase = state.FADING
	app.Logger.Infof("app", "cycle %d: %s -> %s", st.Cycles+1, app.palette.Name(st.Current), app.palette.Name(next))
	app.fader.Fade(st.Current, next, app.Config.SteadyFadeSeconds)
	st.Current = next
	st.Cycles++

	st.Phase = state.PAUSING
	app.Delayer.Delay(seconds(app.Config.PauseSeconds))

	st.Phase = state.SELECTING
	return st
}

// Start boots and then cycles until ctx is done.
func (app *App) Start(ctx context.Context) error {
	_, err := app.Run(ctx, 0)
	return err
}

// Run boots and then runs the given number of cycles, or cycles forever when
// cycles <= 0. ctx is only checked between cycles; a fade or pause that has
// begun always runs to completion.
func (app *App) Run(ctx context.Context, cycles int) (state.State, error) {
	st := app.Boot(state.New())
	for cycles <= 0 || st.Cycles < cycles {
		select {
		case <-ctx.Done():
			app.Logger.Infof("app", "stopping after %d cycles on %s", st.Cycles, app.palette.Name(st.Current))
			return st, ctx.Err()
		default:
		}
		st = app.Cycle(st)
	}
	return st, nil
}

// Stop switches the LED off. Releasing the device is the backend's job.
func (app *App) Stop() {
	app.Channels.Set(palette.Black)
	app.Logger.Infof("app", "LED off")
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
