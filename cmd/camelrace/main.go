package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/bcdxn/camelrace/internal/config"
	"github.com/bcdxn/camelrace/internal/draw"
	"github.com/bcdxn/camelrace/internal/draw/termcanvas"
	"github.com/bcdxn/camelrace/internal/logger"
	"github.com/bcdxn/camelrace/internal/race"
	"github.com/bcdxn/camelrace/internal/tui"
)

// options are the command line flags. Seed is only applied when the flag was given, so -seed 0
// turns a RACE_SEED from the environment off.
type options struct {
	headless bool
	races    int
	seed     int64
	seedSet  bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("camelrace", flag.ContinueOnError)
	fs.BoolVar(&opts.headless, "headless", false, "run races without the TUI and print the standings")
	fs.IntVar(&opts.races, "races", 1, "number of races to run in headless mode")
	fs.Int64Var(&opts.seed, "seed", 0, "seed for speed variations, overrides RACE_SEED; 0 draws a fresh sequence")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			opts.seedSet = true
		}
	})
	if opts.races < 1 {
		return opts, fmt.Errorf("-races must be at least 1, got %d", opts.races)
	}
	return opts, nil
}

// apply overrides the configuration with the flags that were given.
func (o options) apply(cfg config.Config) config.Config {
	if o.seedSet {
		cfg.Seed = o.seed
	}
	return cfg
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg = opts.apply(cfg)

	l, f, err := logger.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer f.Close()

	ctx, cancelCtx := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancelCtx()

	random := race.DefaultSource()
	if cfg.Seed != 0 {
		random = race.SeededSource(cfg.Seed)
	}

	if opts.headless {
		err = runHeadless(ctx, cfg, opts.races, random, l)
	} else {
		err = runTUI(ctx, cfg, random, l)
	}
	if err != nil {
		l.Error("exited with error", "err", err)
		fmt.Fprintln(os.Stderr, err)
		cancelCtx()
		os.Exit(1)
	}
}

func runTUI(ctx context.Context, cfg config.Config, random race.RandomSource, l *slog.Logger) error {
	m, err := tui.NewModel(cfg, tui.WithContext(ctx), tui.WithLogger(l), tui.WithRandomSource(random))
	if err != nil {
		return err
	}
	_, err = tui.NewProgram(m).Run()
	l.Debug("tui exited")
	return err
}

// runHeadless runs the races back to back on a ticker, then prints the final frame and the
// standings.
func runHeadless(ctx context.Context, cfg config.Config, races int, random race.RandomSource, l *slog.Logger) error {
	canvas := termcanvas.New(cfg.SurfaceWidth, cfg.SurfaceHeight, termcanvas.WithCellSize(cfg.CellWidth, cfg.CellHeight))
	scheduler := race.NewTickerScheduler(cfg.FPS)
	engine := race.New(
		draw.Registry{cfg.SurfaceID: canvas},
		race.WithLogger(l),
		race.WithScheduler(scheduler),
		race.WithRandomSource(random),
	)
	if !engine.Init(cfg.SurfaceID) {
		return fmt.Errorf("%w: surface %q", tui.ErrInit, cfg.SurfaceID)
	}

	for i := 0; i < races; i++ {
		if !engine.StartRace() {
			return fmt.Errorf("race %d did not start", i+1)
		}
		if err := scheduler.Run(ctx); err != nil {
			engine.StopRace()
			return fmt.Errorf("race %d interrupted: %w", i+1, err)
		}
		winner, ok := engine.Winner()
		if engine.State() == race.Stopped || !ok {
			fmt.Printf("race %d: stopped after %d ticks\n", i+1, engine.Tick())
			continue
		}
		fmt.Printf("race %d: %s wins (jockey %s) after %d ticks\n", i+1, winner.Name, winner.Jockey, engine.Tick())
	}

	fmt.Println(canvas.View())
	fmt.Println(tui.StandingsView(engine.Camels()))
	return nil
}
