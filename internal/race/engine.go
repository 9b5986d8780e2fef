// Package race owns the camel roster and the race session and drives a race one tick at a time.
//
// An Engine is a small state machine. It starts Idle, StartRace moves it to Racing, and every
// tick moves the camels, draws them and checks the finish line. The first camel over the line, in
// roster order, wins; the race then settles the stats and returns to Idle. StopRace forces an
// exit without a winner and leaves the engine Stopped, which behaves like Idle.
//
// The engine is not safe for concurrent use. All calls, including the scheduled ticks, must come
// from a single goroutine, which is how both the TUI and the headless runner drive it.
package race

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/bcdxn/camelrace/internal/domain"
	"github.com/bcdxn/camelrace/internal/draw"
	"github.com/bcdxn/camelrace/internal/render"
	"github.com/google/uuid"
)

// State is the state of the race session.
type State int

const (
	Idle State = iota
	Racing
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Racing:
		return "racing"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

var (
	ErrSurfaceNotFound  = errors.New("surface not found")
	ErrNoContext        = errors.New("surface has no 2D drawing context")
	ErrNotInitialized   = errors.New("race engine is not initialized")
	ErrRaceInProgress   = errors.New("race already in progress")
	ErrNoRaceInProgress = errors.New("no race in progress")
	ErrRandomOutOfRange = errors.New("random source returned a value outside [0,1)")
)

// New returns an idle engine holding the default roster. Surfaces are looked up in the given
// resolver when Init is called. Ticks run on a 60 fps TickerScheduler unless WithScheduler says
// otherwise; the host must then call its Run.
func New(surfaces draw.SurfaceResolver, opts ...EngineOption) *Engine {
	e := &Engine{
		surfaces:  surfaces,
		camels:    domain.DefaultRoster(),
		scheduler: NewTickerScheduler(60),
		random:    DefaultSource(),
		logger:    slog.Default(),
	}
	// apply given options
	for _, opt := range opts {
		opt(e)
	}
	if e.renderer == nil {
		e.renderer = render.New(e.logger)
	}
	return e
}

// Engine is the race loop controller.
type Engine struct {
	// collaborators
	surfaces  draw.SurfaceResolver
	ctx       draw.Context
	renderer  *render.Renderer
	scheduler Scheduler
	random    RandomSource
	logger    *slog.Logger
	// roster, in tie-break order
	camels []*domain.Camel
	// race session
	state   State
	winner  *domain.Camel
	settled bool
	raceID  uuid.UUID
	tick    int
}

/* Engine Optional Functional Parameters
------------------------------------------------------------------------------------------------- */

type EngineOption = func(e *Engine)

// WithLogger configures the logger to use within the engine and its renderer.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

// WithScheduler configures what runs the next tick; hosts bind it to their refresh loop.
func WithScheduler(s Scheduler) EngineOption {
	return func(e *Engine) { e.scheduler = s }
}

// WithRandomSource configures where speed variations come from; primarily used for testing.
func WithRandomSource(r RandomSource) EngineOption {
	return func(e *Engine) { e.random = r }
}

// WithRoster replaces the default roster. Camels must have unique IDs and are raced in the given
// order.
func WithRoster(camels []*domain.Camel) EngineOption {
	return func(e *Engine) { e.camels = camels }
}

// WithRenderer configures the renderer; by default one is created with the engine's logger.
func WithRenderer(r *render.Renderer) EngineOption {
	return func(e *Engine) { e.renderer = r }
}

/* Control Surface
------------------------------------------------------------------------------------------------- */

// Init binds the engine to the surface with the given identifier and draws the empty track. It
// reports false when the surface does not exist or cannot be drawn on.
func (e *Engine) Init(surfaceID string) bool {
	ctx, err := e.resolve(surfaceID)
	if err != nil {
		e.logger.Error("race engine initialization error", "surface", surfaceID, "err", err)
		return false
	}
	e.ctx = ctx
	e.renderer.DrawTrack(e.ctx)
	for _, c := range e.camels {
		e.renderer.DrawCamel(e.ctx, c, false)
	}
	e.logger.Debug("race engine initialized", "surface", surfaceID, "camels", len(e.camels))
	return true
}

// StartRace resets the camels and schedules the first tick. It reports false, leaving any race in
// progress untouched, when a race is already running or the engine has not been initialized.
func (e *Engine) StartRace() (ok bool) {
	if e.state == Racing {
		e.logger.Warn("race start rejected", "race", e.raceID, "err", ErrRaceInProgress)
		return false
	}
	if e.ctx == nil {
		e.logger.Warn("race start rejected", "err", ErrNotInitialized)
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("race start error", "race", e.raceID, "err", r)
			e.scheduler.Cancel()
			e.state = Idle
			ok = false
		}
	}()

	for _, c := range e.camels {
		c.Reset()
	}
	e.winner = nil
	e.settled = false
	e.tick = 0
	e.raceID = uuid.New()
	e.state = Racing
	e.logger.Info("race started", "race", e.raceID)

	e.scheduler.Schedule(e.Animate)
	return true
}

// Animate runs a single tick: every camel moves and is drawn in roster order, and the first one
// over the finish line becomes the winner. Unless the race finished, the next tick is scheduled.
// Any failure during the tick stops the race without a winner.
func (e *Engine) Animate() {
	if e.state != Racing {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("animation error", "race", e.raceID, "tick", e.tick, "err", r)
			e.StopRace()
		}
	}()

	e.tick++
	e.renderer.DrawTrack(e.ctx)

	finished := false
	finishWidth := e.ctx.Width()
	for _, c := range e.camels {
		variation, err := e.variation()
		if err != nil {
			e.logger.Error("animation error", "race", e.raceID, "tick", e.tick, "camel", c.Name, "err", err)
			e.StopRace()
			return
		}
		c.Step(variation)
		e.renderer.DrawCamel(e.ctx, c, true)
		// the winner is latched: later camels in this tick, or in later ticks, cannot take it
		if e.winner == nil && c.Finished(finishWidth) {
			e.winner = c
			finished = true
		}
	}

	if finished {
		e.FinishRace()
		return
	}
	e.scheduler.Schedule(e.Animate)
}

// FinishRace ends the race in progress. With a winner it cancels the pending tick, records a win
// for the winner and a race for every camel, draws the result panel and returns the winner.
// Without a winner it only ends the race. Calling it when no race is running does nothing.
func (e *Engine) FinishRace() (winner domain.Summary, ok bool) {
	if e.state != Racing {
		e.logger.Warn("race finish ignored", "err", ErrNoRaceInProgress)
		return domain.Summary{}, false
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("race finish error", "race", e.raceID, "err", r)
			e.state = Idle
			ok = false
		}
	}()

	e.state = Idle
	e.scheduler.Cancel()
	if e.winner == nil {
		e.logger.Debug("race ended without a winner", "race", e.raceID)
		return domain.Summary{}, false
	}

	e.winner.Stats.Wins++
	for _, c := range e.camels {
		c.Stats.Races++
	}
	e.settled = true
	e.renderer.DrawResult(e.ctx, e.winner)
	e.logger.Info("race finished", "race", e.raceID, "winner", e.winner.Name, "ticks", e.tick)

	return e.winner.Summary(), true
}

// StopRace forces the race to end without a winner. The pending tick is cancelled and stats are
// left alone. It is safe to call in any state.
func (e *Engine) StopRace() {
	e.scheduler.Cancel()
	if e.state == Racing {
		e.state = Stopped
		e.logger.Warn("race stopped", "race", e.raceID, "tick", e.tick)
	}
}

/* Queries
------------------------------------------------------------------------------------------------- */

// Camels returns a read-only summary of every camel in roster order. The summaries carry identity
// and stats only, never live race data.
func (e *Engine) Camels() []domain.Summary {
	summaries := make([]domain.Summary, 0, len(e.camels))
	for _, c := range e.camels {
		summaries = append(summaries, c.Summary())
	}
	return summaries
}

// Racing reports whether a race is in progress.
func (e *Engine) Racing() bool {
	return e.state == Racing
}

// State returns the state of the race session.
func (e *Engine) State() State {
	return e.state
}

// Winner returns the winner of the last finished race. A race that was stopped, even after a
// camel crossed the line, has no winner.
func (e *Engine) Winner() (domain.Summary, bool) {
	if e.winner == nil || !e.settled {
		return domain.Summary{}, false
	}
	return e.winner.Summary(), true
}

// Tick returns the number of ticks run in the current or last race.
func (e *Engine) Tick() int {
	return e.tick
}

// RaceID identifies the current or last race in logs; it is the zero UUID before the first race.
func (e *Engine) RaceID() uuid.UUID {
	return e.raceID
}

/* Private Helper Functions
------------------------------------------------------------------------------------------------- */

func (e *Engine) resolve(surfaceID string) (draw.Context, error) {
	if e.surfaces == nil {
		return nil, fmt.Errorf("%w: %q", ErrSurfaceNotFound, surfaceID)
	}
	surface, ok := e.surfaces.Lookup(surfaceID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSurfaceNotFound, surfaceID)
	}
	ctx, ok := surface.Context2D()
	if !ok || ctx == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoContext, surfaceID)
	}
	return ctx, nil
}

// variation draws the next speed variation.
func (e *Engine) variation() (float64, error) {
	r := e.random()
	if math.IsNaN(r) || r < 0 || r >= 1 {
		return 0, fmt.Errorf("%w: %v", ErrRandomOutOfRange, r)
	}
	return domain.Variation(r), nil
}
