package race

import (
	"context"
	"time"
)

// Scheduler runs the next step of a race at the host's discretion, typically on the next display
// refresh. At most one step is pending at a time: scheduling again replaces the pending step, and
// no step may run after Cancel until a new one is scheduled.
type Scheduler interface {
	Schedule(step func())
	Cancel()
}

/* Manual Scheduler
------------------------------------------------------------------------------------------------- */

// ManualScheduler is a fake clock: steps only run when Advance is called. It lets tests walk a
// race tick by tick.
type ManualScheduler struct {
	pending func()
	ticks   int
}

// NewManualScheduler returns a scheduler with nothing pending.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) Schedule(step func()) {
	s.pending = step
}

func (s *ManualScheduler) Cancel() {
	s.pending = nil
}

// Pending reports whether a step is waiting to run.
func (s *ManualScheduler) Pending() bool {
	return s.pending != nil
}

// Ticks returns how many steps Advance has run.
func (s *ManualScheduler) Ticks() int {
	return s.ticks
}

// Advance runs the pending step, if any, and reports whether it ran.
func (s *ManualScheduler) Advance() bool {
	step := s.pending
	if step == nil {
		return false
	}
	s.pending = nil
	s.ticks++
	step()
	return true
}

// RunUntilIdle advances until nothing is pending or the limit of steps is reached, and returns the
// number of steps run.
func (s *ManualScheduler) RunUntilIdle(limit int) int {
	n := 0
	for n < limit && s.Advance() {
		n++
	}
	return n
}

/* Ticker Scheduler
------------------------------------------------------------------------------------------------- */

// TickerScheduler runs pending steps on a fixed interval. Schedule and Cancel must be called from
// the goroutine that calls Run, or before Run starts; steps themselves run on that goroutine too.
type TickerScheduler struct {
	interval time.Duration
	pending  func()
}

// NewTickerScheduler returns a scheduler firing at the given rate in frames per second.
func NewTickerScheduler(fps int) *TickerScheduler {
	if fps <= 0 {
		fps = 60
	}
	return &TickerScheduler{interval: time.Second / time.Duration(fps)}
}

func (s *TickerScheduler) Schedule(step func()) {
	s.pending = step
}

func (s *TickerScheduler) Cancel() {
	s.pending = nil
}

// Run executes one pending step per tick until nothing is pending or the context is done.
func (s *TickerScheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for s.pending != nil {
		select {
		case <-ctx.Done():
			s.pending = nil
			return ctx.Err()
		case <-ticker.C:
			step := s.pending
			s.pending = nil
			if step != nil {
				step()
			}
		}
	}
	return nil
}
