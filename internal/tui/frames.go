package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// NewFrameScheduler returns a race.Scheduler that runs steps on bubbletea frames at the given
// rate.
func NewFrameScheduler(fps int) *FrameScheduler {
	if fps <= 0 {
		fps = 60
	}
	return &FrameScheduler{interval: time.Second / time.Duration(fps)}
}

// FrameScheduler ties race ticks to the bubbletea event loop. Schedule only records the step;
// Next turns it into a tea.Cmd and the model hands the resulting FrameMsg back to Fire, so steps
// always run inside Update. Each Cancel starts a new generation and frames of an older generation
// are dropped.
type FrameScheduler struct {
	interval time.Duration
	pending  func()
	gen      uint64
	armed    bool
}

// FrameMsg is delivered when a requested frame is due.
type FrameMsg struct {
	gen uint64
}

func (f *FrameScheduler) Schedule(step func()) {
	f.pending = step
}

func (f *FrameScheduler) Cancel() {
	f.pending = nil
	f.gen++
	f.armed = false
}

// Pending reports whether a step is waiting for a frame.
func (f *FrameScheduler) Pending() bool {
	return f.pending != nil
}

// Next returns a command that delivers the next frame, or nil when nothing is pending or a frame
// is already on its way.
func (f *FrameScheduler) Next() tea.Cmd {
	if f.pending == nil || f.armed {
		return nil
	}
	f.armed = true
	gen := f.gen
	return tea.Tick(f.interval, func(time.Time) tea.Msg {
		return FrameMsg{gen: gen}
	})
}

// Fire runs the pending step for a due frame and reports whether one ran.
func (f *FrameScheduler) Fire(msg FrameMsg) bool {
	if msg.gen != f.gen {
		return false
	}
	f.armed = false
	step := f.pending
	f.pending = nil
	if step == nil {
		return false
	}
	step()
	return true
}
