package render

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/bcdxn/camelrace/internal/domain"
	"github.com/bcdxn/camelrace/internal/draw"
	"github.com/bcdxn/camelrace/internal/draw/drawtest"
	"github.com/bcdxn/camelrace/internal/draw/termcanvas"
)

func TestDrawTrack(t *testing.T) {
	rec := drawtest.New(800, 600)
	New(testLogger(t)).DrawTrack(rec)

	ops := rec.Ops()
	if len(ops) == 0 || ops[0].Name != "ClearRect" {
		t.Fatalf("expected the track to start by clearing the surface")
	}
	if got := rec.Count("Stroke"); got != LaneCount {
		t.Errorf("expected %d lane strokes but found %d", LaneCount, got)
	}
	if _, ok := ops[1].Paint.(*draw.LinearGradient); !ok {
		t.Errorf("expected a gradient background but found %T", ops[1].Paint)
	}
	finish := rec.FillRects(draw.Black)
	if len(finish) != 1 || finish[0][0] != 720 || finish[0][2] != FinishLineWidth {
		t.Errorf("expected a single finish block at x=720 but found %v", finish)
	}
	if checkers := rec.FillRects(draw.White); len(checkers) != CheckerRows {
		t.Errorf("expected %d white checker squares but found %d", CheckerRows, len(checkers))
	}
	var dashed int
	for _, op := range ops {
		if op.Name == "SetLineDash" && len(op.Args) == 2 {
			dashed++
		}
	}
	if dashed != LaneCount {
		t.Errorf("expected every lane to be dashed but found %d dashed lanes", dashed)
	}
}

func TestDrawTrackIsIdempotent(t *testing.T) {
	r := New(testLogger(t))
	c := termcanvas.New(800, 600)
	r.DrawTrack(c)
	first := c.String()
	r.DrawTrack(c)
	if c.String() != first {
		t.Errorf("expected drawing the track twice to give the same frame")
	}
}

func TestDrawCamel(t *testing.T) {
	camel := domain.DefaultRoster()[0]
	camel.Speed = 2.5

	t.Run("Racing", func(t *testing.T) {
		rec := drawtest.New(800, 600)
		New(testLogger(t)).DrawCamel(rec, camel, true)

		if got := rec.Count("Arc"); got != 2 {
			t.Errorf("expected 2 humps but found %d", got)
		}
		texts := rec.Texts()
		if len(texts) != 2 || texts[0] != camel.Jockey || texts[1] != camel.Name {
			t.Errorf("expected the jockey and the name to be drawn but found %v", texts)
		}
		body := rec.FillRects(draw.MustHex(camel.Color))
		// body, neck, head and four legs
		if len(body) != 7 {
			t.Errorf("expected 7 body rectangles but found %d", len(body))
		}
		bars := rec.FillRects(speedColor)
		if len(bars) != 1 {
			t.Fatalf("expected a speed bar while racing but found %d", len(bars))
		}
		if bars[0][2] != 25 {
			t.Errorf("expected a speed bar of %f pixels but found %f", 25.0, bars[0][2])
		}
	})
	t.Run("Idle", func(t *testing.T) {
		rec := drawtest.New(800, 600)
		New(testLogger(t)).DrawCamel(rec, camel, false)
		if bars := rec.FillRects(speedColor); len(bars) != 0 {
			t.Errorf("expected no speed bar outside a race but found %d", len(bars))
		}
	})
	t.Run("InvalidColor", func(t *testing.T) {
		rec := drawtest.New(800, 600)
		odd := *camel
		odd.Color = "sandy"
		New(testLogger(t)).DrawCamel(rec, &odd, false)
		if len(rec.FillRects(draw.Black)) != 7 {
			t.Errorf("expected a camel with an invalid color to be drawn black")
		}
	})
}

func TestDrawResult(t *testing.T) {
	winner := domain.DefaultRoster()[2]
	rec := drawtest.New(800, 600)
	New(testLogger(t)).DrawResult(rec, winner)

	texts := rec.Texts()
	want := []string{"🏆 WINNER! 🏆", "Golden Wind", "Jockey: 👨"}
	if strings.Join(texts, "|") != strings.Join(want, "|") {
		t.Errorf("expected %v but found %v", want, texts)
	}
	for _, op := range rec.Ops() {
		if op.Name == "FillText" && (op.Align != draw.AlignCenter || op.Args[0] != 400) {
			t.Errorf("expected centred text at x=400 but found %+v", op)
		}
	}
	if panels := rec.FillRects(panelColor); len(panels) != 1 {
		t.Errorf("expected a single translucent panel but found %d", len(panels))
	}
}

func TestNilContextIsNoop(t *testing.T) {
	r := New(testLogger(t))
	camel := domain.DefaultRoster()[0]
	// none of these may panic
	r.DrawTrack(nil)
	r.DrawCamel(nil, camel, true)
	r.DrawResult(nil, camel)
	r.DrawResult(drawtest.New(800, 600), nil)
}

func TestDrawingFailuresAreSwallowed(t *testing.T) {
	var logs bytes.Buffer
	r := New(slog.New(slog.NewTextHandler(&logs, nil)))

	rec := drawtest.New(800, 600)
	rec.PanicOn = "FillRect"
	r.DrawTrack(rec)
	r.DrawCamel(rec, domain.DefaultRoster()[1], true)
	r.DrawResult(rec, domain.DefaultRoster()[1])

	if got := strings.Count(logs.String(), "drawing failed"); got != 3 {
		t.Errorf("expected 3 logged drawing failures but found %d: %s", got, logs.String())
	}
}

func TestFailedDrawsRestoreContextState(t *testing.T) {
	r := New(testLogger(t))
	rec := drawtest.New(800, 600)

	rec.PanicOn = "FillText"
	r.DrawResult(rec, domain.DefaultRoster()[0])
	rec.PanicOn = "Stroke"
	r.DrawTrack(rec)

	rec.PanicOn = ""
	rec.Reset()
	r.DrawCamel(rec, domain.DefaultRoster()[1], false)
	for _, op := range rec.Ops() {
		if op.Name == "FillText" && op.Align != draw.AlignLeft {
			t.Errorf("expected left aligned camel labels after a failed result panel but found %+v", op)
		}
	}

	rec.Reset()
	rec.PanicOn = "Stroke"
	r.DrawTrack(rec)
	var last drawtest.Op
	for _, op := range rec.Ops() {
		if op.Name == "SetLineDash" {
			last = op
		}
	}
	if last.Name == "" || len(last.Args) != 0 {
		t.Errorf("expected the line dash to be cleared after a failed stroke but found %+v", last)
	}
}

// testLogger creates a new logger to be used in tests that writes all logs to /dev/null so they
// don't uglify the test output.
func testLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
