// Package render draws the race track, the camels and the result panel on a draw.Context. Drawing
// never fails from the caller's point of view: a nil context is a no-op and a panicking context is
// recovered and logged.
package render

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/bcdxn/camelrace/internal/domain"
	"github.com/bcdxn/camelrace/internal/draw"
)

// Track geometry in pixels.
const (
	LaneCount       = 5
	LaneSpacing     = 120.0
	FinishLineWidth = 80.0
	CheckerRows     = 10
	CheckerCols     = 2
	CheckerWidth    = FinishLineWidth / CheckerCols
	CheckerHeight   = 60.0
)

// Result panel geometry in pixels.
const (
	panelX      = 150.0
	panelY      = 200.0
	panelWidth  = 500.0
	panelHeight = 150.0
)

var (
	skyColor    = draw.MustHex("#87CEEB")
	sandColor   = draw.MustHex("#F4A460")
	groundColor = draw.MustHex("#D2691E")
	laneColor   = draw.RGBA(139, 69, 19, 0.3)
	speedColor  = draw.RGBA(0, 255, 0, 0.5)
	panelColor  = draw.RGBA(0, 0, 0, 0.7)
	goldColor   = draw.MustHex("#FFD700")

	laneDash = []float64{10, 5}

	jockeyFont = draw.MustParseFont("30px Arial")
	nameFont   = draw.MustParseFont("bold 14px Courier New")
	titleFont  = draw.MustParseFont("bold 36px Courier New")
	winnerFont = draw.MustParseFont("bold 28px Courier New")
	detailFont = draw.MustParseFont("20px Courier New")
)

// New returns a renderer that logs drawing failures to the given logger.
func New(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{logger: logger}
}

// Renderer is stateless apart from its logger; it is a pure function of the state it is handed to
// calls on the drawing context.
type Renderer struct {
	logger *slog.Logger
}

// DrawTrack clears the surface and paints the desert background, the dashed lane dividers and the
// checkered finish line at the right edge.
func (r *Renderer) DrawTrack(ctx draw.Context) {
	if ctx == nil {
		return
	}
	defer r.guard("track")

	w, h := ctx.Width(), ctx.Height()
	ctx.ClearRect(0, 0, w, h)

	background := draw.NewLinearGradient(0, 0, 0, h).
		AddColorStop(0, skyColor).
		AddColorStop(0.6, sandColor).
		AddColorStop(1, groundColor)
	ctx.SetFillStyle(background)
	ctx.FillRect(0, 0, w, h)

	ctx.SetStrokeStyle(laneColor)
	ctx.SetLineWidth(2)
	// solid lines again afterwards, even when a stroke fails
	defer ctx.SetLineDash(nil)
	for i := 0; i < LaneCount; i++ {
		y := float64(i) * LaneSpacing
		ctx.SetLineDash(laneDash)
		ctx.BeginPath()
		ctx.MoveTo(0, y)
		ctx.LineTo(w, y)
		ctx.Stroke()
	}

	finishX := w - FinishLineWidth
	ctx.SetFillStyle(draw.Black)
	ctx.FillRect(finishX, 0, FinishLineWidth, h)
	ctx.SetFillStyle(draw.White)
	for i := 0; i < CheckerRows; i++ {
		for j := 0; j < CheckerCols; j++ {
			if (i+j)%2 == 0 {
				ctx.FillRect(finishX+float64(j)*CheckerWidth, float64(i)*CheckerHeight, CheckerWidth, CheckerHeight)
			}
		}
	}
}

// DrawCamel draws a camel with its jockey and name. The speed bar is only drawn while racing.
func (r *Renderer) DrawCamel(ctx draw.Context, c *domain.Camel, racing bool) {
	if ctx == nil || c == nil {
		return
	}
	defer r.guard("camel " + c.Name)

	x, y := c.X, c.Y
	body, err := draw.ParseHex(c.Color)
	if err != nil {
		r.logger.Warn("camel has an invalid color; drawing it black", "camel", c.Name, "err", err)
		body = draw.Black
	}
	ctx.SetFillStyle(body)
	// body
	ctx.FillRect(x, y, 60, 40)
	// neck and head
	ctx.FillRect(x+50, y-20, 20, 30)
	ctx.FillRect(x+60, y-25, 15, 15)
	// humps
	ctx.BeginPath()
	ctx.Arc(x+20, y+5, 15, math.Pi, 0)
	ctx.Fill()
	ctx.BeginPath()
	ctx.Arc(x+40, y+5, 12, math.Pi, 0)
	ctx.Fill()
	// legs
	for _, dx := range []float64{10, 25, 40, 55} {
		ctx.FillRect(x+dx, y+40, 6, 20)
	}

	ctx.SetFont(jockeyFont)
	ctx.FillText(c.Jockey, x+25, y+20)

	ctx.SetFillStyle(draw.Black)
	ctx.SetFont(nameFont)
	ctx.FillText(c.Name, x, y-35)

	if racing {
		ctx.SetFillStyle(speedColor)
		ctx.FillRect(x, y+65, c.SpeedBar(), 5)
	}
}

// DrawResult paints the winner panel over the centre of the track.
func (r *Renderer) DrawResult(ctx draw.Context, winner *domain.Camel) {
	if ctx == nil || winner == nil {
		return
	}
	defer r.guard("result")

	centerX := ctx.Width() / 2
	ctx.SetFillStyle(panelColor)
	ctx.FillRect(panelX, panelY, panelWidth, panelHeight)

	ctx.SetTextAlign(draw.AlignCenter)
	defer ctx.SetTextAlign(draw.AlignLeft)
	ctx.SetFillStyle(goldColor)
	ctx.SetFont(titleFont)
	ctx.FillText("🏆 WINNER! 🏆", centerX, 250)

	ctx.SetFillStyle(draw.White)
	ctx.SetFont(winnerFont)
	ctx.FillText(winner.Name, centerX, 300)

	ctx.SetFont(detailFont)
	ctx.FillText(fmt.Sprintf("Jockey: %s", winner.Jockey), centerX, 330)
}

// guard swallows a panic raised by the drawing context and logs it.
func (r *Renderer) guard(what string) {
	if err := recover(); err != nil {
		r.logger.Error("drawing failed", "what", what, "err", err)
	}
}
