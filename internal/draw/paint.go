package draw

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Paint is anything that can fill or stroke: a solid Color or a gradient.
type Paint interface {
	// At returns the colour of the paint at the given surface position.
	At(x, y float64) color.NRGBA
}

// Color is a solid, possibly translucent, colour.
type Color color.NRGBA

var (
	Black       = Color{A: 0xff}
	White       = Color{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Transparent = Color{}
)

var ErrInvalidColor = errors.New("invalid color")

// At implements Paint.
func (c Color) At(_, _ float64) color.NRGBA {
	return color.NRGBA(c)
}

// Hex returns the colour in #RRGGBB form, ignoring alpha.
func (c Color) Hex() string {
	return strings.ToUpper(rgb(color.NRGBA(c)).Hex())
}

// ParseHex parses #RGB or #RRGGBB colours.
func ParseHex(s string) (Color, error) {
	h := s
	if !strings.HasPrefix(h, "#") {
		h = "#" + h
	}
	// colorful ignores trailing input, so the length is checked here
	if len(h) != 4 && len(h) != 7 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	parsed, err := colorful.Hex(h)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return withAlpha(parsed, 0xff), nil
}

// MustHex is like ParseHex but panics on error. It is meant for package level colours.
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// RGBA builds a colour the way CSS rgba() does: channels in 0-255 and alpha in 0-1.
func RGBA(r, g, b uint8, alpha float64) Color {
	return Color{R: r, G: g, B: b, A: uint8(math.Round(clamp01(alpha) * 0xff))}
}

// Over composites src over dst and returns an opaque result when dst is opaque.
func Over(src, dst color.NRGBA) color.NRGBA {
	if src.A == 0xff {
		return src
	}
	if src.A == 0 {
		return dst
	}
	sa := float64(src.A) / 0xff
	da := float64(dst.A) / 0xff
	oa := sa + da*(1-sa)
	// src weighs sa/oa against dst in the composite
	mixed := rgb(dst).BlendRgb(rgb(src), sa/oa)
	return color.NRGBA(withAlpha(mixed, uint8(math.Round(oa*0xff))))
}

/* Gradients
------------------------------------------------------------------------------------------------- */

// ColorStop is a colour at a relative offset along a gradient.
type ColorStop struct {
	Offset float64
	Color  Color
}

// LinearGradient interpolates colour stops along the line from (X0, Y0) to (X1, Y1).
type LinearGradient struct {
	X0, Y0, X1, Y1 float64
	Stops          []ColorStop
}

// NewLinearGradient returns a gradient without stops along the given line.
func NewLinearGradient(x0, y0, x1, y1 float64) *LinearGradient {
	return &LinearGradient{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// AddColorStop adds a stop; offsets are clamped to [0,1].
func (g *LinearGradient) AddColorStop(offset float64, c Color) *LinearGradient {
	g.Stops = append(g.Stops, ColorStop{Offset: clamp01(offset), Color: c})
	sort.SliceStable(g.Stops, func(i, j int) bool { return g.Stops[i].Offset < g.Stops[j].Offset })
	return g
}

// At implements Paint by projecting the point onto the gradient line.
func (g *LinearGradient) At(x, y float64) color.NRGBA {
	if len(g.Stops) == 0 {
		return color.NRGBA{}
	}
	dx, dy := g.X1-g.X0, g.Y1-g.Y0
	var t float64
	if l := dx*dx + dy*dy; l > 0 {
		t = clamp01(((x-g.X0)*dx + (y-g.Y0)*dy) / l)
	}
	if t <= g.Stops[0].Offset {
		return color.NRGBA(g.Stops[0].Color)
	}
	for i := 1; i < len(g.Stops); i++ {
		lo, hi := g.Stops[i-1], g.Stops[i]
		if t > hi.Offset {
			continue
		}
		span := hi.Offset - lo.Offset
		if span == 0 {
			return color.NRGBA(hi.Color)
		}
		return lerp(color.NRGBA(lo.Color), color.NRGBA(hi.Color), (t-lo.Offset)/span)
	}
	return color.NRGBA(g.Stops[len(g.Stops)-1].Color)
}

func lerp(a, b color.NRGBA, t float64) color.NRGBA {
	alpha := math.Round(float64(a.A) + (float64(b.A)-float64(a.A))*t)
	return color.NRGBA(withAlpha(rgb(a).BlendRgb(rgb(b), t), uint8(alpha)))
}

// rgb converts the colour channels to colorful, dropping alpha.
func rgb(c color.NRGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 0xff, G: float64(c.G) / 0xff, B: float64(c.B) / 0xff}
}

func withAlpha(c colorful.Color, a uint8) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b, A: a}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
