// Package draw describes the 2D drawing capability the renderer consumes. It is modelled on the
// subset of an HTML canvas context that racing graphics need (rectangles, dashed strokes, arcs,
// gradients and text) so that any host surface can implement it.
package draw

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Context is a 2D drawing context. Coordinates are in surface pixels with the origin at the top
// left corner. Implementations report failures by panicking; callers that must survive a broken
// surface recover at their own boundary.
type Context interface {
	Width() float64
	Height() float64

	ClearRect(x, y, w, h float64)
	FillRect(x, y, w, h float64)

	SetFillStyle(p Paint)
	SetStrokeStyle(p Paint)
	SetLineWidth(w float64)
	// SetLineDash sets the on/off dash pattern for strokes; an empty pattern draws solid lines.
	SetLineDash(segments []float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	// Arc adds a clockwise arc (in screen space) around (x, y) from the start angle to the end
	// angle, both in radians measured from the positive x axis.
	Arc(x, y, radius, startAngle, endAngle float64)
	Fill()
	Stroke()

	SetFont(f Font)
	SetTextAlign(a Align)
	FillText(text string, x, y float64)
}

// Surface is something that can be drawn on.
type Surface interface {
	// Context2D returns the surface's 2D drawing context, or false if the surface has none.
	Context2D() (Context, bool)
}

// SurfaceResolver finds surfaces by identifier.
type SurfaceResolver interface {
	Lookup(id string) (Surface, bool)
}

// Registry is an in-process SurfaceResolver.
type Registry map[string]Surface

// Lookup implements SurfaceResolver.
func (r Registry) Lookup(id string) (Surface, bool) {
	s, ok := r[id]
	return s, ok && s != nil
}

/* Text
------------------------------------------------------------------------------------------------- */

// Align is the horizontal text alignment relative to the x coordinate given to FillText.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Font describes a text style.
type Font struct {
	Size   float64 // Size is the font size in pixels
	Bold   bool
	Family string
}

var ErrInvalidFont = errors.New("invalid font")

// ParseFont parses a CSS-like font shorthand such as "bold 14px Courier New".
func ParseFont(desc string) (Font, error) {
	var f Font
	fields := strings.Fields(desc)
	for i, field := range fields {
		switch {
		case field == "bold":
			f.Bold = true
		case field == "normal":
		case strings.HasSuffix(field, "px"):
			size, err := strconv.ParseFloat(strings.TrimSuffix(field, "px"), 64)
			if err != nil || size <= 0 {
				return f, fmt.Errorf("%w: bad size %q", ErrInvalidFont, field)
			}
			f.Size = size
			f.Family = strings.Join(fields[i+1:], " ")
			return f, nil
		default:
			return f, fmt.Errorf("%w: unexpected %q in %q", ErrInvalidFont, field, desc)
		}
	}
	return f, fmt.Errorf("%w: no size in %q", ErrInvalidFont, desc)
}

// MustParseFont is like ParseFont but panics on error. It is meant for package level fonts.
func MustParseFont(desc string) Font {
	f, err := ParseFont(desc)
	if err != nil {
		panic(err)
	}
	return f
}

// String returns the font in shorthand form.
func (f Font) String() string {
	size := strconv.FormatFloat(f.Size, 'f', -1, 64) + "px"
	if f.Bold {
		return strings.TrimSpace("bold " + size + " " + f.Family)
	}
	return strings.TrimSpace(size + " " + f.Family)
}
