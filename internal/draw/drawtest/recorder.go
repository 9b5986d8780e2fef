// Package drawtest provides a draw.Context that records every call, for asserting on what a
// renderer drew without a real surface.
package drawtest

import (
	"fmt"

	"github.com/bcdxn/camelrace/internal/draw"
)

// Op is a single recorded drawing call. Only the fields relevant to the call are set.
type Op struct {
	Name  string
	Args  []float64
	Text  string
	Paint draw.Paint
	Font  draw.Font
	Align draw.Align
}

// Recorder is a draw.Context of a fixed size that records calls instead of drawing them. It also
// implements draw.Surface.
type Recorder struct {
	W, H float64
	// PanicOn makes the recorder panic when the named call is made, simulating a failing surface.
	PanicOn string

	ops   []Op
	fill  draw.Paint
	align draw.Align
}

// New returns a recorder for a surface of the given size.
func New(w, h float64) *Recorder {
	return &Recorder{W: w, H: h, fill: draw.Black}
}

// Context2D implements draw.Surface.
func (r *Recorder) Context2D() (draw.Context, bool) {
	return r, true
}

// Ops returns the recorded calls in order.
func (r *Recorder) Ops() []Op {
	return r.ops
}

// Reset forgets every recorded call.
func (r *Recorder) Reset() {
	r.ops = nil
}

// Count returns how many times the named call was made.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, op := range r.ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

// Texts returns the text of every FillText call in order.
func (r *Recorder) Texts() []string {
	var texts []string
	for _, op := range r.ops {
		if op.Name == "FillText" {
			texts = append(texts, op.Text)
		}
	}
	return texts
}

// FillRects returns the arguments of every FillRect call made while the fill style was p.
func (r *Recorder) FillRects(p draw.Paint) [][]float64 {
	var rects [][]float64
	for _, op := range r.ops {
		if op.Name == "FillRect" && op.Paint == p {
			rects = append(rects, op.Args)
		}
	}
	return rects
}

func (r *Recorder) record(op Op) {
	if r.PanicOn != "" && op.Name == r.PanicOn {
		panic(fmt.Sprintf("drawtest: %s failed", op.Name))
	}
	r.ops = append(r.ops, op)
}

/* draw.Context Implementation
------------------------------------------------------------------------------------------------- */

func (r *Recorder) Width() float64  { return r.W }
func (r *Recorder) Height() float64 { return r.H }

func (r *Recorder) ClearRect(x, y, w, h float64) {
	r.record(Op{Name: "ClearRect", Args: []float64{x, y, w, h}})
}

func (r *Recorder) FillRect(x, y, w, h float64) {
	r.record(Op{Name: "FillRect", Args: []float64{x, y, w, h}, Paint: r.fill})
}

func (r *Recorder) SetFillStyle(p draw.Paint) {
	r.fill = p
	r.record(Op{Name: "SetFillStyle", Paint: p})
}

func (r *Recorder) SetStrokeStyle(p draw.Paint) {
	r.record(Op{Name: "SetStrokeStyle", Paint: p})
}

func (r *Recorder) SetLineWidth(w float64) {
	r.record(Op{Name: "SetLineWidth", Args: []float64{w}})
}

func (r *Recorder) SetLineDash(segments []float64) {
	r.record(Op{Name: "SetLineDash", Args: append([]float64(nil), segments...)})
}

func (r *Recorder) BeginPath() {
	r.record(Op{Name: "BeginPath"})
}

func (r *Recorder) MoveTo(x, y float64) {
	r.record(Op{Name: "MoveTo", Args: []float64{x, y}})
}

func (r *Recorder) LineTo(x, y float64) {
	r.record(Op{Name: "LineTo", Args: []float64{x, y}})
}

func (r *Recorder) Arc(x, y, radius, startAngle, endAngle float64) {
	r.record(Op{Name: "Arc", Args: []float64{x, y, radius, startAngle, endAngle}})
}

func (r *Recorder) Fill() {
	r.record(Op{Name: "Fill", Paint: r.fill})
}

func (r *Recorder) Stroke() {
	r.record(Op{Name: "Stroke"})
}

func (r *Recorder) SetFont(f draw.Font) {
	r.record(Op{Name: "SetFont", Font: f})
}

func (r *Recorder) SetTextAlign(a draw.Align) {
	r.align = a
	r.record(Op{Name: "SetTextAlign", Align: a})
}

func (r *Recorder) FillText(text string, x, y float64) {
	r.record(Op{Name: "FillText", Args: []float64{x, y}, Text: text, Paint: r.fill, Align: r.align})
}
