package barchart

import (
	"math"

	"github.com/midbel/slices"
	"github.com/rs/zerolog"
)

const (
	DefaultBorder = 10.0
	DefaultMargin = 10.0
)

type Padding struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

func (p Padding) Horizontal() float64 {
	return p.Left + p.Right
}

func (p Padding) Vertical() float64 {
	return p.Top + p.Bottom
}

// Frame is the rectangle a chart is drawn into. Width and Height are only
// used when the corners are left to zero.
type Frame struct {
	X1 float64
	Y1 float64
	X2 float64
	Y2 float64

	Width  float64
	Height float64
}

func NewFrame(width, height float64) Frame {
	return Frame{
		X2:     width,
		Y2:     height,
		Width:  width,
		Height: height,
	}
}

// PaddedFrame returns the frame left inside a width x height canvas once pad
// is removed.
func PaddedFrame(width, height float64, pad Padding) Frame {
	return Frame{
		X1:     pad.Left,
		Y1:     pad.Top,
		X2:     width - pad.Right,
		Y2:     height - pad.Bottom,
		Width:  width,
		Height: height,
	}
}

func (f Frame) normalize() Frame {
	if f.X1 == 0 && f.Y1 == 0 && f.X2 == 0 && f.Y2 == 0 {
		f.X2 = f.Width
		f.Y2 = f.Height
	}
	return f
}

func (f Frame) Valid() bool {
	return f.X1 != f.X2 && f.Y1 != f.Y2
}

func (f Frame) Horizontal() float64 {
	return math.Abs(f.X2 - f.X1)
}

func (f Frame) Vertical() float64 {
	return math.Abs(f.Y2 - f.Y1)
}

func (f Frame) Left() float64 {
	return math.Min(f.X1, f.X2)
}

func (f Frame) Top() float64 {
	return math.Min(f.Y1, f.Y2)
}

type Rows struct {
	Count     int
	Intervals int
	Spacing   float64
	Positions []float64
	Minors    []float64
	Scale     *Scale
}

func (r Rows) Top() float64 {
	return slices.Fst(r.Positions)
}

func (r Rows) Bottom() float64 {
	return slices.Lst(r.Positions)
}

type Band struct {
	Start    float64
	End      float64
	Baseline float64
	Middle   float64
}

func (b Band) Width() float64 {
	return b.End - b.Start
}

type Columns struct {
	Count int
	Bands []Band
}

type Option func(*Graph)

func WithLogger(logger zerolog.Logger) Option {
	return func(g *Graph) {
		g.logger = logger
	}
}

func WithStyle(style Style) Option {
	return func(g *Graph) {
		g.style = style
	}
}

// Graph lays out a grid of rows and columns over a frame and draws into a
// container. A Graph is not safe for concurrent use.
type Graph struct {
	Frame

	container Container
	rows      *Rows
	columns   *Columns

	style  Style
	logger zerolog.Logger
}

func New(c Container, frame Frame, options ...Option) (*Graph, error) {
	frame = frame.normalize()
	if !frame.Valid() {
		return nil, ErrDegenerateFrame
	}
	g := Graph{
		Frame:     frame,
		container: c,
		style:     DefaultStyle(),
		logger:    zerolog.Nop(),
	}
	for _, o := range options {
		o(&g)
	}
	return &g, nil
}

// Rows returns a copy of the row set or false when no rows exist.
func (g *Graph) Rows() (Rows, bool) {
	if g.rows == nil {
		return Rows{}, false
	}
	r := *g.rows
	r.Positions = append([]float64(nil), g.rows.Positions...)
	r.Minors = append([]float64(nil), g.rows.Minors...)
	if g.rows.Scale != nil {
		s := *g.rows.Scale
		r.Scale = &s
	}
	return r, true
}

// Columns returns a copy of the column set or false when no columns exist.
func (g *Graph) Columns() (Columns, bool) {
	if g.columns == nil {
		return Columns{}, false
	}
	c := *g.columns
	c.Bands = append([]Band(nil), g.columns.Bands...)
	return c, true
}

// Clear forgets rows and columns and empties the container.
func (g *Graph) Clear() {
	g.rows = nil
	g.columns = nil
	g.container.Empty()
}

func (g *Graph) CreateRows(count, intervals int, width, intervalWidth float64) error {
	if g.rows != nil {
		return g.fail("create rows", ErrRowsDefined)
	}
	if count < 1 || intervals < 0 {
		return g.fail("create rows", ErrInvalidCount)
	}
	if width <= 0 {
		width = g.style.Line.Width
	}
	if intervalWidth <= 0 {
		intervalWidth = g.style.Line.IntervalWidth
	}
	var (
		spacing = g.Vertical() / float64(count)
		step    = spacing / float64(intervals+1)
		top     = g.Top()
		rows    = Rows{
			Count:     count,
			Intervals: intervals,
			Spacing:   spacing,
		}
	)
	for i := 1; i <= count; i++ {
		y := top + spacing*float64(i)
		if i == count {
			y = top + g.Vertical()
		}
		rows.Positions = append(rows.Positions, y)
		DrawLine(g.container, g.X1, y, g.X2, y, width, "", "")
		if i == count {
			continue
		}
		for j := 1; j <= intervals; j++ {
			iy := y + float64(j)*step
			rows.Minors = append(rows.Minors, iy)
			DrawLine(g.container, g.X1, iy, g.X2, iy, intervalWidth, "", "")
		}
	}
	g.rows = &rows
	g.logger.Debug().Int("count", count).Int("intervals", intervals).Float64("spacing", spacing).Msg("rows created")
	return nil
}

func (g *Graph) CreateColumns(count int, border, margin float64) error {
	if g.columns != nil {
		return g.fail("create columns", ErrColumnsDefined)
	}
	if count < 1 {
		return g.fail("create columns", ErrInvalidCount)
	}
	if border < 0 || margin < 0 {
		return g.fail("create columns", ErrInvalidMargin)
	}
	var (
		slot     = (g.Horizontal() - 2*border) / float64(count)
		left     = g.Left()
		baseline = g.Top() + g.Vertical()
		cols     = Columns{
			Count: count,
		}
	)
	if slot-margin <= 0 {
		return g.fail("create columns", ErrInvalidMargin)
	}
	for i := 0; i < count; i++ {
		var (
			offset = border + float64(i)*slot
			band   Band
		)
		band.Start = left + offset + margin/2
		band.End = left + offset + slot - margin/2
		band.Middle = (band.Start + band.End) / 2
		band.Baseline = baseline
		cols.Bands = append(cols.Bands, band)

		DrawLine(g.container, band.Start, baseline, band.End, baseline, g.style.Line.MarkerWidth, g.style.Fill.List.At(i), "")
	}
	g.columns = &cols
	g.logger.Debug().Int("count", count).Float64("slot", slot).Msg("columns created")
	return nil
}

// fail logs the rejected operation at warn level with fields given as
// key/value pairs and returns err.
func (g *Graph) fail(op string, err error, fields ...any) error {
	g.logger.Warn().Err(err).Str("op", op).Fields(fields).Msg("graph operation rejected")
	return err
}
