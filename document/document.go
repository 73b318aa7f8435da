// Package document describes a bar chart in a TOML file and draws it on a
// barchart.Graph.
package document

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/midbel/barchart"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
)

var (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
	DefaultRows   = 5
)

var defaultPad = barchart.Padding{
	Top:    20,
	Right:  20,
	Bottom: 80,
	Left:   80,
}

var ErrNoSeries = errors.New("document has no series")

type Frame struct {
	X1 float64 `toml:"x1"`
	Y1 float64 `toml:"y1"`
	X2 float64 `toml:"x2"`
	Y2 float64 `toml:"y2"`
}

func (f Frame) isZero() bool {
	return f == Frame{}
}

type Padding struct {
	Top    float64 `toml:"top"`
	Right  float64 `toml:"right"`
	Bottom float64 `toml:"bottom"`
	Left   float64 `toml:"left"`
}

type Rows struct {
	Count         int      `toml:"count"`
	Intervals     int      `toml:"intervals"`
	Width         float64  `toml:"width"`
	IntervalWidth float64  `toml:"interval_width"`
	Max           float64  `toml:"max"`
	LabelX        *float64 `toml:"label_x"`
	Unit          string   `toml:"unit"`
}

type Columns struct {
	Border *float64 `toml:"border"`
	Margin *float64 `toml:"margin"`
	Labels []string `toml:"labels"`
	LabelY *float64 `toml:"label_y"`
}

type Document struct {
	Title   string   `toml:"title"`
	Width   float64  `toml:"width"`
	Height  float64  `toml:"height"`
	Frame   Frame    `toml:"frame"`
	Padding *Padding `toml:"padding"`
	Rows    Rows     `toml:"rows"`
	Columns Columns  `toml:"columns"`
	Series  []Serie  `toml:"series"`

	dir string
}

type Option func(*Document)

// WithDimension gives the size of the canvas of documents that do not set
// one. Zero values are ignored.
func WithDimension(width, height float64) Option {
	return func(d *Document) {
		if width > 0 {
			d.Width = width
		}
		if height > 0 {
			d.Height = height
		}
	}
}

// Decode reads a document from r. Relative data files of the series are
// resolved from the directory of r when r is a file.
func Decode(r io.Reader, options ...Option) (*Document, error) {
	doc := Document{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Rows: Rows{
			Count: DefaultRows,
		},
	}
	for _, o := range options {
		o(&doc)
	}
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	if n, ok := r.(interface{ Name() string }); ok {
		doc.dir = filepath.Dir(n.Name())
	}
	return &doc, nil
}

func Load(file string, options ...Option) (*Document, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return Decode(r, options...)
}

// GetFrame returns the frame of the chart: the explicit corners when given,
// otherwise the canvas minus its padding.
func (d *Document) GetFrame() barchart.Frame {
	if !d.Frame.isZero() {
		return barchart.Frame{
			X1:     d.Frame.X1,
			Y1:     d.Frame.Y1,
			X2:     d.Frame.X2,
			Y2:     d.Frame.Y2,
			Width:  d.Width,
			Height: d.Height,
		}
	}
	pad := defaultPad
	if d.Padding != nil {
		pad = barchart.Padding(*d.Padding)
	}
	return barchart.PaddedFrame(d.Width, d.Height, pad)
}

// Draw creates the grid of the document on g and adds the values of each
// serie to the columns. With more than one serie, the bars of a column are
// drawn side by side in the order of the series.
func (d *Document) Draw(g *barchart.Graph) error {
	if len(d.Series) == 0 {
		return ErrNoSeries
	}
	var (
		data   = make([][]float64, len(d.Series))
		labels = d.Columns.Labels
	)
	for i, s := range d.Series {
		vs, err := s.Load(d.dir)
		if err != nil {
			return fmt.Errorf("serie %s: %w", s.Name, err)
		}
		data[i] = vs
		if len(labels) == 0 && len(s.Labels) > 0 {
			labels = s.Labels
		}
	}

	var (
		frame   = g.Frame
		columns = len(labels)
		maxv    = d.Rows.Max
	)
	for _, vs := range data {
		if len(vs) > columns {
			columns = len(vs)
		}
		for _, v := range vs {
			if v > maxv {
				maxv = v
			}
		}
	}

	if err := g.CreateRows(d.Rows.Count, d.Rows.Intervals, d.Rows.Width, d.Rows.IntervalWidth); err != nil {
		return err
	}
	if err := g.CaptionRows(maxv, orDefault(d.Rows.LabelX, frame.Left()-10), d.Rows.Unit); err != nil {
		return err
	}
	border := orDefault(d.Columns.Border, barchart.DefaultBorder)
	margin := orDefault(d.Columns.Margin, barchart.DefaultMargin)
	if err := g.CreateColumns(columns, border, margin); err != nil {
		return err
	}
	if len(labels) > 0 {
		y := orDefault(d.Columns.LabelY, frame.Top()+frame.Vertical()+20)
		if err := g.CaptionColumns(labels, y); err != nil {
			return err
		}
	}
	for i, vs := range data {
		color := d.Series[i].Color
		if color == "" {
			color = barchart.Tableau10.At(i)
		}
		for j, v := range vs {
			if err := g.AddGroupData(j, i, len(data), v, color); err != nil {
				return fmt.Errorf("serie %s: %w", d.Series[i].Name, err)
			}
		}
	}
	return nil
}

// Render draws the document on a new layer and writes it to w as svg. It
// returns the number of primitives drawn.
func Render(d *Document, w io.Writer, logger zerolog.Logger) (int, error) {
	layer := barchart.NewLayer(d.Width, d.Height)
	g, err := barchart.New(layer, d.GetFrame(), barchart.WithLogger(logger))
	if err != nil {
		return 0, err
	}
	if err := d.Draw(g); err != nil {
		return 0, err
	}
	if err := layer.Render(w); err != nil {
		return 0, fmt.Errorf("writing svg: %w", err)
	}
	logger.Debug().Str("title", d.Title).Int("primitives", layer.Len()).Msg("document rendered")
	return layer.Len(), nil
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
