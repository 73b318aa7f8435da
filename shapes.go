package barchart

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/midbel/svg"
)

const (
	DefaultFontSize  = 16.0
	DefaultLineWidth = 1.0
	DefaultColor     = "black"
	DefaultCap       = "square"
	DefaultFill      = "red"
)

// AlignMiddle can be set to "false" in the attributes given to DrawText to
// keep the y coordinate as given. It is never emitted.
const AlignMiddle = "align-middle"

const (
	AttrFontSize    = "font-size"
	AttrFontFamily  = "font-family"
	AttrFontWeight  = "font-weight"
	AttrFontStyle   = "font-style"
	AttrAnchor      = "text-anchor"
	AttrBaseline    = "dominant-baseline"
	AttrFill        = "fill"
	AttrFillOpacity = "fill-opacity"
	AttrStroke      = "stroke"
	AttrStrokeWidth = "stroke-width"
	AttrLineCap     = "stroke-linecap"
	AttrClass       = "class"
	AttrStyle       = "style"
	AttrRotate      = "transform"
)

type Primitive interface {
	Ident() string
	AsElement() svg.Element
}

type Attributes map[string]string

// Merge returns a new set of attributes. Values from other win.
func (a Attributes) Merge(other Attributes) Attributes {
	all := make(Attributes, len(a)+len(other))
	for k, v := range a {
		all[k] = v
	}
	for k, v := range other {
		all[k] = v
	}
	return all
}

func (a Attributes) Float(key string, def float64) float64 {
	str, ok := a[key]
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return def
	}
	return f
}

type Line struct {
	Id    string
	X1    float64
	Y1    float64
	X2    float64
	Y2    float64
	Width float64
	Color string
	Cap   string
}

func (i Line) Ident() string {
	return i.Id
}

func (i Line) AsElement() svg.Element {
	var stroke svg.Stroke
	stroke.Fill = i.Color
	stroke.Width = i.Width
	stroke.Line.Cap = i.Cap

	li := svg.NewLine(svg.NewPos(i.X1, i.Y1), svg.NewPos(i.X2, i.Y2), svg.WithID(i.Id), svg.WithStroke(stroke))
	return li.AsElement()
}

type Text struct {
	Id      string
	Content string
	X       float64
	Y       float64
	Attrs   Attributes
}

func (t Text) Ident() string {
	return t.Id
}

func (t Text) FontSize() float64 {
	return t.Attrs.Float(AttrFontSize, DefaultFontSize)
}

func (t Text) AsElement() svg.Element {
	var (
		attrs = Attributes{AttrFill: DefaultColor}.Merge(t.Attrs)
		m     = mapAttributes(attrs, svg.Stroke{}, textAttributes)
	)
	options := []svg.Option{
		svg.WithID(t.Id),
		svg.WithPosition(t.X, t.Y),
		svg.WithFont(textFont(attrs, t.FontSize())),
	}
	if a := attrs[AttrAnchor]; a != "" {
		options = append(options, svg.WithAnchor(a))
	}
	txt := svg.NewText(t.Content, append(options, m.options...)...)
	return withAttributes(txt.AsElement(), m.extra)
}

type Rect struct {
	Id     string
	X      float64
	Y      float64
	Width  float64
	Height float64
	Attrs  Attributes
}

func (r Rect) Ident() string {
	return r.Id
}

func (r Rect) Fill() string {
	if f := r.Attrs[AttrFill]; f != "" {
		return f
	}
	return DefaultFill
}

func (r Rect) AsElement() svg.Element {
	var (
		attrs = Attributes{AttrFill: r.Fill()}.Merge(r.Attrs)
		m     = mapAttributes(attrs, svg.DefaultStroke, nil)
	)
	options := []svg.Option{
		svg.WithID(r.Id),
		svg.WithPosition(r.X, r.Y),
		svg.WithDimension(r.Width, r.Height),
	}
	el := svg.NewRect(append(options, m.options...)...)
	return withAttributes(el.AsElement(), m.extra)
}

// DrawLine appends a line from (x1,y1) to (x2,y2) to c. A zero width and
// empty color or cap fall back to the package defaults.
func DrawLine(c Container, x1, y1, x2, y2, width float64, color, cap string) Line {
	if width <= 0 {
		width = DefaultLineWidth
	}
	if color == "" {
		color = DefaultColor
	}
	if cap == "" {
		cap = DefaultCap
	}
	li := Line{
		Id:    newID("line"),
		X1:    x1,
		Y1:    y1,
		X2:    x2,
		Y2:    y2,
		Width: width,
		Color: color,
		Cap:   cap,
	}
	c.Append(li)
	return li
}

// DrawText appends a text at (x,y) to c. The y coordinate is moved down by a
// quarter of the font size so the text sits visually centered on y.
func DrawText(c Container, str string, x, y float64, attrs Attributes) Text {
	attrs = Attributes{AttrFontSize: formatFloat(DefaultFontSize)}.Merge(attrs)
	txt := Text{
		Id:      newID("text"),
		Content: str,
		X:       x,
		Y:       y,
	}
	if attrs[AlignMiddle] != "false" {
		txt.Y += attrs.Float(AttrFontSize, DefaultFontSize) / 4
	}
	delete(attrs, AlignMiddle)
	txt.Attrs = attrs
	c.Append(txt)
	return txt
}

func DrawRect(c Container, x, y, width, height float64, attrs Attributes) Rect {
	rec := Rect{
		Id:     newID("rect"),
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		Attrs:  Attributes{AttrFill: DefaultFill}.Merge(attrs),
	}
	c.Append(rec)
	return rec
}

// Rotate formats a rotation around (x,y) as accepted by the transform
// attribute of texts and rects.
func Rotate(angle, x, y float64) string {
	return fmt.Sprintf("rotate(%s, %s, %s)", formatFloat(angle), formatFloat(x), formatFloat(y))
}

func newID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
