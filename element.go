package barchart

import (
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/midbel/svg"
)

// attributes already given to texts through their font and anchor.
var textAttributes = map[string]bool{
	AttrFontSize:   true,
	AttrFontFamily: true,
	AttrFontWeight: true,
	AttrFontStyle:  true,
	AttrAnchor:     true,
}

type mapping struct {
	options []svg.Option
	extra   []string
}

// mapAttributes turns attrs into options of svg elements. Attributes svg
// elements have no field for end up in extra, sorted by name, to be written
// as is.
func mapAttributes(attrs Attributes, stroke svg.Stroke, skip map[string]bool) mapping {
	var m mapping
	if c, ok := attrs[AttrFill]; ok {
		fill := svg.NewFill(c)
		fill.Opacity = attrs.Float(AttrFillOpacity, 1)
		m.options = append(m.options, svg.WithFill(fill))
	}
	if c, ok := attrs[AttrStroke]; ok {
		stroke.Fill = c
	}
	stroke.Width = attrs.Float(AttrStrokeWidth, stroke.Width)
	if c, ok := attrs[AttrLineCap]; ok {
		stroke.Line.Cap = c
	}
	m.options = append(m.options, svg.WithStroke(stroke))

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		v := attrs[k]
		switch {
		case k == "" || skip[k]:
		case k == AttrFill || k == AttrFillOpacity || k == AttrStroke || k == AttrLineCap:
		case k == AttrStrokeWidth:
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				m.extra = append(m.extra, rawAttribute(k, v))
			}
		case k == "id":
			m.options = append(m.options, svg.WithID(v))
		case k == AttrClass:
			m.options = append(m.options, svg.WithClass(strings.Fields(v)...))
		case k == AttrRotate:
			a, x, y, ok := parseRotate(v)
			if ok && (x == 0) == (y == 0) {
				m.options = append(m.options, svg.WithRotate(a, x, y))
			} else {
				m.extra = append(m.extra, rawAttribute(k, v))
			}
		default:
			m.extra = append(m.extra, rawAttribute(k, v))
		}
	}
	return m
}

func textFont(attrs Attributes, size float64) svg.Font {
	font := svg.NewFont(size)
	if f := attrs[AttrFontFamily]; f != "" {
		for _, n := range strings.Split(f, ",") {
			if n = strings.TrimSpace(n); n != "" {
				font.Family = append(font.Family, n)
			}
		}
	}
	font.Weight = attrs[AttrFontWeight]
	font.Style = attrs[AttrFontStyle]
	return font
}

// parseRotate reads rotate(a) and rotate(a x y) with its arguments separated
// by commas, spaces or both.
func parseRotate(str string) (float64, float64, float64, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(str), "rotate(")
	if !ok {
		return 0, 0, 0, false
	}
	if rest, ok = strings.CutSuffix(rest, ")"); !ok {
		return 0, 0, 0, false
	}
	fields := strings.FieldsFunc(rest, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(fields) != 1 && len(fields) != 3 {
		return 0, 0, 0, false
	}
	var vs [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return 0, 0, 0, false
		}
		vs[i] = v
	}
	return vs[0], vs[1], vs[2], true
}

func rawAttribute(name, value string) string {
	return name + "=" + strconv.Quote(value)
}

// withAttributes writes el and adds extra at the end of its opening tag.
func withAttributes(el svg.Element, extra []string) svg.Element {
	if len(extra) == 0 {
		return el
	}
	var buf strings.Builder
	el.Render(&buf)

	str := buf.String()
	ix := openTagEnd(str)
	if ix < 0 {
		return el
	}
	return svg.NewLiteral(str[:ix] + " " + strings.Join(extra, " ") + str[ix:])
}

func openTagEnd(str string) int {
	var quoted bool
	for i := 0; i < len(str); i++ {
		switch c := str[i]; {
		case quoted && c == '\\':
			i++
		case c == '"':
			quoted = !quoted
		case !quoted && c == '/' && i+1 < len(str) && str[i+1] == '>':
			return i
		case !quoted && c == '>':
			return i
		}
	}
	return -1
}
