package barchart

// CaptionRows writes the value of each row at labelX, from max on the first
// row down to zero on the baseline, and keeps the resulting scale for
// AddColumnData.
func (g *Graph) CaptionRows(max, labelX float64, symbol string) error {
	if g.rows == nil {
		return g.fail("caption rows", ErrNoRows)
	}
	if g.rows.Count < 2 {
		return g.fail("caption rows", ErrSingleRow)
	}
	if max <= 0 {
		return g.fail("caption rows", ErrInvalidMax)
	}
	const min = 0
	attrs := Attributes{
		AttrAnchor:   "end",
		AttrFontSize: formatFloat(g.style.Text.Size),
	}
	for i, y := range g.rows.Positions {
		v := rowValue(i+1, g.rows.Count, min, max)
		DrawText(g.container, symbol+formatFloat(v), labelX, y, attrs)
	}
	g.rows.Scale = &Scale{
		Max:    max,
		Unit:   g.rows.Positions[0] - g.Top(),
		Symbol: symbol,
	}
	g.logger.Debug().Float64("max", max).Str("symbol", symbol).Msg("rows captioned")
	return nil
}

// CaptionColumns writes one label per column, rotated around the middle of
// the column at the given y.
func (g *Graph) CaptionColumns(labels []string, y float64) error {
	if g.columns == nil {
		return g.fail("caption columns", ErrNoColumns)
	}
	if len(labels) != g.columns.Count {
		return g.fail("caption columns", ErrLabelMismatch, "want", g.columns.Count, "got", len(labels))
	}
	for i, b := range g.columns.Bands {
		attrs := Attributes{
			AttrRotate:   Rotate(g.style.Text.Rotate, b.Middle, y),
			AttrFontSize: formatFloat(g.style.Text.CaptionSize),
		}
		DrawText(g.container, labels[i], b.Middle, y, attrs)
	}
	g.logger.Debug().Int("count", len(labels)).Msg("columns captioned")
	return nil
}

func (g *Graph) checkColumn(index int) error {
	if g.columns == nil {
		return ErrNoColumns
	}
	if index < 0 || index >= g.columns.Count {
		return ErrColumnRange
	}
	if g.rows == nil || g.rows.Scale == nil {
		return ErrNoScale
	}
	return nil
}
