package barchart

// AddColumnData draws a bar of the given value in the column at index,
// sitting on the baseline, and writes the value just above it. Each call
// draws a new bar: previous bars of the column are kept.
func (g *Graph) AddColumnData(index int, value float64, color string) error {
	return g.addData("add column data", index, 0, 1, value, color)
}

// AddGroupData splits the column at index in size slots of equal width and
// draws the bar of the given value in the slot at pos.
func (g *Graph) AddGroupData(index, pos, size int, value float64, color string) error {
	if size < 1 {
		return g.fail("add group data", ErrInvalidCount, "size", size)
	}
	if pos < 0 || pos >= size {
		return g.fail("add group data", ErrGroupRange, "pos", pos, "size", size)
	}
	return g.addData("add group data", index, pos, size, value, color)
}

func (g *Graph) addData(op string, index, pos, size int, value float64, color string) error {
	if err := g.checkColumn(index); err != nil {
		return g.fail(op, err, "column", index)
	}
	if value < 0 {
		return g.fail(op, ErrNegativeValue, "value", value)
	}
	if color == "" {
		color = DefaultFill
	}
	var (
		band   = g.columns.Bands[index]
		slot   = band.Width() / float64(size)
		left   = band.Start + slot*float64(pos)
		scale  = g.rows.Scale
		height = scale.Height(g.Vertical(), value)
		top    = band.Baseline - height
	)
	DrawRect(g.container, left, top, slot, height, Attributes{AttrFill: color})

	attrs := Attributes{
		AttrAnchor:   "middle",
		AttrFontSize: formatFloat(g.style.Text.Size),
	}
	DrawText(g.container, scale.Label(value), left+slot/2, top-g.style.Text.Size/2, attrs)

	g.logger.Debug().Int("column", index).Int("slot", pos).Float64("value", value).Float64("height", height).Msg("column data added")
	return nil
}
