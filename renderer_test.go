package barchart

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func scaledGraph(t *testing.T) (*Graph, *Layer) {
	t.Helper()
	g, layer := newGraph(t, NewFrame(800, 800))
	require.NoError(t, g.CreateRows(8, 0, 0, 0))
	require.NoError(t, g.CreateColumns(4, 0, 0))
	require.NoError(t, g.CaptionRows(8000, 0, "$"))
	return g, layer
}

func TestAddColumnDataScale(t *testing.T) {
	g, layer := scaledGraph(t)
	rows, _ := g.Rows()
	usable := rows.Bottom() - rows.Top()

	require.NoError(t, g.AddColumnData(0, 4000, "steelblue"))
	require.NoError(t, g.AddColumnData(1, 8000, ""))
	require.NoError(t, g.AddColumnData(2, 0, "green"))

	rects := layer.Rects()
	require.Len(t, rects, 3)

	half := rects[0]
	require.InDelta(t, usable/2, half.Height, 1e-9)
	require.Equal(t, "steelblue", half.Fill())
	require.Equal(t, 0.0, half.X)
	require.Equal(t, 200.0, half.Width)
	require.InDelta(t, 800.0, half.Y+half.Height, 1e-9)

	full := rects[1]
	require.InDelta(t, rows.Top(), full.Y, 1e-9)
	require.Equal(t, DefaultFill, full.Fill())

	zero := rects[2]
	require.Equal(t, 0.0, zero.Height)
	require.Equal(t, 800.0, zero.Y)
}

func TestAddColumnDataLabel(t *testing.T) {
	g, layer := scaledGraph(t)
	before := len(layer.Texts())

	require.NoError(t, g.AddColumnData(3, 2000, "red"))

	texts := layer.Texts()
	require.Len(t, texts, before+1)
	label := texts[len(texts)-1]
	require.Equal(t, "$2000", label.Content)
	require.Equal(t, 700.0, label.X)
	require.Equal(t, "middle", label.Attrs[AttrAnchor])

	rect := layer.Rects()[0]
	require.InDelta(t, rect.Y-DefaultFontSize/2+DefaultFontSize/4, label.Y, 1e-9)
}

func TestAddColumnDataAppends(t *testing.T) {
	g, layer := scaledGraph(t)
	require.NoError(t, g.AddColumnData(1, 1000, "red"))
	require.NoError(t, g.AddColumnData(1, 3000, "blue"))

	rects := layer.Rects()
	require.Len(t, rects, 2)
	require.Equal(t, rects[0].X, rects[1].X)
	require.Greater(t, rects[1].Height, rects[0].Height)
	require.NotEqual(t, rects[0].Id, rects[1].Id)
}

func TestAddColumnDataErrors(t *testing.T) {
	g, layer := newGraph(t, NewFrame(800, 800))
	require.ErrorIs(t, g.AddColumnData(0, 10, ""), ErrNoColumns)

	require.NoError(t, g.CreateColumns(4, 0, 0))
	require.ErrorIs(t, g.AddColumnData(0, 10, ""), ErrNoScale)

	require.NoError(t, g.CreateRows(8, 0, 0, 0))
	require.ErrorIs(t, g.AddColumnData(0, 10, ""), ErrNoScale)

	require.NoError(t, g.CaptionRows(100, 0, ""))
	count := layer.Len()
	require.ErrorIs(t, g.AddColumnData(-1, 10, ""), ErrColumnRange)
	require.ErrorIs(t, g.AddColumnData(4, 10, ""), ErrColumnRange)
	require.ErrorIs(t, g.AddColumnData(0, -5, ""), ErrNegativeValue)
	require.Equal(t, count, layer.Len())
}

func TestAddGroupDataSplitsBand(t *testing.T) {
	g, layer := scaledGraph(t)
	cols, _ := g.Columns()
	band := cols.Bands[1]

	require.NoError(t, g.AddGroupData(1, 0, 2, 6000, "steelblue"))
	require.NoError(t, g.AddGroupData(1, 1, 2, 2000, "orange"))

	rects := layer.Rects()
	require.Len(t, rects, 2)
	first, second := rects[0], rects[1]
	require.InDelta(t, band.Width()/2, first.Width, 1e-9)
	require.InDelta(t, band.Width()/2, second.Width, 1e-9)
	require.InDelta(t, band.Start, first.X, 1e-9)
	require.InDelta(t, first.X+first.Width, second.X, 1e-9)
	require.InDelta(t, band.End, second.X+second.Width, 1e-9)
	require.InDelta(t, band.Baseline, second.Y+second.Height, 1e-9)

	texts := layer.Texts()
	labels := texts[len(texts)-2:]
	require.InDelta(t, first.X+first.Width/2, labels[0].X, 1e-9)
	require.InDelta(t, second.X+second.Width/2, labels[1].X, 1e-9)
}

func TestAddGroupDataErrors(t *testing.T) {
	g, layer := scaledGraph(t)
	count := layer.Len()
	require.ErrorIs(t, g.AddGroupData(0, 0, 0, 10, ""), ErrInvalidCount)
	require.ErrorIs(t, g.AddGroupData(0, 2, 2, 10, ""), ErrGroupRange)
	require.ErrorIs(t, g.AddGroupData(0, -1, 2, 10, ""), ErrGroupRange)
	require.ErrorIs(t, g.AddGroupData(9, 0, 2, 10, ""), ErrColumnRange)
	require.Equal(t, count, layer.Len())
}
