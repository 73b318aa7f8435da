package barchart

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestCaptionRows(t *testing.T) {
	g, layer := newGraph(t, Frame{X1: 100, Y1: 0, X2: 1000, Y2: 1000})
	require.NoError(t, g.CreateRows(8, 9, 0, 0))
	before := layer.Len()

	require.NoError(t, g.CaptionRows(7000, 90, "$ "))

	texts := layer.Texts()
	require.Len(t, texts, 8)
	require.Equal(t, before+8, layer.Len())

	want := []string{"$ 7000", "$ 6000", "$ 5000", "$ 4000", "$ 3000", "$ 2000", "$ 1000", "$ 0"}
	for i, txt := range texts {
		require.Equal(t, want[i], txt.Content)
		require.Equal(t, 90.0, txt.X)
		require.Equal(t, 125.0*float64(i+1)+DefaultFontSize/4, txt.Y)
		require.Equal(t, "end", txt.Attrs[AttrAnchor])
	}

	rows, _ := g.Rows()
	require.NotNil(t, rows.Scale)
	require.Equal(t, Scale{Max: 7000, Unit: 125, Symbol: "$ "}, *rows.Scale)
}

func TestCaptionRowsFloorsValues(t *testing.T) {
	g, layer := newGraph(t, NewFrame(100, 100))
	require.NoError(t, g.CreateRows(4, 0, 0, 0))
	require.NoError(t, g.CaptionRows(100, 0, ""))

	var got []string
	for _, txt := range layer.Texts() {
		got = append(got, txt.Content)
	}
	require.Equal(t, []string{"100", "67", "34", "0"}, got)
}

func TestCaptionRowsErrors(t *testing.T) {
	g, layer := newGraph(t, NewFrame(100, 100))
	require.ErrorIs(t, g.CaptionRows(100, 0, ""), ErrNoRows)

	require.NoError(t, g.CreateRows(1, 0, 0, 0))
	require.ErrorIs(t, g.CaptionRows(100, 0, ""), ErrSingleRow)

	g.Clear()
	require.NoError(t, g.CreateRows(4, 0, 0, 0))
	count := layer.Len()
	require.ErrorIs(t, g.CaptionRows(0, 0, ""), ErrInvalidMax)
	require.ErrorIs(t, g.CaptionRows(-10, 0, ""), ErrInvalidMax)
	require.Equal(t, count, layer.Len())

	rows, _ := g.Rows()
	require.Nil(t, rows.Scale)
}

func TestCaptionColumns(t *testing.T) {
	g, layer := newGraph(t, Frame{X1: 0, Y1: 0, X2: 300, Y2: 300})
	require.NoError(t, g.CreateColumns(3, 0, 0))
	require.NoError(t, g.CaptionColumns([]string{"A", "B", "C"}, 320))

	texts := layer.Texts()
	require.Len(t, texts, 3)
	for i, txt := range texts {
		mid := 50.0 + 100*float64(i)
		require.Equal(t, mid, txt.X)
		require.Equal(t, 320+20.0/4, txt.Y)
		require.Equal(t, Rotate(45, mid, 320), txt.Attrs[AttrRotate])
		require.Equal(t, "20", txt.Attrs[AttrFontSize])
	}
	require.Equal(t, "rotate(45, 50, 320)", texts[0].Attrs[AttrRotate])
}

func TestCaptionColumnsMismatch(t *testing.T) {
	g, layer := newGraph(t, NewFrame(300, 300))
	require.ErrorIs(t, g.CaptionColumns([]string{"A"}, 0), ErrNoColumns)

	require.NoError(t, g.CreateColumns(3, 0, 0))
	count := layer.Len()
	require.ErrorIs(t, g.CaptionColumns([]string{"A", "B"}, 320), ErrLabelMismatch)
	require.ErrorIs(t, g.CaptionColumns([]string{"A", "B", "C", "D"}, 320), ErrLabelMismatch)
	require.Equal(t, count, layer.Len())
	require.Empty(t, layer.Texts())
}

func TestRowValue(t *testing.T) {
	tests := []struct {
		Index int
		Count int
		Max   float64
		Want  float64
	}{
		{Index: 1, Count: 8, Max: 7000, Want: 7000},
		{Index: 8, Count: 8, Max: 7000, Want: 0},
		{Index: 2, Count: 3, Max: 5, Want: 3},
		{Index: 2, Count: 2, Max: 2.5, Want: 0.5},
	}
	for _, tt := range tests {
		got := rowValue(tt.Index, tt.Count, 0, tt.Max)
		require.Equal(t, tt.Want, got)
	}
}

func TestCaptionColumnsMismatchLogsOnce(t *testing.T) {
	var (
		buf   bytes.Buffer
		frame = NewFrame(400, 400)
		layer = NewLayer(frame.Width, frame.Height)
	)
	g, err := New(layer, frame, WithLogger(zerolog.New(&buf)))
	require.NoError(t, err)
	require.NoError(t, g.CreateColumns(3, 0, 0))
	buf.Reset()

	require.ErrorIs(t, g.CaptionColumns([]string{"a"}, 10), ErrLabelMismatch)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "warn", entry["level"])
	require.Equal(t, "caption columns", entry["op"])
	require.Equal(t, 3.0, entry["want"])
	require.Equal(t, 1.0, entry["got"])
}
