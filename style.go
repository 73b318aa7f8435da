package barchart

// Style groups the sizes used by a Graph when it draws gridlines, column
// markers and captions.
type Style struct {
	Line struct {
		Width         float64
		IntervalWidth float64
		MarkerWidth   float64
	}
	Text struct {
		Size        float64
		CaptionSize float64
		Rotate      float64
	}
	Fill struct {
		List Palette
	}
}

func DefaultStyle() Style {
	var s Style
	s.Line.Width = DefaultLineWidth
	s.Line.IntervalWidth = 0.25
	s.Line.MarkerWidth = 5
	s.Text.Size = DefaultFontSize
	s.Text.CaptionSize = 20
	s.Text.Rotate = 45
	s.Fill.List = Category10
	return s
}
