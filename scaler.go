package barchart

import (
	"math"
)

// Scale maps values to pixel heights once rows have been captioned. Unit is
// the distance between the top of the frame and the first row.
type Scale struct {
	Max    float64
	Unit   float64
	Symbol string
}

// Height gives the height of a bar of value v in a frame of the given
// span. A bar of Max reaches the first row.
func (s Scale) Height(span, v float64) float64 {
	return (span - s.Unit) / s.Max * v
}

func (s Scale) Label(v float64) string {
	return s.Symbol + formatFloat(v)
}

// rowValue gives the caption of the i-th row (starting at 1) of a scale
// going from max down to min over count rows.
func rowValue(i, count int, min, max float64) float64 {
	var (
		step  = max / float64(count-1)
		remap = func(v float64) float64 {
			return ((v-0)*(max-min))/(max-0) + min
		}
	)
	return max - math.Floor(remap(float64(i-1)*step))
}
