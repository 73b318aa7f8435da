package barchart

import (
	"bufio"
	"io"

	"github.com/midbel/svg"
)

// Container receives the primitives drawn by a Graph.
type Container interface {
	Append(Primitive)
	Empty()
	Len() int
}

// Layer keeps primitives in memory in the order they were drawn and renders
// them as a single svg document.
type Layer struct {
	Width  float64
	Height float64

	items []Primitive
}

func NewLayer(width, height float64) *Layer {
	return &Layer{
		Width:  width,
		Height: height,
	}
}

func (y *Layer) Append(p Primitive) {
	y.items = append(y.items, p)
}

func (y *Layer) Empty() {
	y.items = y.items[:0]
}

func (y *Layer) Len() int {
	return len(y.items)
}

func (y *Layer) Primitives() []Primitive {
	list := make([]Primitive, len(y.items))
	copy(list, y.items)
	return list
}

func (y *Layer) Lines() []Line {
	return collect[Line](y.items)
}

func (y *Layer) Texts() []Text {
	return collect[Text](y.items)
}

func (y *Layer) Rects() []Rect {
	return collect[Rect](y.items)
}

// Render writes the primitives of the layer to w as a standalone svg
// document.
func (y *Layer) Render(w io.Writer) error {
	el := svg.NewSVG(svg.WithDimension(y.Width, y.Height))
	for _, p := range y.items {
		el.Append(p.AsElement())
	}
	bw := bufio.NewWriter(w)
	el.Render(bw)
	return bw.Flush()
}

func collect[T Primitive](list []Primitive) []T {
	var all []T
	for _, p := range list {
		if x, ok := p.(T); ok {
			all = append(all, x)
		}
	}
	return all
}
