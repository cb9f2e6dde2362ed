package task

import (
	"fmt"
	"image"
)

// BatchSize is the number of colored pixels a Batch holds before it is flushed.
const BatchSize = 10000

type Batch struct {
	ID      uint
	Results []Pixel

	bounds image.Rectangle
}

func NewBatch(id uint, capacity int) Batch {
	if capacity <= 0 {
		capacity = BatchSize
	}
	return Batch{
		ID:      id,
		Results: make([]Pixel, 0, capacity),
	}
}

func (b *Batch) String() string {
	output := "{Batch "
	output += fmt.Sprintf("ID: %d ", b.ID)
	output += fmt.Sprintf("Result Count: %d ", len(b.Results))
	output += fmt.Sprintf("Bounds: %s}", b.bounds)
	return output
}

// AddResult appends a pixel and grows the batch bounds to cover it.
func (b *Batch) AddResult(pixel Pixel) {
	r := image.Rect(pixel.Column, pixel.Row, pixel.Column+1, pixel.Row+1)
	if len(b.Results) == 0 {
		b.bounds = r
	} else {
		b.bounds = b.bounds.Union(r)
	}
	b.Results = append(b.Results, pixel)
}

// Full reports whether the batch reached its capacity.
func (b *Batch) Full() bool {
	return len(b.Results) >= cap(b.Results)
}

func (b *Batch) Len() int {
	return len(b.Results)
}

// Bounds is the smallest rectangle containing every pixel in the batch.
func (b *Batch) Bounds() image.Rectangle {
	return b.bounds
}
