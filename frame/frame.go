// Package frame holds the pixel buffer a render writes into.
package frame

import (
	"bytes"
	"image"
	"image/color"

	"mandelbrot/task"
)

// BytesPerPixel is the size of one pixel in the buffer, stored R, G, B, A.
const BytesPerPixel = 4

// Buffer is a row-major RGBA pixel buffer. It is not synchronized: concurrent writers must
// touch disjoint pixels, and only one render may own a Buffer at a time.
type Buffer struct {
	Height int
	Pix    []byte
	Stride int
	Width  int
}

// New allocates a zeroed buffer. It returns nil when either dimension is not positive.
func New(width int, height int) *Buffer {
	if width <= 0 || height <= 0 {
		return nil
	}
	stride := width * BytesPerPixel
	return &Buffer{
		Height: height,
		Pix:    make([]byte, height*stride),
		Stride: stride,
		Width:  width,
	}
}

// Offset is the index of the first byte of the pixel at (column, row).
func (b *Buffer) Offset(column int, row int) int {
	return row*b.Stride + column*BytesPerPixel
}

// Set writes one pixel. Out of range coordinates panic.
func (b *Buffer) Set(column int, row int, c color.RGBA) {
	if column < 0 || column >= b.Width || row < 0 || row >= b.Height {
		panic("frame: pixel out of range")
	}
	i := b.Offset(column, row)
	s := b.Pix[i : i+BytesPerPixel : i+BytesPerPixel]
	s[0] = c.R
	s[1] = c.G
	s[2] = c.B
	s[3] = c.A
}

func (b *Buffer) SetPixel(pixel task.Pixel) {
	b.Set(pixel.Column, pixel.Row, pixel.Color)
}

func (b *Buffer) At(column int, row int) color.RGBA {
	i := b.Offset(column, row)
	s := b.Pix[i : i+BytesPerPixel : i+BytesPerPixel]
	return color.RGBA{R: s[0], G: s[1], B: s[2], A: s[3]}
}

// Row returns the bytes of one row, sharing memory with the buffer.
func (b *Buffer) Row(row int) []byte {
	return b.Pix[row*b.Stride : (row+1)*b.Stride]
}

func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// Image views the buffer as an *image.RGBA without copying.
func (b *Buffer) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    b.Pix,
		Stride: b.Stride,
		Rect:   b.Bounds(),
	}
}

// Equal reports whether both buffers have the same size and identical bytes.
func (b *Buffer) Equal(other *Buffer) bool {
	if b == nil || other == nil {
		return b == other
	}
	if b.Width != other.Width || b.Height != other.Height {
		return false
	}
	return bytes.Equal(b.Pix, other.Pix)
}
