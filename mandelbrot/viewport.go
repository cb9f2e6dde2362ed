package mandelbrot

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidViewport = errors.New("invalid viewport")

const (
	Left Direction = iota
	Right
	Up
	Down
)

type Direction int

func (d Direction) String() string {
	return []string{
		"Left", "Right", "Up", "Down",
	}[d]
}

// panFraction is how far one Pan moves, as a fraction of the viewport width.
const panFraction = 0.1

// Viewport is the rectangle of the complex plane mapped onto the frame.
// Transforms return a new Viewport, the receiver is never modified.
type Viewport struct {
	Xmin float64
	Xmax float64
	Ymin float64
	Ymax float64
}

var DefaultViewport = Viewport{
	Xmin: -2.5,
	Xmax: 1.5,
	Ymin: -2.0,
	Ymax: 2.0,
}

func (v Viewport) String() string {
	return fmt.Sprintf("{Viewport x: [%g, %g] y: [%g, %g]}", v.Xmin, v.Xmax, v.Ymin, v.Ymax)
}

func (v Viewport) Verify() error {
	for _, f := range []float64{v.Xmin, v.Xmax, v.Ymin, v.Ymax} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: %s has a non-finite bound", ErrInvalidViewport, v)
		}
	}
	if v.Xmin >= v.Xmax || v.Ymin >= v.Ymax {
		return fmt.Errorf("%w: %s must have min < max on both axes", ErrInvalidViewport, v)
	}
	return nil
}

// IsZero reports whether v is the zero value, used by settings to apply the default.
func (v Viewport) IsZero() bool {
	return v == Viewport{}
}

// ToComplex maps the pixel (px, py) of a width x height frame to a point of the plane.
// Callers must not pass a zero width or height.
func (v Viewport) ToComplex(px float64, py float64, width int, height int) (float64, float64) {
	a := v.Xmin + (v.Xmax-v.Xmin)*px/float64(width)
	b := v.Ymin + (v.Ymax-v.Ymin)*py/float64(height)
	return a, b
}

// Select zooms into the pixel rectangle spanned by (x0, y0) and (x1, y1) of a width x height
// frame. The corners may be given in any order. A selection without area leaves v unchanged.
func (v Viewport) Select(x0 float64, y0 float64, x1 float64, y1 float64, width int, height int) Viewport {
	if width <= 0 || height <= 0 {
		return v
	}
	left, right := math.Min(x0, x1), math.Max(x0, x1)
	top, bottom := math.Min(y0, y1), math.Max(y0, y1)

	xmin, ymin := v.ToComplex(left, top, width, height)
	xmax, ymax := v.ToComplex(right, bottom, width, height)
	selected := Viewport{Xmin: xmin, Xmax: xmax, Ymin: ymin, Ymax: ymax}
	if selected.Verify() != nil {
		return v
	}
	return selected
}

// Pan moves the viewport by a tenth of its width. Up decreases y, matching pixel rows.
func (v Viewport) Pan(direction Direction) Viewport {
	move := (v.Xmax - v.Xmin) * panFraction
	switch direction {
	case Left:
		v.Xmin -= move
		v.Xmax -= move
	case Right:
		v.Xmin += move
		v.Xmax += move
	case Up:
		v.Ymin -= move
		v.Ymax -= move
	case Down:
		v.Ymin += move
		v.Ymax += move
	}
	return v
}

func (v Viewport) Reset() Viewport {
	return DefaultViewport
}
