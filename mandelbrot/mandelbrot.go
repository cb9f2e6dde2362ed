package mandelbrot

import (
	"image/color"
	"math"

	"golang.org/x/image/colornames"

	"mandelbrot/task"
)

// boundary is the squared escape radius.
const boundary = 4.0

// EscapeColor is used for points that never escape within MaxIterations.
var EscapeColor = colornames.Black

// Mandelbrot evaluates single pixels of one frame. It holds no mutable state and is safe
// to share between goroutines.
type Mandelbrot struct {
	mathLog2 float64
	palette  *Palette
	settings Settings
}

func NewMandelbrot(settings Settings) Mandelbrot {
	mandelbrot := Mandelbrot{
		mathLog2: math.Log(2),
		palette:  &palette,
		settings: settings,
	}

	return mandelbrot
}

func (m *Mandelbrot) Settings() Settings {
	return m.settings
}

// EscapeTime runs the escape-time loop for the pixel at (column, row).
func (m *Mandelbrot) EscapeTime(column int, row int) task.Orbit {
	a, b := m.settings.Viewport.ToComplex(float64(column), float64(row), m.settings.Width, m.settings.Height)
	zx, zy, iteration := m.Iterate(a, b)
	return task.Orbit{
		Coordinate: task.Coordinate{Column: column, Row: row},
		Iterations: iteration,
		Zx:         zx,
		Zy:         zy,
	}
}

// Iterate applies z = z^2 + c starting from z = c = (a, b) until |z|^2 exceeds the boundary
// or MaxIterations is reached. It returns the final z and the iteration count.
func (m *Mandelbrot) Iterate(a float64, b float64) (float64, float64, int) {
	zx, zy := a, b
	iteration := 0
	for zx*zx+zy*zy <= boundary && iteration < m.settings.MaxIterations {
		xtemp := zx*zx - zy*zy + a
		zy = 2*zx*zy + b
		zx = xtemp
		iteration++
	}
	return zx, zy, iteration
}

// SmoothIteration is the normalized iteration count of an escaped orbit.
// https://en.wikipedia.org/wiki/Plotting_algorithms_for_the_Mandelbrot_set#Continuous_(smooth)_coloring
func (m *Mandelbrot) SmoothIteration(orbit task.Orbit) float64 {
	zn := math.Log(orbit.Zx*orbit.Zx+orbit.Zy*orbit.Zy) / 2
	nu := math.Log(zn/m.mathLog2) / m.mathLog2
	return float64(orbit.Iterations) + 1 - nu
}

// GetColor colors an orbit: EscapeColor inside the set, a palette entry otherwise.
func (m *Mandelbrot) GetColor(orbit task.Orbit) color.RGBA {
	if orbit.Iterations >= m.settings.MaxIterations {
		return EscapeColor
	}
	return m.palette[PaletteIndex(m.SmoothIteration(orbit))]
}

// PixelColor is the full per-pixel evaluation shared by every render strategy.
func (m *Mandelbrot) PixelColor(column int, row int) color.RGBA {
	return m.GetColor(m.EscapeTime(column, row))
}

// Pixel is PixelColor packaged with its coordinate.
func (m *Mandelbrot) Pixel(orbit task.Orbit) task.Pixel {
	return task.Pixel{
		Color:  m.GetColor(orbit),
		Column: orbit.Column,
		Row:    orbit.Row,
	}
}
