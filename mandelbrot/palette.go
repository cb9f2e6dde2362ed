package mandelbrot

import (
	"image/color"
	"math"

	"mandelbrot/misc"
)

// PaletteSize is the number of colors the smoothed iteration count cycles through.
const PaletteSize = 256

type Palette [PaletteSize]color.RGBA

type huePaletteSettings struct {
	Saturation float64
	Value      float64
}

// GeneratePalette sweeps the hue circle in PaletteSize steps.
func (hps *huePaletteSettings) GeneratePalette() Palette {
	var palette Palette
	for j := 0; j < PaletteSize; j++ {
		hue := float64(j) * 360.0 / PaletteSize
		palette[j] = misc.HSVToRGB(hue, hps.Saturation, hps.Value)
	}
	return palette
}

// palette is built once and only ever read afterwards, so concurrent lookups need no locking.
var palette = (&huePaletteSettings{Saturation: 1, Value: 1}).GeneratePalette()

// DefaultPalette returns a copy of the process wide palette.
func DefaultPalette() Palette {
	return palette
}

// PaletteIndex reduces a smoothed iteration count to an index in [0, PaletteSize).
// The count is floored before wrapping so negative counts land at the top of the palette.
// Counts that are not finite map to 0.
func PaletteIndex(smooth float64) int {
	if math.IsNaN(smooth) || math.IsInf(smooth, 0) {
		return 0
	}
	index := math.Mod(math.Floor(smooth), PaletteSize)
	if index < 0 {
		index += PaletteSize
	}
	return int(index)
}
