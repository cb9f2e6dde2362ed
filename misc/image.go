package misc

import (
	"image/color"
	"math"
)

// HSVToRGB converts a hue in degrees and saturation/value in [0, 1] to an opaque color.
// Channels are truncated, not rounded.
func HSVToRGB(hue float64, saturation float64, value float64) color.RGBA {
	hue = math.Mod(hue, 360)
	sector := int(hue/60) % 6
	fraction := hue/60 - math.Floor(hue/60)

	value = clamp(value, 0, 1)
	saturation = clamp(saturation, 0, 1)

	v := value * 255
	p := v * (1 - saturation)
	q := v * (1 - fraction*saturation)
	t := v * (1 - (1-fraction)*saturation)

	switch sector {
	case 0:
		return color.RGBA{R: uint8(v), G: uint8(t), B: uint8(p), A: 255}
	case 1:
		return color.RGBA{R: uint8(q), G: uint8(v), B: uint8(p), A: 255}
	case 2:
		return color.RGBA{R: uint8(p), G: uint8(v), B: uint8(t), A: 255}
	case 3:
		return color.RGBA{R: uint8(p), G: uint8(q), B: uint8(v), A: 255}
	case 4:
		return color.RGBA{R: uint8(t), G: uint8(p), B: uint8(v), A: 255}
	default:
		return color.RGBA{R: uint8(v), G: uint8(p), B: uint8(q), A: 255}
	}
}

func clamp(v float64, low float64, high float64) float64 {
	return math.Max(low, math.Min(high, v))
}
