package mandelbrot

import (
	"errors"
	"fmt"

	"mandelbrot/misc"
)

const (
	MinIterations     = 10
	MaxIterations     = 1000000
	DefaultIterations = 10000
)

var (
	ErrIterationsOutOfRange = errors.New("iterations out of range")
	ErrInvalidDimensions    = errors.New("invalid dimensions")
)

// Settings describes a single frame: what part of the plane, how many pixels and the
// iteration bound.
type Settings struct {
	Height        int
	MaxIterations int
	Viewport      Viewport
	Width         int
}

func (s *Settings) String() string {
	output := "{Settings "
	output += fmt.Sprintf("Height: %d ", s.Height)
	output += fmt.Sprintf("Max Iterations: %s ", misc.FormatCount(s.MaxIterations))
	output += fmt.Sprintf("Viewport: %s ", s.Viewport)
	output += fmt.Sprintf("Width: %d}", s.Width)
	return output
}

// Verify fills unset values with defaults and rejects values the engine cannot render.
// A zero width or height is accepted, rendering such a frame is a no-op.
func (s *Settings) Verify() error {
	if s.MaxIterations == 0 {
		s.MaxIterations = DefaultIterations
	}
	if s.Viewport.IsZero() {
		s.Viewport = DefaultViewport
	}
	if s.Width < 0 || s.Height < 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, s.Width, s.Height)
	}
	if err := ValidateIterations(s.MaxIterations); err != nil {
		return err
	}
	return s.Viewport.Verify()
}

// ValidateIterations checks an iteration bound entered by a user.
func ValidateIterations(iterations int) error {
	if iterations < MinIterations || iterations > MaxIterations {
		return fmt.Errorf("%w: %s, please enter a valid number between %s and %s",
			ErrIterationsOutOfRange,
			misc.FormatCount(iterations),
			misc.FormatCount(MinIterations),
			misc.FormatCount(MaxIterations))
	}
	return nil
}
