package render

import (
	"mandelbrot/frame"
	"mandelbrot/mandelbrot"
)

// Sequential renders row by row on the calling goroutine. It is the reference the other
// strategies are checked against.
type Sequential struct{}

func (Sequential) Populate(m *mandelbrot.Mandelbrot, fb *frame.Buffer, cancel *Signal, listener Listener) Outcome {
	if fb == nil {
		return Completed
	}
	cancel, listener = prepare(cancel, listener)
	progress := newProgress(listener, fb.Height)

	for row := 0; row < fb.Height; row++ {
		if !fillRow(m, fb, row, cancel) {
			return Cancelled
		}
		listener.OnPartialFrame(rowPartial(row, fb.Width))
		progress.Add(1)
	}
	return Completed
}

var _ Strategy = Sequential{}
