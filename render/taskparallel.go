package render

import (
	"golang.org/x/sync/errgroup"

	"mandelbrot/frame"
	"mandelbrot/mandelbrot"
)

// TaskParallel submits one task per row and lets the Go scheduler decide how many run at
// once. It produces the same frame as DataParallel.
type TaskParallel struct{}

func (TaskParallel) Populate(m *mandelbrot.Mandelbrot, fb *frame.Buffer, cancel *Signal, listener Listener) Outcome {
	if fb == nil {
		return Completed
	}
	cancel, listener = prepare(cancel, listener)
	progress := newProgress(listener, fb.Height)

	var group errgroup.Group
	for row := 0; row < fb.Height; row++ {
		if cancel.Cancelled() {
			break
		}
		row := row
		group.Go(func() error {
			if !fillRow(m, fb, row, cancel) {
				return nil
			}
			listener.OnPartialFrame(rowPartial(row, fb.Width))
			progress.Add(1)
			return nil
		})
	}
	// Row tasks never fail, cancellation is read back from the progress count.
	_ = group.Wait()

	return outcome(progress)
}

var _ Strategy = TaskParallel{}
