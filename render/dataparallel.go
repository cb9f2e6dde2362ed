package render

import (
	"runtime"
	"sync"

	"mandelbrot/frame"
	"mandelbrot/mandelbrot"
)

// DataParallel hands rows to a fixed pool of workers, one per core. Each row is rendered
// by exactly one worker, so workers write disjoint parts of the frame.
type DataParallel struct {
	// Workers overrides the pool size. Zero or negative means GOMAXPROCS.
	Workers int
}

func (dp DataParallel) Populate(m *mandelbrot.Mandelbrot, fb *frame.Buffer, cancel *Signal, listener Listener) Outcome {
	if fb == nil {
		return Completed
	}
	cancel, listener = prepare(cancel, listener)
	progress := newProgress(listener, fb.Height)

	workers := dp.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > fb.Height {
		workers = fb.Height
	}

	rowsTodo := make(chan int, fb.Height)
	for row := 0; row < fb.Height; row++ {
		rowsTodo <- row
	}
	close(rowsTodo)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for row := range rowsTodo {
				if cancel.Cancelled() {
					return
				}
				if !fillRow(m, fb, row, cancel) {
					return
				}
				listener.OnPartialFrame(rowPartial(row, fb.Width))
				progress.Add(1)
			}
		}()
	}
	wg.Wait()

	return outcome(progress)
}

var _ Strategy = DataParallel{}
