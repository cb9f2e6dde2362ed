package render

import (
	"errors"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"mandelbrot/frame"
	"mandelbrot/mandelbrot"
	"mandelbrot/task"
)

var errCancelled = errors.New("render cancelled")

// StreamingPipeline decouples computing pixels from writing them. Coordinates flow through
// bounded channels:
//
//	source -> iterate -> colorize -> batch -> sink
//
// Only the sink touches the frame, one batch at a time. Each stage closes its output once
// its input is closed and drained, so the sink finishing means the whole pipeline finished.
type StreamingPipeline struct {
	// BatchSize is the number of pixels written per frame update. Zero means task.BatchSize.
	BatchSize int
	// Workers is the concurrency of the source and iterate stages. Zero means GOMAXPROCS.
	Workers int
}

func (sp StreamingPipeline) Populate(m *mandelbrot.Mandelbrot, fb *frame.Buffer, cancel *Signal, listener Listener) Outcome {
	if fb == nil {
		return Completed
	}
	cancel, listener = prepare(cancel, listener)
	progress := newProgress(listener, fb.Width*fb.Height)

	workers := sp.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	batchSize := sp.BatchSize
	if batchSize <= 0 {
		batchSize = task.BatchSize
	}

	// A few items per worker keeps every stage busy without letting the queues grow.
	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}
	coordinates := make(chan task.Coordinate, queueSize)
	orbits := make(chan task.Orbit, queueSize)
	pixels := make(chan task.Pixel, queueSize)
	batches := make(chan task.Batch, 1)

	var stages sync.WaitGroup
	stages.Add(4)
	go func() {
		defer stages.Done()
		defer close(coordinates)
		_ = sp.source(fb.Width, fb.Height, workers, coordinates, cancel)
	}()
	go func() {
		defer stages.Done()
		defer close(orbits)
		_ = sp.iterate(m, workers, coordinates, orbits, cancel)
	}()
	go func() {
		defer stages.Done()
		defer close(pixels)
		_ = sp.colorize(m, orbits, pixels, cancel)
	}()
	go func() {
		defer stages.Done()
		defer close(batches)
		_ = sp.batch(batchSize, pixels, batches, cancel)
	}()

	sp.sink(fb, batches, cancel, listener, progress)
	stages.Wait()

	return outcome(progress)
}

// source emits every coordinate of the frame. Rows are emitted concurrently, columns of a
// row in order.
func (sp StreamingPipeline) source(width int, height int, workers int, out chan<- task.Coordinate, cancel *Signal) error {
	var group errgroup.Group
	group.SetLimit(workers)
	for row := 0; row < height; row++ {
		if cancel.Cancelled() {
			break
		}
		row := row
		group.Go(func() error {
			for column := 0; column < width; column++ {
				if cancel.Cancelled() {
					return errCancelled
				}
				if !send(out, task.Coordinate{Column: column, Row: row}, cancel) {
					return errCancelled
				}
			}
			return nil
		})
	}
	return group.Wait()
}

// iterate runs the escape-time loop with a fixed number of workers.
func (sp StreamingPipeline) iterate(m *mandelbrot.Mandelbrot, workers int, in <-chan task.Coordinate, out chan<- task.Orbit, cancel *Signal) error {
	var group errgroup.Group
	for i := 0; i < workers; i++ {
		group.Go(func() error {
			for coordinate := range in {
				if cancel.Cancelled() {
					return errCancelled
				}
				if !send(out, m.EscapeTime(coordinate.Column, coordinate.Row), cancel) {
					return errCancelled
				}
			}
			return nil
		})
	}
	return group.Wait()
}

func (sp StreamingPipeline) colorize(m *mandelbrot.Mandelbrot, in <-chan task.Orbit, out chan<- task.Pixel, cancel *Signal) error {
	for orbit := range in {
		if cancel.Cancelled() {
			return errCancelled
		}
		if !send(out, m.Pixel(orbit), cancel) {
			return errCancelled
		}
	}
	return nil
}

// batch groups pixels into batches of size pixels. The last batch may be smaller.
func (sp StreamingPipeline) batch(size int, in <-chan task.Pixel, out chan<- task.Batch, cancel *Signal) error {
	var id uint
	current := task.NewBatch(id, size)
	for pixel := range in {
		if cancel.Cancelled() {
			return errCancelled
		}
		current.AddResult(pixel)
		if current.Full() {
			if !send(out, current, cancel) {
				return errCancelled
			}
			id++
			current = task.NewBatch(id, size)
		}
	}
	if current.Len() > 0 && !send(out, current, cancel) {
		return errCancelled
	}
	return nil
}

// sink is the only writer of the frame. It stops consuming once cancel is observed, which
// releases every upstream stage blocked on a send.
func (sp StreamingPipeline) sink(fb *frame.Buffer, in <-chan task.Batch, cancel *Signal, listener Listener, progress *progress) {
	for batch := range in {
		if cancel.Cancelled() {
			return
		}
		for _, pixel := range batch.Results {
			fb.SetPixel(pixel)
		}
		listener.OnPartialFrame(Partial{Bounds: batch.Bounds(), Pixels: batch.Len()})
		progress.Add(batch.Len())
	}
}

// send delivers v unless the render is cancelled first.
func send[T any](out chan<- T, v T, cancel *Signal) bool {
	select {
	case out <- v:
		return true
	case <-cancel.Done():
		return false
	}
}

var _ Strategy = StreamingPipeline{}
