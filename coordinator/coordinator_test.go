package coordinator

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"mandelbrot/frame"
	"mandelbrot/mandelbrot"
	"mandelbrot/render"
)

// recorder counts the notifications of one render.
type recorder struct {
	cancelled atomic.Int32
	completed atomic.Int32
	partials  atomic.Int32
	progress  atomic.Int32
}

func (r *recorder) listener() render.Listener {
	return render.ListenerFuncs{
		PartialFrame: func(render.Partial) { r.partials.Add(1) },
		Progress:     func(int, int) { r.progress.Add(1) },
		Complete:     func(time.Duration) { r.completed.Add(1) },
		Cancelled:    func() { r.cancelled.Add(1) },
	}
}

func (r *recorder) total() int32 {
	return r.cancelled.Load() + r.completed.Load() + r.partials.Load() + r.progress.Load()
}

func newTestCoordinator(t *testing.T) *Coordinator {
	t.Helper()
	c := NewCoordinator(Settings{HeartBeatSeconds: -1})
	t.Cleanup(c.Close)
	return c
}

func smallRequest(kind render.Kind) Request {
	return Request{
		Height:        24,
		MaxIterations: 200,
		Strategy:      kind,
		Viewport:      mandelbrot.DefaultViewport,
		Width:         32,
	}
}

// slowRequest covers a region inside the set, so it only ends by being cancelled.
func slowRequest(kind render.Kind) Request {
	return Request{
		Height:        400,
		MaxIterations: mandelbrot.MaxIterations,
		Strategy:      kind,
		Viewport:      mandelbrot.Viewport{Xmin: -0.1, Xmax: 0.1, Ymin: -0.1, Ymax: 0.1},
		Width:         400,
	}
}

func waitFor(t *testing.T, job *Job) State {
	t.Helper()
	select {
	case <-job.Done():
		return job.State()
	case <-time.After(30 * time.Second):
		t.Fatalf("job %d did not settle", job.ID)
		return Running
	}
}

func TestStartRender_Completes(t *testing.T) {
	for _, kind := range render.Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			c := newTestCoordinator(t)
			var r recorder
			request := smallRequest(kind)

			job, err := c.StartRender(request, r.listener())
			if err != nil {
				t.Fatalf("StartRender() error = %v", err)
			}
			if got := waitFor(t, job); got != Completed {
				t.Fatalf("state = %s, want Completed", got)
			}
			if r.completed.Load() != 1 || r.cancelled.Load() != 0 {
				t.Errorf("OnComplete %d times, OnCancelled %d times", r.completed.Load(), r.cancelled.Load())
			}
			if done, total := job.Progress(); done != total || total == 0 {
				t.Errorf("Progress() = %d/%d, want complete", done, total)
			}
			if job.Elapsed() <= 0 {
				t.Errorf("Elapsed() = %s, want positive", job.Elapsed())
			}

			m := mandelbrot.NewMandelbrot(request.Settings())
			want := frame.New(request.Width, request.Height)
			render.Sequential{}.Populate(&m, want, nil, nil)
			if !job.Frame().Equal(want) {
				t.Error("job frame differs from a sequential render")
			}
		})
	}
}

func TestStartRender_DefaultsIterations(t *testing.T) {
	c := newTestCoordinator(t)
	request := smallRequest(render.SequentialKind)
	request.MaxIterations = 0
	request.Viewport = mandelbrot.Viewport{}

	job, err := c.StartRender(request, nil)
	if err != nil {
		t.Fatalf("StartRender() error = %v", err)
	}
	if got := waitFor(t, job); got != Completed {
		t.Fatalf("state = %s, want Completed", got)
	}
	if got := job.Frame().At(16, 12); got != mandelbrot.EscapeColor {
		t.Errorf("center pixel = %v, want %v", got, mandelbrot.EscapeColor)
	}
}

func TestStartRender_EmptyFrameSkipped(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative", -5, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCoordinator(t)
			var r recorder
			request := smallRequest(render.DataParallelKind)
			request.Width, request.Height = tt.width, tt.height

			job, err := c.StartRender(request, r.listener())
			if err != nil {
				t.Fatalf("StartRender() error = %v", err)
			}
			if got := job.Wait(); got != Skipped {
				t.Errorf("state = %s, want Skipped", got)
			}
			if job.Frame() != nil {
				t.Error("skipped job has a frame")
			}
			if r.total() != 0 {
				t.Errorf("skipped job sent %d notifications", r.total())
			}
		})
	}
}

func TestStartRender_Rejects(t *testing.T) {
	c := newTestCoordinator(t)

	request := smallRequest(render.Kind(9))
	if _, err := c.StartRender(request, nil); !errors.Is(err, render.ErrUnknownStrategy) {
		t.Errorf("unknown strategy error = %v, want ErrUnknownStrategy", err)
	}

	request = smallRequest(render.SequentialKind)
	request.Viewport = mandelbrot.Viewport{Xmin: 1, Xmax: -1, Ymin: -1, Ymax: 1}
	if _, err := c.StartRender(request, nil); !errors.Is(err, mandelbrot.ErrInvalidViewport) {
		t.Errorf("inverted viewport error = %v, want ErrInvalidViewport", err)
	}

	request = smallRequest(render.SequentialKind)
	request.MaxIterations = 3
	if _, err := c.StartRender(request, nil); !errors.Is(err, mandelbrot.ErrIterationsOutOfRange) {
		t.Errorf("iterations error = %v, want ErrIterationsOutOfRange", err)
	}
}

func TestStartRender_CancelsPrevious(t *testing.T) {
	for _, kind := range render.Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			c := newTestCoordinator(t)
			var first, second recorder

			slow, err := c.StartRender(slowRequest(kind), first.listener())
			if err != nil {
				t.Fatalf("StartRender(slow) error = %v", err)
			}
			fast, err := c.StartRender(smallRequest(kind), second.listener())
			if err != nil {
				t.Fatalf("StartRender(fast) error = %v", err)
			}

			// StartRender returns only once the previous job settled.
			select {
			case <-slow.Done():
			default:
				t.Fatal("previous job still running after StartRender returned")
			}
			if got := slow.State(); got != Cancelled {
				t.Errorf("previous job state = %s, want Cancelled", got)
			}
			if first.cancelled.Load() != 1 || first.completed.Load() != 0 {
				t.Errorf("previous job: OnCancelled %d times, OnComplete %d times",
					first.cancelled.Load(), first.completed.Load())
			}

			if got := waitFor(t, fast); got != Completed {
				t.Errorf("new job state = %s, want Completed", got)
			}
			if c.Current() != fast {
				t.Error("Current() is not the newest job")
			}
		})
	}
}

func TestCancel(t *testing.T) {
	c := newTestCoordinator(t)
	var r recorder

	job, err := c.StartRender(slowRequest(render.TaskParallelKind), r.listener())
	if err != nil {
		t.Fatalf("StartRender() error = %v", err)
	}
	c.Cancel(job)
	c.Cancel(job)
	job.Cancel()

	if got := waitFor(t, job); got != Cancelled {
		t.Fatalf("state = %s, want Cancelled", got)
	}
	if r.cancelled.Load() != 1 {
		t.Errorf("OnCancelled %d times, want 1", r.cancelled.Load())
	}
	if done, total := job.Progress(); done >= total && total != 0 {
		t.Errorf("Progress() = %d/%d after cancellation", done, total)
	}
}

func TestCancel_AfterCompletion(t *testing.T) {
	c := newTestCoordinator(t)
	var r recorder

	job, err := c.StartRender(smallRequest(render.StreamingPipelineKind), r.listener())
	if err != nil {
		t.Fatalf("StartRender() error = %v", err)
	}
	waitFor(t, job)

	c.Cancel(job)
	c.Cancel(nil)
	if got := job.State(); got != Completed {
		t.Errorf("state after a late Cancel = %s, want Completed", got)
	}
	if r.cancelled.Load() != 0 || r.completed.Load() != 1 {
		t.Errorf("OnCancelled %d times, OnComplete %d times", r.cancelled.Load(), r.completed.Load())
	}
}

func TestClose(t *testing.T) {
	c := NewCoordinator(Settings{HeartBeatSeconds: -1})
	job, err := c.StartRender(slowRequest(render.DataParallelKind), nil)
	if err != nil {
		t.Fatalf("StartRender() error = %v", err)
	}
	c.Close()
	select {
	case <-job.Done():
	default:
		t.Fatal("job still running after Close()")
	}
	c.Close()
}
