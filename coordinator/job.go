package coordinator

import (
	"fmt"
	"sync/atomic"
	"time"

	"mandelbrot/frame"
	"mandelbrot/mandelbrot"
	"mandelbrot/render"
)

const (
	Running State = iota
	Completed
	Cancelled
	Skipped
)

type State int32

func (s State) String() string {
	return []string{
		"Running", "Completed", "Cancelled", "Skipped",
	}[s]
}

// Request is everything one render needs. A new Request is built for every render; a
// running job never sees its request change.
type Request struct {
	Height        int
	MaxIterations int
	Strategy      render.Kind
	Viewport      mandelbrot.Viewport
	Width         int
}

func (r Request) String() string {
	return fmt.Sprintf("{Request %dx%d Iterations: %d Strategy: %s Viewport: %s}",
		r.Width, r.Height, r.MaxIterations, r.Strategy, r.Viewport)
}

func (r Request) Settings() mandelbrot.Settings {
	return mandelbrot.Settings{
		Height:        r.Height,
		MaxIterations: r.MaxIterations,
		Viewport:      r.Viewport,
		Width:         r.Width,
	}
}

// Job is the handle of one render. It reaches exactly one terminal state.
type Job struct {
	ID      uint
	Request Request

	cancel   *render.Signal
	done     chan struct{}
	elapsed  atomic.Int64
	frame    *frame.Buffer
	progress atomic.Int64
	started  time.Time
	state    atomic.Int32
	total    atomic.Int64
}

func newJob(id uint, request Request) *Job {
	return &Job{
		ID:      id,
		Request: request,
		cancel:  render.NewSignal(),
		done:    make(chan struct{}),
		started: time.Now(),
	}
}

// Cancel asks the job's workers to stop. It does not wait for them and does nothing once
// the job has settled. A nil job is ignored.
func (j *Job) Cancel() {
	if j == nil {
		return
	}
	j.cancel.Cancel()
}

// Done is closed once the job reached its terminal state and every worker returned.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Wait blocks until the job settles and returns its terminal state.
func (j *Job) Wait() State {
	<-j.done
	return j.State()
}

func (j *Job) State() State {
	return State(j.state.Load())
}

// Elapsed is the render duration once settled, the time running so far otherwise.
func (j *Job) Elapsed() time.Duration {
	if j.State() == Running {
		return time.Since(j.started)
	}
	return time.Duration(j.elapsed.Load())
}

// Frame is the buffer the job writes into. It must only be read after Done is closed, or
// from a listener callback of the Sequential and StreamingPipeline strategies. Skipped jobs
// have no frame.
func (j *Job) Frame() *frame.Buffer {
	return j.frame
}

// Progress is the last reported count of finished work units and their total.
func (j *Job) Progress() (int, int) {
	return int(j.progress.Load()), int(j.total.Load())
}

func (j *Job) finish(state State, elapsed time.Duration) {
	j.elapsed.Store(int64(elapsed))
	j.state.Store(int32(state))
	close(j.done)
}

// tracker records progress on the job before passing notifications on.
type tracker struct {
	job      *Job
	listener render.Listener
}

func (t tracker) OnPartialFrame(partial render.Partial) {
	t.listener.OnPartialFrame(partial)
}

func (t tracker) OnProgress(done int, total int) {
	t.job.total.Store(int64(total))
	t.job.progress.Store(int64(done))
	t.listener.OnProgress(done, total)
}

func (t tracker) OnComplete(elapsed time.Duration) {
	t.listener.OnComplete(elapsed)
}

func (t tracker) OnCancelled() {
	t.listener.OnCancelled()
}
