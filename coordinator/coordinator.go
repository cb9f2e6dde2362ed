package coordinator

import (
	"fmt"
	"sync"
	"time"

	"github.com/BrugadaSyndrome/bslogger"

	"mandelbrot/frame"
	"mandelbrot/mandelbrot"
	"mandelbrot/misc"
	"mandelbrot/render"
)

// Coordinator runs one render at a time. Starting a render cancels the previous one and
// waits for all of its workers to return, so two renders never share a frame.
type Coordinator struct {
	current   *Job
	jobCount  uint
	logger    bslogger.Logger
	logMutex  sync.Mutex
	mutex     sync.Mutex
	settings  Settings
	heartBeat time.Duration
}

func NewCoordinator(settings Settings) *Coordinator {
	return &Coordinator{
		logger:    bslogger.NewLogger("Coordinator", bslogger.Normal, nil),
		settings:  settings,
		heartBeat: time.Duration(settings.HeartBeatSeconds) * time.Second,
	}
}

// StartRender begins rendering request in the background and returns its job.
// A request with no pixels yields a Skipped job without a frame or notifications. Unset
// iterations and viewport fall back to their defaults.
// listener may be nil. Listener callbacks must not call back into the coordinator.
func (c *Coordinator) StartRender(request Request, listener render.Listener) (*Job, error) {
	strategy, err := render.New(request.Strategy)
	if err != nil {
		return nil, err
	}
	if listener == nil {
		listener = render.ListenerFuncs{}
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.settle(c.current)

	c.jobCount++
	job := newJob(c.jobCount, request)
	c.current = job

	if request.Width <= 0 || request.Height <= 0 {
		job.finish(Skipped, 0)
		c.debugf("Job %d skipped, nothing to render at %dx%d", job.ID, request.Width, request.Height)
		return job, nil
	}
	settings := request.Settings()
	if err := settings.Verify(); err != nil {
		job.finish(Skipped, 0)
		return nil, fmt.Errorf("job %d: %w", job.ID, err)
	}

	job.frame = frame.New(request.Width, request.Height)
	m := mandelbrot.NewMandelbrot(settings)

	c.infof("Job %d started: %s", job.ID, request)
	go c.run(job, strategy, &m, listener)
	if c.heartBeat > 0 {
		go c.tickers(job)
	}

	return job, nil
}

// Cancel requests cancellation of job. It is safe to call more than once and after the
// job finished.
func (c *Coordinator) Cancel(job *Job) {
	job.Cancel()
}

// Current is the most recently started job, or nil.
func (c *Coordinator) Current() *Job {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.current
}

// Close cancels the running job and waits for it to settle.
func (c *Coordinator) Close() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.settle(c.current)
}

// settle cancels job and blocks until every one of its workers has returned.
func (c *Coordinator) settle(job *Job) {
	if job == nil {
		return
	}
	select {
	case <-job.Done():
		return
	default:
	}
	job.Cancel()
	c.debugf("Waiting for job %d to settle", job.ID)
	job.Wait()
}

func (c *Coordinator) run(job *Job, strategy render.Strategy, m *mandelbrot.Mandelbrot, listener render.Listener) {
	startTime := time.Now()
	outcome := strategy.Populate(m, job.frame, job.cancel, tracker{job: job, listener: listener})
	elapsedTime := time.Since(startTime)

	switch outcome {
	case render.Completed:
		c.infof("Job %d completed in %s", job.ID, elapsedTime)
		listener.OnComplete(elapsedTime)
		job.finish(Completed, elapsedTime)
	default:
		done, total := job.Progress()
		c.infof("Job %d cancelled after %s [%s/%s]", job.ID, elapsedTime, misc.FormatCount(done), misc.FormatCount(total))
		listener.OnCancelled()
		job.finish(Cancelled, elapsedTime)
	}
}

// tickers logs the progress of job until it settles.
func (c *Coordinator) tickers(job *Job) {
	heartBeat := time.NewTicker(c.heartBeat)
	defer heartBeat.Stop()

	for {
		select {
		case <-heartBeat.C:
			done, total := job.Progress()
			c.infof("Job %d [%s] progress %s/%s (%s) after %s", job.ID, job.Request.Strategy,
				misc.FormatCount(done), misc.FormatCount(total), misc.FormatPercent(done, total), job.Elapsed().Round(time.Millisecond))
		case <-job.Done():
			return
		}
	}
}

// The logger is not safe for concurrent use and jobs log from their own goroutines.
func (c *Coordinator) infof(format string, values ...interface{}) {
	c.logMutex.Lock()
	defer c.logMutex.Unlock()
	c.logger.Infof(format, values...)
}

func (c *Coordinator) debugf(format string, values ...interface{}) {
	c.logMutex.Lock()
	defer c.logMutex.Unlock()
	c.logger.Debugf(format, values...)
}
