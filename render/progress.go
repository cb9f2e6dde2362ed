package render

import (
	"sync"
	"sync/atomic"
)

// progress counts finished units of work and forwards the count to a Listener.
// Increments are atomic so no update is lost, and forwarding goes through a high water mark
// so the listener never sees the count go backwards, even when two workers race to report.
type progress struct {
	done     atomic.Int64
	listener Listener
	mutex    sync.Mutex
	reported int64
	total    int
}

func newProgress(listener Listener, total int) *progress {
	return &progress{listener: listener, total: total}
}

// Add records n finished units and returns the new count.
func (p *progress) Add(n int) int {
	done := p.done.Add(int64(n))

	p.mutex.Lock()
	if done > p.reported {
		p.reported = done
		p.listener.OnProgress(int(done), p.total)
	}
	p.mutex.Unlock()

	return int(done)
}

func (p *progress) Done() int {
	return int(p.done.Load())
}
