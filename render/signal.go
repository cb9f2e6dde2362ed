package render

import (
	"sync"
	"sync/atomic"
)

// Signal is a set-once cancellation flag shared by every worker of one render.
// Workers poll Cancelled; stages blocked on a channel select on Done.
// Once set it is never reset.
type Signal struct {
	cancelled atomic.Bool
	done      chan struct{}
	once      sync.Once
}

func NewSignal() *Signal {
	return &Signal{done: make(chan struct{})}
}

// Cancel sets the flag. It never blocks and may be called any number of times.
func (s *Signal) Cancel() {
	s.once.Do(func() {
		s.cancelled.Store(true)
		close(s.done)
	})
}

func (s *Signal) Cancelled() bool {
	return s.cancelled.Load()
}

// Done is closed once Cancel has been called.
func (s *Signal) Done() <-chan struct{} {
	return s.done
}
