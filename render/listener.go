package render

import (
	"image"
	"time"
)

// Partial describes the part of the frame that has just been written.
type Partial struct {
	Bounds image.Rectangle
	Pixels int
}

// Listener receives notifications while a render runs. OnPartialFrame and OnProgress may be
// called from several goroutines at once for the parallel strategies.
type Listener interface {
	OnPartialFrame(partial Partial)
	OnProgress(done int, total int)
	OnComplete(elapsed time.Duration)
	OnCancelled()
}

// ListenerFuncs adapts plain functions to a Listener. Nil functions are skipped.
type ListenerFuncs struct {
	PartialFrame func(partial Partial)
	Progress     func(done int, total int)
	Complete     func(elapsed time.Duration)
	Cancelled    func()
}

func (lf ListenerFuncs) OnPartialFrame(partial Partial) {
	if lf.PartialFrame != nil {
		lf.PartialFrame(partial)
	}
}

func (lf ListenerFuncs) OnProgress(done int, total int) {
	if lf.Progress != nil {
		lf.Progress(done, total)
	}
}

func (lf ListenerFuncs) OnComplete(elapsed time.Duration) {
	if lf.Complete != nil {
		lf.Complete(elapsed)
	}
}

func (lf ListenerFuncs) OnCancelled() {
	if lf.Cancelled != nil {
		lf.Cancelled()
	}
}

var _ Listener = ListenerFuncs{}

// rowPartial describes one fully written row of a frame.
func rowPartial(row int, width int) Partial {
	return Partial{
		Bounds: image.Rect(0, row, width, row+1),
		Pixels: width,
	}
}
