// Package render fills a frame.Buffer with the Mandelbrot set using one of several
// interchangeable scheduling strategies. Every strategy evaluates pixels with the same
// mandelbrot.Mandelbrot, so all of them produce identical frames.
package render

import (
	"errors"
	"fmt"
	"strings"

	"mandelbrot/frame"
	"mandelbrot/mandelbrot"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

const (
	Completed Outcome = iota
	Cancelled
)

// Outcome is how a render ended. A cancelled render is not an error, the frame holds
// whatever was written before the workers noticed.
type Outcome int

func (o Outcome) String() string {
	return []string{
		"Completed", "Cancelled",
	}[o]
}

// Strategy populates a frame. Populate blocks until every pixel is written or until all of
// its workers observed cancel.
type Strategy interface {
	Populate(m *mandelbrot.Mandelbrot, fb *frame.Buffer, cancel *Signal, listener Listener) Outcome
}

const (
	SequentialKind Kind = iota
	DataParallelKind
	TaskParallelKind
	StreamingPipelineKind
)

type Kind int

var kindNames = []string{
	"Sequential", "DataParallel", "TaskParallel", "StreamingPipeline",
}

// kindAliases are the menu names the render methods used to go by.
var kindAliases = map[string]Kind{
	"normal":   SequentialKind,
	"parallel": DataParallelKind,
	"tpl":      TaskParallelKind,
	"tdf":      StreamingPipelineKind,
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds lists every strategy in declaration order.
func Kinds() []Kind {
	return []Kind{SequentialKind, DataParallelKind, TaskParallelKind, StreamingPipelineKind}
}

// ParseKind accepts a strategy name or one of its legacy aliases, ignoring case.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(n, name) {
			return Kind(i), nil
		}
	}
	if kind, ok := kindAliases[strings.ToLower(name)]; ok {
		return kind, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	kind, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// New returns the strategy for kind with default settings.
func New(kind Kind) (Strategy, error) {
	switch kind {
	case SequentialKind:
		return Sequential{}, nil
	case DataParallelKind:
		return DataParallel{}, nil
	case TaskParallelKind:
		return TaskParallel{}, nil
	case StreamingPipelineKind:
		return StreamingPipeline{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(kind))
	}
}

// prepare substitutes no-op collaborators so strategies never check for nil.
func prepare(cancel *Signal, listener Listener) (*Signal, Listener) {
	if cancel == nil {
		cancel = NewSignal()
	}
	if listener == nil {
		listener = ListenerFuncs{}
	}
	return cancel, listener
}

// fillRow writes one row of the frame. It polls cancel before every pixel and reports
// whether the row was finished.
func fillRow(m *mandelbrot.Mandelbrot, fb *frame.Buffer, row int, cancel *Signal) bool {
	for column := 0; column < fb.Width; column++ {
		if cancel.Cancelled() {
			return false
		}
		fb.Set(column, row, m.PixelColor(column, row))
	}
	return true
}

func outcome(p *progress) Outcome {
	if p.Done() >= p.total {
		return Completed
	}
	return Cancelled
}
