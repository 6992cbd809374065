// Package progress reports long-running command progress (grouping a
// dataset can take a while for large item counts). Grounded on the
// cheggaaa/pb/v3 usage in annbench.annbench_test2.go's index-population and
// prediction loops.
package progress

import "github.com/cheggaaa/pb/v3"

// Reporter is the sink BuildIndex and similar long-running operations push
// progress deltas into.
type Reporter interface {
	Add(delta int)
	Finish()
}

// Bar renders progress to a terminal via cheggaaa/pb/v3.
type Bar struct {
	bar *pb.ProgressBar
}

// NewBar starts a new bar sized for total units of work.
func NewBar(total int) *Bar {
	return &Bar{bar: pb.StartNew(total)}
}

// Add advances the bar by delta units.
func (b *Bar) Add(delta int) {
	b.bar.Add(delta)
}

// Finish marks the bar complete.
func (b *Bar) Finish() {
	b.bar.Finish()
}

// Noop discards every progress update; used by callers that don't want
// terminal output, such as tests or a non-interactive API caller.
type Noop struct{}

func (Noop) Add(delta int) {}
func (Noop) Finish()       {}
