// Package meter implements a simple terminal progress meter for use
// while a survey is in progress.
package meter

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"
)

// Progress is a progress meter. It is driven by a phase name and an
// incrementing counter, and is safe to update from multiple
// goroutines concurrently.
type Progress interface {
	// Start begins a new phase of work, identified by `format`
	// (rendered once, at the left of the progress line).
	Start(format string)

	// Inc records that one more unit of work has been done in the
	// current phase.
	Inc()

	// Add records that `delta` more units of work have been done in
	// the current phase.
	Add(delta int64)

	// Done finishes the current phase, overwriting the progress line
	// with a final count followed by "done.".
	Done()
}

// Spinners are the characters cycled through to show liveness while a
// phase has no natural "percent done" to report.
var Spinners = `-\|/`

// progressMeter is a `Progress` that writes a single, periodically
// updated line to an `io.Writer` (typically `os.Stderr`).
type progressMeter struct {
	out    io.Writer
	period time.Duration

	phase string
	count int64

	tickerDone chan struct{}
}

// NewProgressMeter returns a `Progress` that writes updates to `out`
// about every `period`.
func NewProgressMeter(out io.Writer, period time.Duration) Progress {
	return &progressMeter{
		out:    out,
		period: period,
	}
}

func (p *progressMeter) Start(format string) {
	p.phase = format
	atomic.StoreInt64(&p.count, 0)
	p.tickerDone = make(chan struct{})

	ticker := time.NewTicker(p.period)
	go func() {
		spinnerIndex := 0
		for {
			select {
			case <-ticker.C:
				p.render(spinnerIndex)
				spinnerIndex = (spinnerIndex + 1) % len(Spinners)
			case <-p.tickerDone:
				ticker.Stop()
				return
			}
		}
	}()
}

func (p *progressMeter) render(spinnerIndex int) {
	count := atomic.LoadInt64(&p.count)
	fmt.Fprintf(p.out, "\r%s: %d %c", p.phase, count, Spinners[spinnerIndex])
}

func (p *progressMeter) Inc() {
	atomic.AddInt64(&p.count, 1)
}

func (p *progressMeter) Add(delta int64) {
	atomic.AddInt64(&p.count, delta)
}

func (p *progressMeter) Done() {
	if p.tickerDone != nil {
		close(p.tickerDone)
	}
	count := atomic.LoadInt64(&p.count)
	fmt.Fprintf(p.out, "\r%s: %d, done.\n", p.phase, count)
}

// noProgressMeter is a `Progress` that does nothing.
type noProgressMeter struct{}

func (noProgressMeter) Start(format string) {}
func (noProgressMeter) Inc()                {}
func (noProgressMeter) Add(delta int64)     {}
func (noProgressMeter) Done()               {}

// NoProgressMeter is a `Progress` that discards all updates, for use
// when progress reporting is disabled.
var NoProgressMeter Progress = noProgressMeter{}
