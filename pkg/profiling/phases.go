// Package profiling records how long the phases of a command take and
// manages the pprof flags shared by every command.
package profiling

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

type phase struct {
	name  string
	depth int
	start time.Time
	took  time.Duration
	done  bool
}

// Recorder collects nested phase timings. The zero value is disabled and
// records nothing.
type Recorder struct {
	mu      sync.Mutex
	enabled bool
	start   time.Time
	depth   int
	phases  []*phase
}

// Default is the recorder used by Phase and the --timing flag.
var Default = &Recorder{}

// Enable starts recording. Calling it again is a no-op.
func (r *Recorder) Enable() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.enabled {
		return
	}
	r.enabled = true
	r.start = time.Now()
}

// Enabled reports whether phases are being recorded.
func (r *Recorder) Enabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled
}

// Begin opens a phase nested under any phase still open and returns the
// function that closes it.
func (r *Recorder) Begin(name string) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.enabled {
		return func() {}
	}

	p := &phase{name: name, depth: r.depth, start: time.Now()}
	r.phases = append(r.phases, p)
	r.depth++

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			p.took = time.Since(p.start)
			p.done = true
			r.depth--
		})
	}
}

// Report writes every phase in start order with its share of the total.
func (r *Recorder) Report(w io.Writer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.enabled || len(r.phases) == 0 {
		return
	}

	total := time.Since(r.start)
	fmt.Fprintln(w, "timing:")
	for _, p := range r.phases {
		took := p.took
		if !p.done {
			took = time.Since(p.start)
		}
		share := 0.0
		if total > 0 {
			share = float64(took) / float64(total) * 100
		}
		fmt.Fprintf(w, "%s- %s %v (%.1f%%)\n",
			strings.Repeat("  ", p.depth+1), p.name, took.Round(100*time.Microsecond), share)
	}
}

// Reset drops all phases and disables recording.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = false
	r.depth = 0
	r.phases = nil
}

// Phase opens a phase on the default recorder.
//
//	defer profiling.Phase("parse")()
func Phase(name string) func() {
	return Default.Begin(name)
}
