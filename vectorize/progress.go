package vectorize

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker reports embedding progress to a writer, typically
// os.Stderr. Reports are throttled to every reportInterval movies.
type ProgressTracker struct {
	writer         io.Writer
	total          int
	current        int
	reportInterval int
	lastReported   int
	startTime      time.Time
	started        bool
	mu             sync.Mutex
}

// NewProgressTracker creates a tracker for total movies, reporting every
// reportInterval of them.
func NewProgressTracker(writer io.Writer, total, reportInterval int) *ProgressTracker {
	return &ProgressTracker{
		writer:         writer,
		total:          total,
		reportInterval: reportInterval,
	}
}

// Start begins tracking progress.
func (p *ProgressTracker) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startTime = time.Now()
	p.started = true
	p.current = 0
	p.lastReported = 0
}

// Update sets the current progress, capped at the total, and reports if a
// report interval was crossed.
func (p *ProgressTracker) Update(current int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	if current > p.total {
		current = p.total
	}
	p.current = current

	if p.current-p.lastReported >= p.reportInterval {
		p.report()
		p.lastReported = p.current
	}
}

// Finish marks the run complete and prints final progress.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	p.current = p.total
	p.report()
	fmt.Fprintln(p.writer)
}

// Elapsed returns the time since Start.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return 0
	}
	return time.Since(p.startTime)
}

// report prints the current progress. Must be called with lock held.
func (p *ProgressTracker) report() {
	elapsed := time.Since(p.startTime)
	rate := float64(p.current) / elapsed.Seconds()

	percentage := 0.0
	if p.total > 0 {
		percentage = float64(p.current) / float64(p.total) * 100.0
	}

	fmt.Fprintf(p.writer, "\rEmbedding: %d/%d (%.1f%%) - %.1f movies/s",
		p.current, p.total, percentage, rate)
}
