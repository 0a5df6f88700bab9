package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Timer records wall-clock time per pipeline phase in start order.
// A nil *Timer accepts every call and records nothing.
type Timer struct {
	mu     sync.Mutex
	phases []phase
}

type phase struct {
	name     string
	note     string
	started  time.Time
	took     time.Duration
	finished bool
}

func NewTimer() *Timer { return &Timer{} }

// Begin opens a phase and returns a handle for End.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, phase{name: name, started: time.Now()})
	return len(t.phases) - 1
}

// End closes the phase behind idx. Unknown handles are ignored.
func (t *Timer) End(idx int, note string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.phases) || t.phases[idx].finished {
		return
	}
	p := &t.phases[idx]
	p.took = time.Since(p.started)
	p.note = note
	p.finished = true
}

// Track opens a phase and returns its closer.
func (t *Timer) Track(name string) func(note string) {
	idx := t.Begin(name)
	return func(note string) { t.End(idx, note) }
}

// PhaseReport is one finished or open phase as it is serialized.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report is the JSON shape of a timer; TotalMS sums the phases.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	var r Report
	if t == nil {
		return r
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	var total time.Duration
	for _, p := range t.phases {
		total += p.took
		r.Phases = append(r.Phases, PhaseReport{Name: p.name, DurationMS: ms(p.took), Note: p.note})
	}
	r.TotalMS = ms(total)
	return r
}

// Summary renders the report as an aligned table for stderr.
func (t *Timer) Summary() string {
	r := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range r.Phases {
		line := fmt.Sprintf("  %-12s %9.3f ms %5.1f%%", p.Name, p.DurationMS, share(p.DurationMS, r.TotalMS))
		if p.Note != "" {
			line += "  // " + p.Note
		}
		sb.WriteString(line + "\n")
	}
	fmt.Fprintf(&sb, "  %-12s %9.3f ms\n", "total", r.TotalMS)
	return sb.String()
}

func share(part, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return 100 * part / total
}

func ms(d time.Duration) float64 { return d.Seconds() * 1e3 }
