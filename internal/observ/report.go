// Package observ summarizes how long each build stage took.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase is one measured stage.
type Phase struct {
	Name string
	Dur  time.Duration
	Note string
}

// Report collects phases in the order they were added.
type Report struct {
	phases []Phase
}

// NewReport creates an empty Report.
func NewReport() *Report { return &Report{phases: make([]Phase, 0, 4)} }

// Add appends a phase.
func (r *Report) Add(name string, dur time.Duration, note string) {
	r.phases = append(r.phases, Phase{Name: name, Dur: dur, Note: note})
}

// Phases returns a copy of the recorded phases.
func (r *Report) Phases() []Phase {
	return append([]Phase(nil), r.phases...)
}

// Total returns the sum of all phase durations.
func (r *Report) Total() time.Duration {
	var total time.Duration
	for _, p := range r.phases {
		total += p.Dur
	}
	return total
}

// Summary renders one line per phase followed by the total.
func (r *Report) Summary() string {
	if len(r.phases) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range r.phases {
		fmt.Fprintf(&sb, "  %-12s %9.2f ms", p.Name, toMillis(p.Dur))
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "  %-12s %9.2f ms\n", "total", toMillis(r.Total()))
	return sb.String()
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
