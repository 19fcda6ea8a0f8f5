// Package observ implements component "internal tracing" from SPEC_FULL's
// ambient logging section: a small phase timer the driver uses to report
// query/pass timing under -vv/-vvv, without pulling in a structured
// logging framework the teacher itself does not use.
package observ

import (
	"fmt"
	"time"
)

// Phase records the duration and metadata of one pipeline phase.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks the execution time of multiple pipeline phases in order.
type Timer struct {
	phases []Phase
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 16)} }

// Begin starts a new phase and returns a handle for End.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes the phase started by Begin, recording an optional note (e.g.
// a stage name for a failed transform pass).
func (t *Timer) End(handle int, note string) {
	if handle < 0 || handle >= len(t.phases) {
		return
	}

	p := &t.phases[handle]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// Track runs fn, timing it as a named phase, and returns fn's error.
func (t *Timer) Track(name string, fn func() error) error {
	h := t.Begin(name)
	err := fn()

	note := ""
	if err != nil {
		note = err.Error()
	}

	t.End(h, note)

	return err
}

// PhaseReport is the JSON/text-serialisable summary of one tracked phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report is the aggregated summary of every phase a Timer tracked.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report renders the timer's phases and their total into a Report value.
func (t *Timer) Report() Report {
	if len(t.phases) == 0 {
		return Report{}
	}

	report := Report{Phases: make([]PhaseReport, len(t.phases))}

	var total time.Duration

	for i, p := range t.phases {
		total += p.Dur
		report.Phases[i] = PhaseReport{Name: p.Name, DurationMS: durationToMillis(p.Dur), Note: p.Note}
	}

	report.TotalMS = durationToMillis(total)

	return report
}

// Summary renders a human-readable multi-line timing report, used by the
// `-vv` CLI verbosity level (§6.3); `-vvv` prints Report as JSON instead.
func (t *Timer) Summary() string {
	report := t.Report()

	out := "timings:\n"
	for _, p := range report.Phases {
		out += fmt.Sprintf("  %-24s %8.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			out += "  // " + p.Note
		}

		out += "\n"
	}

	out += fmt.Sprintf("  %-24s %8.2f ms\n", "total", report.TotalMS)

	return out
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
