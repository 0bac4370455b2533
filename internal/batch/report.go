package batch

import (
	"time"

	"niclean/internal/sanitize"
)

// Report is the ordered record of one batch run. Results are appended as
// files are processed and never mutated afterwards.
type Report struct {
	Results []sanitize.Result

	Stripped     int
	SkippedStrip int
	Failed       int
	DryRun       int
	Unsupported  int

	// Canceled is set when the run stopped early on user request; the
	// results above are the partial record up to that point.
	Canceled bool

	Started  time.Time
	Finished time.Time
}

func (r *Report) add(result sanitize.Result) {
	r.Results = append(r.Results, result)
	switch result.Outcome {
	case sanitize.OutcomeCopiedStripped:
		r.Stripped++
	case sanitize.OutcomeCopiedSkippedStrip:
		r.SkippedStrip++
	case sanitize.OutcomeFailed:
		r.Failed++
	case sanitize.OutcomeSkippedDryRun:
		r.DryRun++
	case sanitize.OutcomeUnsupported:
		r.Unsupported++
	}
}

// Total returns the number of discovered files, unsupported included.
func (r *Report) Total() int {
	return len(r.Results)
}

// Processed returns the number of files that entered the pipeline.
func (r *Report) Processed() int {
	return len(r.Results) - r.Unsupported
}

// Duration reports the wall-clock batch time.
func (r *Report) Duration() time.Duration {
	if r.Started.IsZero() || r.Finished.IsZero() {
		return 0
	}
	return r.Finished.Sub(r.Started)
}
