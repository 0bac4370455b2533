package sanitize

import "niclean/internal/media"

// Outcome classifies what happened to one file.
type Outcome int

const (
	// OutcomeCopiedStripped means the copy exists and metadata was removed.
	OutcomeCopiedStripped Outcome = iota
	// OutcomeCopiedSkippedStrip means the copy exists but still carries
	// metadata; Reason explains why stripping was skipped.
	OutcomeCopiedSkippedStrip
	// OutcomeFailed means no usable copy was produced; Reason explains why.
	OutcomeFailed
	// OutcomeSkippedDryRun means naming ran but nothing was written.
	OutcomeSkippedDryRun
	// OutcomeUnsupported means the file was outside both allow-lists and
	// never entered naming or sanitization.
	OutcomeUnsupported
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCopiedStripped:
		return "copied+stripped"
	case OutcomeCopiedSkippedStrip:
		return "copied (strip skipped)"
	case OutcomeFailed:
		return "failed"
	case OutcomeSkippedDryRun:
		return "dry-run"
	case OutcomeUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// Result records the fate of one source file. Never mutated after creation.
type Result struct {
	Source string
	// Destination is the assigned output name. Empty for unsupported files.
	Destination string
	Kind        media.Kind
	Outcome     Outcome
	// Reason qualifies skipped or failed outcomes.
	Reason string
}
