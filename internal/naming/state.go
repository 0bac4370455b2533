package naming

import (
	"fmt"
	"time"

	"niclean/internal/media"
)

// CollisionPolicy derives an alternative stem when a computed name is
// already taken. attempt starts at 1 and increases until the result is
// free.
type CollisionPolicy func(stem string, attempt int) string

// Option configures a State.
type Option func(*State)

// WithCollisionPolicy overrides the default "_1", "_2", ... suffixing.
func WithCollisionPolicy(policy CollisionPolicy) Option {
	return func(s *State) {
		if policy != nil {
			s.collide = policy
		}
	}
}

// WithClock overrides the fallback clock (used in tests).
func WithClock(now func() time.Time) Option {
	return func(s *State) {
		if now != nil {
			s.now = now
		}
	}
}

// State holds the naming counters and the set of names assigned so far
// in one batch. It is owned by a single goroutine.
type State struct {
	preset   Preset
	imageSeq int
	videoSeq int
	assigned map[string]struct{}
	collide  CollisionPolicy
	now      func() time.Time
}

// NewState builds a fresh naming state for one batch run.
func NewState(preset Preset, opts ...Option) *State {
	s := &State{
		preset:   preset,
		assigned: make(map[string]struct{}),
		collide:  defaultCollisionPolicy,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func defaultCollisionPolicy(stem string, attempt int) string {
	return fmt.Sprintf("%s_%d", stem, attempt)
}

// Assign computes the unique destination name for file and records it.
// Counters advance once per call, only for the file's own kind; callers
// filter unsupported files out before assignment. The returned name is
// always syntactically valid and unused within the batch.
func (s *State) Assign(file media.File) string {
	prefix := prefixFor(file.Kind)
	ext := s.preset.Extension(file.Kind)

	var stem string
	if s.preset == PresetAndroid {
		stem = fmt.Sprintf("%s_%s", prefix, s.captureStamp(file))
	} else {
		seq := s.nextSequence(file.Kind)
		// %04d widens past 9999 instead of wrapping.
		stem = fmt.Sprintf("%s_%04d", prefix, seq)
	}

	name := stem + ext
	for attempt := 1; ; attempt++ {
		if _, taken := s.assigned[name]; !taken {
			break
		}
		name = s.collide(stem, attempt) + ext
	}
	s.assigned[name] = struct{}{}
	return name
}

// Assigned reports whether name was handed out earlier in this batch.
func (s *State) Assigned(name string) bool {
	_, ok := s.assigned[name]
	return ok
}

// Reserve marks name as taken without advancing any counter. Callers
// seed it with the names already present in the output folder so a
// re-run never overwrites an earlier copy.
func (s *State) Reserve(name string) {
	s.assigned[name] = struct{}{}
}

func (s *State) nextSequence(kind media.Kind) int {
	if kind == media.KindVideo {
		s.videoSeq++
		return s.videoSeq
	}
	s.imageSeq++
	return s.imageSeq
}

func (s *State) captureStamp(file media.File) string {
	ts := file.Capture
	if ts.IsZero() {
		ts = file.ModTime
	}
	if ts.IsZero() {
		ts = s.now()
	}
	return ts.Format("20060102_150405")
}
