package batch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"niclean/internal/capability"
	"niclean/internal/logging"
	"niclean/internal/media"
	"niclean/internal/naming"
	"niclean/internal/sanitize"
)

// lockFileName guards the output folder against concurrent runs, which
// would interleave counter-based names.
const lockFileName = ".niclean.lock"

// captureProbeTimeout bounds the embedded-metadata read used for
// Android-style naming.
const captureProbeTimeout = 30 * time.Second

type phase int

const (
	phaseIdle phase = iota
	phaseResolving
	phaseEnumerating
	phaseProcessing
	phaseDone
)

func (p phase) String() string {
	switch p {
	case phaseResolving:
		return "resolving"
	case phaseEnumerating:
		return "enumerating"
	case phaseProcessing:
		return "processing"
	case phaseDone:
		return "done"
	default:
		return "idle"
	}
}

// Params describes one batch run.
type Params struct {
	InputRoot  string
	OutputRoot string
	Preset     naming.Preset
	Recursive  bool
	DryRun     bool
	// KeepTimestamps carries source modification times onto the copies.
	KeepTimestamps bool
	// ToolTimeout bounds each external tool invocation. Zero keeps the
	// dispatcher default.
	ToolTimeout time.Duration
}

// Option configures the orchestrator.
type Option func(*Orchestrator)

// WithSanitizeOptions forwards extra options to the dispatcher
// (primarily for tests injecting a fake executor).
func WithSanitizeOptions(opts ...sanitize.Option) Option {
	return func(o *Orchestrator) {
		o.sanitizeOpts = append(o.sanitizeOpts, opts...)
	}
}

// WithNamingOptions forwards extra options to the naming state.
func WithNamingOptions(opts ...naming.Option) Option {
	return func(o *Orchestrator) {
		o.namingOpts = append(o.namingOpts, opts...)
	}
}

// Orchestrator sequences one batch: enumerate the input, then classify,
// name, and sanitize each file in order. Files are processed one at a
// time so the shared naming state has a single owner.
type Orchestrator struct {
	params       Params
	caps         capability.Set
	classifier   *media.Classifier
	logger       *slog.Logger
	phase        phase
	sanitizeOpts []sanitize.Option
	namingOpts   []naming.Option
}

// New validates the batch parameters and builds an orchestrator.
// Capabilities are resolved by the caller once per batch and passed in,
// so runs are independently testable.
func New(params Params, caps capability.Set, classifier *media.Classifier, logger *slog.Logger, opts ...Option) (*Orchestrator, error) {
	params.InputRoot = strings.TrimSpace(params.InputRoot)
	params.OutputRoot = strings.TrimSpace(params.OutputRoot)

	if params.InputRoot == "" {
		return nil, setupErr("input folder required", nil)
	}
	info, err := os.Stat(params.InputRoot)
	if err != nil {
		return nil, setupErr("input folder not found", err)
	}
	if !info.IsDir() {
		return nil, setupErr("input path is not a folder", nil)
	}
	if params.OutputRoot == "" {
		return nil, setupErr("output folder required", nil)
	}
	if samePath(params.InputRoot, params.OutputRoot) {
		return nil, setupErr("output folder must differ from the input folder", nil)
	}
	if classifier == nil {
		classifier = media.NewClassifier(media.DefaultImageExtensions(), media.DefaultVideoExtensions())
	}

	o := &Orchestrator{
		params:     params,
		caps:       caps,
		classifier: classifier,
		logger:     logging.WithComponent(logger, "batch"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Run executes the batch and always reaches the done phase: per-file
// failures are recorded and processing continues. Only setup problems
// return an error, in which case no report exists.
func (o *Orchestrator) Run(ctx context.Context) (*Report, error) {
	report := &Report{Started: time.Now()}

	o.transition(phaseResolving)
	if missing := o.caps.Missing(); len(missing) > 0 {
		o.logger.Warn("stripping tools missing; affected files will be copied unstripped",
			logging.String("missing", strings.Join(missing, ", ")),
		)
	}

	var dispatcher *sanitize.Dispatcher
	if !o.params.DryRun {
		if err := os.MkdirAll(o.params.OutputRoot, 0o755); err != nil {
			return nil, setupErr("create output folder", err)
		}
		lock := flock.New(filepath.Join(o.params.OutputRoot, lockFileName))
		locked, err := lock.TryLock()
		if err != nil {
			return nil, setupErr("lock output folder", err)
		}
		if !locked {
			return nil, setupErr("another run is writing to this output folder", nil)
		}
		defer func() {
			_ = lock.Unlock()
		}()

		opts := append([]sanitize.Option{sanitize.WithKeepTimestamps(o.params.KeepTimestamps)}, o.sanitizeOpts...)
		if o.params.ToolTimeout > 0 {
			opts = append(opts, sanitize.WithToolTimeout(o.params.ToolTimeout))
		}
		dispatcher, err = sanitize.NewDispatcher(o.caps, o.params.OutputRoot, o.logger, opts...)
		if err != nil {
			return nil, setupErr("build dispatcher", err)
		}
	}

	o.transition(phaseEnumerating)
	entries, err := enumerate(o.params.InputRoot, o.params.OutputRoot, o.params.Recursive)
	if err != nil {
		return nil, setupErr("enumerate input folder", err)
	}
	o.logger.Info("batch starting",
		logging.Int("files", len(entries)),
		logging.String("preset", o.params.Preset.String()),
		logging.Bool("dry_run", o.params.DryRun),
	)

	state := naming.NewState(o.params.Preset, o.namingOpts...)
	// Leftovers from an earlier run keep their names; colliding
	// assignments get suffixed instead of overwriting them.
	if existing, err := os.ReadDir(o.params.OutputRoot); err == nil {
		for _, ent := range existing {
			if ent.IsDir() || strings.HasPrefix(ent.Name(), ".") {
				continue
			}
			state.Reserve(ent.Name())
		}
	}

	o.transition(phaseProcessing)
	for _, ent := range entries {
		if ctx.Err() != nil {
			report.Canceled = true
			o.logger.Warn("batch canceled; report is partial")
			break
		}
		report.add(o.processOne(ctx, dispatcher, state, ent))
	}

	o.transition(phaseDone)
	report.Finished = time.Now()
	o.logger.Info("batch finished",
		logging.Int("total", report.Total()),
		logging.Int("processed", report.Processed()),
		logging.Int("stripped", report.Stripped),
		logging.Int("skipped_strip", report.SkippedStrip),
		logging.Int("failed", report.Failed),
		logging.Int("unsupported", report.Unsupported),
		logging.Duration("took", report.Duration()),
	)
	return report, nil
}

func (o *Orchestrator) processOne(ctx context.Context, dispatcher *sanitize.Dispatcher, state *naming.State, ent entry) sanitize.Result {
	kind := o.classifier.KindOf(ent.path)
	if kind == media.KindUnsupported {
		return sanitize.Result{Source: ent.path, Kind: kind, Outcome: sanitize.OutcomeUnsupported}
	}

	file, err := o.classifier.Classify(ent.path)
	if err != nil {
		// Classified by extension, so the file still consumes a naming
		// slot even though its bytes are unreachable.
		file = media.File{Path: ent.path, Kind: kind, ModTime: ent.modTime}
		name := state.Assign(file)
		return sanitize.Result{
			Source:      ent.path,
			Destination: name,
			Kind:        kind,
			Outcome:     sanitize.OutcomeFailed,
			Reason:      "unreadable source: " + err.Error(),
		}
	}

	o.attachCaptureTime(ctx, &file)
	name := state.Assign(file)

	if o.params.DryRun {
		o.logger.Info("dry-run decision",
			logging.String(logging.FieldSource, filepath.Base(file.Path)),
			logging.String(logging.FieldDestination, name),
		)
		return sanitize.Result{
			Source:      file.Path,
			Destination: name,
			Kind:        file.Kind,
			Outcome:     sanitize.OutcomeSkippedDryRun,
		}
	}
	return dispatcher.Sanitize(ctx, file, name)
}

// attachCaptureTime reads the embedded capture timestamp before any
// stripping happens. Only Android-style names consume it, and only the
// image tool can produce it; everything else keeps the mtime fallback.
func (o *Orchestrator) attachCaptureTime(ctx context.Context, file *media.File) {
	if o.params.Preset != naming.PresetAndroid {
		return
	}
	if file.Kind != media.KindImage || !o.caps.Image.Available {
		return
	}
	probeCtx, cancel := context.WithTimeout(ctx, captureProbeTimeout)
	defer cancel()

	ts, err := media.ProbeCaptureTime(probeCtx, o.caps.Image.Command, file.Path)
	if err != nil {
		o.logger.Debug("capture probe failed; falling back to mtime",
			logging.String(logging.FieldSource, file.Path),
			logging.Error(err),
		)
		return
	}
	file.Capture = ts
}

func (o *Orchestrator) transition(next phase) {
	if next == o.phase {
		return
	}
	o.logger.Debug("phase transition",
		logging.String("from", o.phase.String()),
		logging.String("to", next.String()),
	)
	o.phase = next
}
