package sanitize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"niclean/internal/capability"
	"niclean/internal/fileutil"
	"niclean/internal/logging"
	"niclean/internal/media"
)

// ReasonUnavailable is recorded when the matching tool was never found.
const ReasonUnavailable = "tool unavailable"

// DefaultToolTimeout bounds one external tool invocation.
const DefaultToolTimeout = 120 * time.Second

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) (string, error)
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	output, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(output)), err
}

// Option configures the dispatcher.
type Option func(*Dispatcher)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(d *Dispatcher) {
		if exec != nil {
			d.exec = exec
		}
	}
}

// WithToolTimeout overrides the per-invocation timeout.
func WithToolTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.toolTimeout = timeout
		}
	}
}

// WithKeepTimestamps controls whether source timestamps are carried over
// to the sanitized copy.
func WithKeepTimestamps(keep bool) Option {
	return func(d *Dispatcher) {
		d.keepTimestamps = keep
	}
}

// Dispatcher owns the copy+strip step for one batch. All writes are
// confined to the output directory.
type Dispatcher struct {
	caps           capability.Set
	outputDir      string
	toolTimeout    time.Duration
	keepTimestamps bool
	logger         *slog.Logger
	exec           Executor
}

// NewDispatcher constructs a dispatcher over the resolved capabilities.
func NewDispatcher(caps capability.Set, outputDir string, logger *slog.Logger, opts ...Option) (*Dispatcher, error) {
	outputDir = strings.TrimSpace(outputDir)
	if outputDir == "" {
		return nil, errors.New("sanitize: output directory required")
	}
	d := &Dispatcher{
		caps:           caps,
		outputDir:      outputDir,
		toolTimeout:    DefaultToolTimeout,
		keepTimestamps: true,
		logger:         logging.WithComponent(logger, "sanitizer"),
		exec:           commandExecutor{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Sanitize copies file into the output folder under destName, stripping
// metadata when the matching capability is available. The source is
// never written to. Per-file problems land in the returned Result, not
// in an error.
func (d *Dispatcher) Sanitize(ctx context.Context, file media.File, destName string) Result {
	result := Result{Source: file.Path, Destination: destName, Kind: file.Kind}
	dest := filepath.Join(d.outputDir, destName)

	var err error
	switch file.Kind {
	case media.KindImage:
		err = d.sanitizeImage(ctx, file, dest, &result)
	case media.KindVideo:
		err = d.sanitizeVideo(ctx, file, dest, &result)
	default:
		result.Destination = ""
		result.Outcome = OutcomeUnsupported
		return result
	}

	if err != nil {
		result.Outcome = OutcomeFailed
		result.Reason = reasonFor(err)
		d.logger.Warn("file failed",
			logging.String(logging.FieldSource, file.Path),
			logging.String(logging.FieldDestination, destName),
			logging.Error(err),
		)
		return result
	}

	d.logger.Debug("file processed",
		logging.String(logging.FieldSource, file.Path),
		logging.String(logging.FieldDestination, destName),
		logging.String(logging.FieldKind, file.Kind.String()),
		logging.String(logging.FieldOutcome, result.Outcome.String()),
	)
	return result
}

func (d *Dispatcher) sanitizeImage(ctx context.Context, file media.File, dest string, result *Result) error {
	tool := d.caps.Image
	if !tool.Available {
		if err := d.copySource(file.Path, dest); err != nil {
			return err
		}
		d.finishCopy(file.Path, dest)
		result.Outcome = OutcomeCopiedSkippedStrip
		result.Reason = ReasonUnavailable
		return nil
	}

	tmp := d.tempPath(dest)
	if err := d.copySource(file.Path, tmp); err != nil {
		return err
	}

	// Erase-all instruction, in place on the copy. -P keeps the copy's
	// file times so timestamp preservation is not undone by the tool.
	toolErr := d.invoke(ctx, tool.Command, []string{"-all=", "-overwrite_original", "-P", tmp})
	if toolErr != nil {
		if isAborted(toolErr) {
			_ = os.Remove(tmp)
			return toolErr
		}
		result.Outcome = OutcomeCopiedSkippedStrip
		result.Reason = reasonFor(toolErr)
	} else {
		result.Outcome = OutcomeCopiedStripped
	}

	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return Wrap(ErrWriteFailed, "finalize image", "move sanitized copy into place", err)
	}
	d.finishCopy(file.Path, dest)
	return nil
}

func (d *Dispatcher) sanitizeVideo(ctx context.Context, file media.File, dest string, result *Result) error {
	tool := d.caps.Video
	if !tool.Available {
		if err := d.copySource(file.Path, dest); err != nil {
			return err
		}
		d.finishCopy(file.Path, dest)
		result.Outcome = OutcomeCopiedSkippedStrip
		result.Reason = ReasonUnavailable
		return nil
	}

	// Remux into a temp file next to the destination: copy all streams,
	// drop container metadata and chapters, no re-encode.
	tmp := d.tempPath(dest)
	toolErr := d.invoke(ctx, tool.Command, []string{
		"-hide_banner",
		"-loglevel", "error",
		"-y",
		"-i", file.Path,
		"-map_metadata", "-1",
		"-map_chapters", "-1",
		"-c", "copy",
		tmp,
	})
	if toolErr != nil {
		_ = os.Remove(tmp)
		if isAborted(toolErr) {
			return toolErr
		}
		// Degraded mode: the copy still happens, just unstripped.
		if err := d.copySource(file.Path, dest); err != nil {
			return err
		}
		d.finishCopy(file.Path, dest)
		result.Outcome = OutcomeCopiedSkippedStrip
		result.Reason = reasonFor(toolErr)
		return nil
	}

	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return Wrap(ErrWriteFailed, "finalize video", "move remuxed copy into place", err)
	}
	d.finishCopy(file.Path, dest)
	result.Outcome = OutcomeCopiedStripped
	return nil
}

// copySource streams src into the output tree, classifying failures as
// unreadable-source or write errors.
func (d *Dispatcher) copySource(src, dst string) error {
	if _, err := os.Stat(src); err != nil {
		return Wrap(ErrUnreadableSource, "open source", "", err)
	}
	if err := fileutil.CopyFileVerified(src, dst); err != nil {
		return Wrap(ErrWriteFailed, "copy into output folder", "", err)
	}
	return nil
}

func (d *Dispatcher) invoke(ctx context.Context, binary string, args []string) error {
	invokeCtx, cancel := context.WithTimeout(ctx, d.toolTimeout)
	defer cancel()

	output, err := d.exec.Run(invokeCtx, binary, args)
	if err == nil {
		return nil
	}
	if errors.Is(invokeCtx.Err(), context.DeadlineExceeded) {
		return Wrap(ErrTimeout, "invoke tool", binary, context.DeadlineExceeded)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if output != "" {
		return Wrap(ErrToolInvocation, "invoke tool", output, err)
	}
	return Wrap(ErrToolInvocation, "invoke tool", binary, err)
}

func (d *Dispatcher) finishCopy(src, dest string) {
	if d.keepTimestamps {
		if err := fileutil.PreserveTimestamps(src, dest); err != nil {
			d.logger.Warn("failed to preserve timestamps", logging.String(logging.FieldDestination, dest), logging.Error(err))
		}
	}
	if err := fileutil.ClearXattrs(dest); err != nil {
		d.logger.Warn("failed to clear extended attributes", logging.String(logging.FieldDestination, dest), logging.Error(err))
	}
}

// tempPath allocates a unique in-progress name inside the output folder,
// keeping the destination extension so container-sensitive tools infer
// the right format.
func (d *Dispatcher) tempPath(dest string) string {
	ext := filepath.Ext(dest)
	return filepath.Join(d.outputDir, fmt.Sprintf(".niclean-%s%s", uuid.NewString(), ext))
}

// isAborted reports whether err should fail the file outright instead of
// degrading to an unstripped copy.
func isAborted(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, context.Canceled)
}

func reasonFor(err error) string {
	switch {
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return err.Error()
	}
}
