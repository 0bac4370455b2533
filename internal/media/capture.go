package media

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// captureTimeFormat is requested from the metadata tool so the reply
// parses without guessing at its locale-dependent defaults.
const captureTimeFormat = "2006-01-02T15:04:05"

// ProbeCaptureTime asks the image metadata tool for the embedded capture
// timestamp of path. The earliest of DateTimeOriginal/CreateDate wins.
// Callers fall back to the filesystem modification time on error.
func ProbeCaptureTime(ctx context.Context, binary string, path string) (time.Time, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return time.Time{}, errors.New("capture probe: no tool configured")
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return time.Time{}, errors.New("capture probe: empty path")
	}

	// No option terminator here: exiftool reads a leading double-dash as
	// a tag exclusion, not as end-of-options.
	cmd := exec.CommandContext(ctx, binary,
		"-s3",
		"-d", "%Y-%m-%dT%H:%M:%S",
		"-DateTimeOriginal",
		"-CreateDate",
		path,
	)
	output, err := cmd.Output()
	if err != nil {
		return time.Time{}, fmt.Errorf("capture probe: %w", err)
	}

	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line == "-" {
			continue
		}
		parsed, err := time.ParseInLocation(captureTimeFormat, line, time.Local)
		if err != nil {
			continue
		}
		return parsed, nil
	}
	return time.Time{}, errors.New("capture probe: no usable timestamp in output")
}
