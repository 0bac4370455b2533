package batch

import (
	"errors"
	"fmt"
)

// ErrSetup marks fatal pre-processing failures: invalid input folder,
// unwritable output, or a lock held by another run. Per-file problems
// never carry this marker; they land in the report instead.
var ErrSetup = errors.New("setup error")

func setupErr(operation string, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSetup, operation, err)
	}
	return fmt.Errorf("%w: %s", ErrSetup, operation)
}
