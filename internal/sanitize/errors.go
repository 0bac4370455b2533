package sanitize

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnreadableSource marks a source file that could not be opened or read.
	ErrUnreadableSource = errors.New("unreadable source")
	// ErrToolInvocation marks an external tool that started but failed.
	ErrToolInvocation = errors.New("tool invocation failed")
	// ErrTimeout marks an external tool that exceeded its invocation budget.
	ErrTimeout = errors.New("tool timeout")
	// ErrWriteFailed marks a failed write inside the output folder.
	ErrWriteFailed = errors.New("write failed")
)

// Wrap tags err with one of the sentinel markers above and an
// operation/message context so outcomes classify cleanly later.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if marker == nil {
		marker = ErrWriteFailed
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "sanitization failure"
	}
	return strings.Join(parts, ": ")
}
