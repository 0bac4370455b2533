// Package naming computes destination filenames for sanitized copies.
//
// A State owns the per-kind counters and the set of names already handed
// out in the current batch, so every assignment is unique by
// construction. It never touches the filesystem.
package naming
