// Package sanitize performs the copy-and-strip step for one classified
// file at a time.
//
// The dispatcher copies source bytes into the output folder, invokes the
// matching external capability on the copy, and records a per-file
// outcome. Tool failures degrade to an unstripped copy instead of
// failing the file; a missing tool is a recorded skip, not an error.
// Source files are only ever opened for reading.
package sanitize
