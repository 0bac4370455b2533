// Package media classifies discovered paths into images, videos, and
// unsupported files, and captures the per-file facts (size, timestamps)
// the rest of the pipeline works from.
package media
