// Package capability locates the external metadata-stripping tools and
// reports per-kind availability.
//
// Resolution walks an ordered list of probe strategies (bundled tools
// directory next to the executable, then PATH) and selects the first
// candidate that answers an identity probe. A missing tool is a normal,
// representable state, never an error.
package capability
