//go:build !darwin && !linux

package fileutil

// ClearXattrs is a no-op on platforms without extended attributes.
func ClearXattrs(string) error { return nil }
