//go:build darwin || linux

package fileutil

import (
	"strings"

	"golang.org/x/sys/unix"
)

// ClearXattrs removes all extended attributes from path. Finder and
// friends stash provenance data (quarantine flags, origin URLs) there,
// which counts as metadata for our purposes. Best effort: attributes the
// platform refuses to drop are skipped.
func ClearXattrs(path string) error {
	size, err := unix.Listxattr(path, nil)
	if err != nil || size <= 0 {
		return nil
	}

	buf := make([]byte, size)
	read, err := unix.Listxattr(path, buf)
	if err != nil {
		return nil
	}

	for _, name := range strings.Split(string(buf[:read]), "\x00") {
		if name == "" {
			continue
		}
		_ = unix.Removexattr(path, name)
	}
	return nil
}
