package batch

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"niclean/internal/config"
)

type entry struct {
	path    string
	modTime time.Time
}

// enumerate lists the candidate files under inputRoot in the batch's
// deterministic order: modification time, then lowercased base name.
// The output root and dot-prefixed files are excluded so a nested output
// folder is never fed back into its own run.
func enumerate(inputRoot, outputRoot string, recursive bool) ([]entry, error) {
	var entries []entry

	appendFile := func(path string, info fs.FileInfo) {
		entries = append(entries, entry{path: path, modTime: info.ModTime()})
	}

	if recursive {
		err := filepath.WalkDir(inputRoot, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if samePath(path, outputRoot) {
					return filepath.SkipDir
				}
				if path != inputRoot && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if skipName(d.Name()) {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return err
			}
			appendFile(path, info)
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		items, err := os.ReadDir(inputRoot)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			if item.IsDir() || skipName(item.Name()) {
				continue
			}
			info, err := item.Info()
			if err != nil {
				continue
			}
			appendFile(filepath.Join(inputRoot, item.Name()), info)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].modTime.Equal(entries[j].modTime) {
			return entries[i].modTime.Before(entries[j].modTime)
		}
		return strings.ToLower(filepath.Base(entries[i].path)) < strings.ToLower(filepath.Base(entries[j].path))
	})
	return entries, nil
}

func skipName(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	return name == config.ConfigFileName
}

func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return filepath.Clean(a) == filepath.Clean(b)
}
