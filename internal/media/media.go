package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Kind identifies the media category of a discovered file.
type Kind int

const (
	KindUnsupported Kind = iota
	KindImage
	KindVideo
)

// String returns the lowercase label used in logs and reports.
func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	default:
		return "unsupported"
	}
}

// File describes one classified source file. Immutable once built.
type File struct {
	// Path is the absolute source path.
	Path string
	Kind Kind
	// Size is the source size in bytes. Zero for unsupported files.
	Size int64
	// ModTime is the filesystem modification time, used for batch
	// ordering and as the capture-time fallback.
	ModTime time.Time
	// Capture is the embedded capture timestamp read before stripping.
	// Zero when no embedded metadata was readable; consumers fall back
	// to ModTime.
	Capture time.Time
}

// DefaultImageExtensions lists the image types processed out of the box.
func DefaultImageExtensions() []string {
	return []string{"jpg", "jpeg", "png", "webp", "heic", "heif", "tif", "tiff", "bmp"}
}

// DefaultVideoExtensions lists the video types processed out of the box.
func DefaultVideoExtensions() []string {
	return []string{"mp4", "mov", "m4v", "mkv", "avi", "webm"}
}

// Classifier maps file extensions onto media kinds using configurable
// allow-lists. It performs no writes.
type Classifier struct {
	image map[string]struct{}
	video map[string]struct{}
}

// NewClassifier builds a classifier from per-kind extension allow-lists.
// Extensions are matched case-insensitively, with or without a leading dot.
func NewClassifier(imageExts, videoExts []string) *Classifier {
	return &Classifier{
		image: buildExtSet(imageExts),
		video: buildExtSet(videoExts),
	}
}

func buildExtSet(exts []string) map[string]struct{} {
	set := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		cleaned := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if cleaned == "" {
			continue
		}
		set["."+cleaned] = struct{}{}
	}
	return set
}

// KindOf reports the kind the classifier would assign to path without
// touching the filesystem.
func (c *Classifier) KindOf(path string) Kind {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := c.image[ext]; ok {
		return KindImage
	}
	if _, ok := c.video[ext]; ok {
		return KindVideo
	}
	return KindUnsupported
}

// Classify inspects path and returns the immutable File record. Supported
// files are stat'd for size and modification time; an unreadable supported
// file is an error the caller records against that file.
func (c *Classifier) Classify(path string) (File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return File{}, fmt.Errorf("resolve path %q: %w", path, err)
	}

	kind := c.KindOf(abs)
	if kind == KindUnsupported {
		return File{Path: abs, Kind: KindUnsupported}, nil
	}

	info, err := os.Stat(abs)
	if err != nil {
		return File{}, fmt.Errorf("stat source: %w", err)
	}
	return File{
		Path:    abs,
		Kind:    kind,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}
