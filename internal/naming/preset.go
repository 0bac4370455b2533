package naming

import (
	"fmt"
	"strings"

	"niclean/internal/media"
)

// Preset selects a device naming convention and its target containers.
type Preset int

const (
	// PresetIPhone produces IMG_0001.JPG / VID_0001.MOV sequences.
	PresetIPhone Preset = iota
	// PresetAndroid produces IMG_YYYYMMDD_HHMMSS.JPG / VID_YYYYMMDD_HHMMSS.MP4
	// names derived from the capture timestamp.
	PresetAndroid
)

// ParsePreset maps the CLI/config spelling onto a Preset.
func ParsePreset(value string) (Preset, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "iphone", "":
		return PresetIPhone, nil
	case "android":
		return PresetAndroid, nil
	default:
		return PresetIPhone, fmt.Errorf("naming preset: unsupported value %q (want iphone or android)", value)
	}
}

func (p Preset) String() string {
	if p == PresetAndroid {
		return "android"
	}
	return "iphone"
}

// Extension returns the preset's target container extension for kind.
// The destination container is fixed by the preset, not inherited from
// the source file.
func (p Preset) Extension(kind media.Kind) string {
	if kind == media.KindVideo {
		if p == PresetAndroid {
			return ".MP4"
		}
		return ".MOV"
	}
	return ".JPG"
}

func prefixFor(kind media.Kind) string {
	if kind == media.KindVideo {
		return "VID"
	}
	return "IMG"
}
