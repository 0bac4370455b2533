package config

import "strings"

// DefaultOutputFolder is created inside the input folder when no output
// path is given.
const DefaultOutputFolder = "NiClean_cleaned"

// Default returns a configuration with every field set to its shipped value.
func Default() Config {
	return Config{
		Naming: Naming{
			Preset:       "iphone",
			OutputFolder: DefaultOutputFolder,
		},
		Processing: Processing{
			KeepTimestamps: true,
			OpenWhenDone:   true,
		},
		Extensions: Extensions{
			Image: []string{"jpg", "jpeg", "png", "webp", "heic", "heif", "tif", "tiff", "bmp"},
			Video: []string{"mp4", "mov", "m4v", "mkv", "avi", "webm"},
		},
		Tools: Tools{
			Image:          "exiftool",
			Video:          "ffmpeg",
			TimeoutSeconds: 120,
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
	}
}

func (c *Config) normalize() {
	c.Naming.Preset = strings.ToLower(strings.TrimSpace(c.Naming.Preset))
	if c.Naming.Preset == "" {
		c.Naming.Preset = "iphone"
	}
	c.Naming.OutputFolder = strings.TrimSpace(c.Naming.OutputFolder)
	if c.Naming.OutputFolder == "" {
		c.Naming.OutputFolder = DefaultOutputFolder
	}

	c.Tools.Dir = strings.TrimSpace(c.Tools.Dir)
	c.Tools.Image = strings.TrimSpace(c.Tools.Image)
	c.Tools.Video = strings.TrimSpace(c.Tools.Video)
	if c.Tools.Image == "" {
		c.Tools.Image = "exiftool"
	}
	if c.Tools.Video == "" {
		c.Tools.Video = "ffmpeg"
	}
	if c.Tools.TimeoutSeconds <= 0 {
		c.Tools.TimeoutSeconds = 120
	}

	c.Extensions.Image = normalizeExtensions(c.Extensions.Image, Default().Extensions.Image)
	c.Extensions.Video = normalizeExtensions(c.Extensions.Video, Default().Extensions.Video)

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func normalizeExtensions(values, fallback []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		cleaned := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(v), "."))
		if cleaned == "" {
			continue
		}
		out = append(out, cleaned)
	}
	if len(out) == 0 {
		return append([]string{}, fallback...)
	}
	return out
}
