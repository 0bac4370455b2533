package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Validate checks the configuration for values the pipeline cannot work with.
func (c *Config) Validate() error {
	switch c.Naming.Preset {
	case "iphone", "android":
	default:
		return fmt.Errorf("naming preset: unsupported value %q (want iphone or android)", c.Naming.Preset)
	}

	if strings.ContainsAny(c.Naming.OutputFolder, string(filepath.Separator)+"/") {
		// The output folder is a name nested under the input (or an
		// absolute --output path at the CLI), never a relative traversal.
		if !filepath.IsAbs(c.Naming.OutputFolder) {
			return fmt.Errorf("output folder: %q must be a plain folder name or an absolute path", c.Naming.OutputFolder)
		}
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log format: unsupported value %q", c.Logging.Format)
	}

	if c.Tools.TimeoutSeconds <= 0 {
		return fmt.Errorf("tools timeout: %d seconds is not usable", c.Tools.TimeoutSeconds)
	}
	return nil
}
