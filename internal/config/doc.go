// Package config loads, validates, and defaults the NiClean TOML
// configuration.
//
// Configuration is discovered in the input folder first (niclean.toml),
// then in the user config directory, so a folder can carry its own
// cleaning settings the way the portable builds expect.
package config
