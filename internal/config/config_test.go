package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := Default()
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Naming.Preset != "iphone" {
		t.Fatalf("unexpected default preset %q", cfg.Naming.Preset)
	}
	if cfg.Naming.OutputFolder != DefaultOutputFolder {
		t.Fatalf("unexpected default output folder %q", cfg.Naming.OutputFolder)
	}
	if !cfg.Processing.KeepTimestamps {
		t.Fatal("keep_timestamps should default on")
	}
	if cfg.Tools.TimeoutSeconds != 120 {
		t.Fatalf("unexpected default timeout %d", cfg.Tools.TimeoutSeconds)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, _, exists, err := Load("", t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if exists {
		t.Fatal("expected no config file to exist")
	}
	if cfg.Naming.Preset != "iphone" {
		t.Fatalf("expected defaults, got preset %q", cfg.Naming.Preset)
	}
}

func TestLoadPrefersInputFolderConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	inputDir := t.TempDir()
	body := []byte("[naming]\npreset = \"android\"\n\n[processing]\ninclude_subfolders = true\n")
	if err := os.WriteFile(filepath.Join(inputDir, ConfigFileName), body, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, path, exists, err := Load("", inputDir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !exists {
		t.Fatal("expected input folder config to be found")
	}
	if path != filepath.Join(inputDir, ConfigFileName) {
		t.Fatalf("unexpected resolved path %q", path)
	}
	if cfg.Naming.Preset != "android" {
		t.Fatalf("expected android preset, got %q", cfg.Naming.Preset)
	}
	if !cfg.Processing.IncludeSubfolders {
		t.Fatal("expected include_subfolders true")
	}
	// Untouched sections keep defaults.
	if cfg.Tools.Image != "exiftool" {
		t.Fatalf("expected default image tool, got %q", cfg.Tools.Image)
	}
}

func TestLoadExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	if err := os.WriteFile(path, []byte("[tools]\ntimeout_seconds = 30\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected explicit path resolution, got %q exists=%v", resolved, exists)
	}
	if cfg.Tools.TimeoutSeconds != 30 {
		t.Fatalf("expected timeout 30, got %d", cfg.Tools.TimeoutSeconds)
	}
}

func TestLoadRejectsBadPreset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("[naming]\npreset = \"blackberry\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := Load(path, ""); err == nil {
		t.Fatal("expected validation error for unknown preset")
	}
}

func TestNormalizeExtensionLists(t *testing.T) {
	cfg := Default()
	cfg.Extensions.Image = []string{".JPG", " png ", ""}
	cfg.Extensions.Video = nil
	cfg.normalize()

	if len(cfg.Extensions.Image) != 2 || cfg.Extensions.Image[0] != "jpg" || cfg.Extensions.Image[1] != "png" {
		t.Fatalf("unexpected image extensions %v", cfg.Extensions.Image)
	}
	// An emptied list falls back to the shipped defaults.
	if len(cfg.Extensions.Video) == 0 {
		t.Fatal("expected video extension fallback")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "niclean.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("create sample: %v", err)
	}
	cfg, _, exists, err := Load(path, "")
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config invalid: %v", err)
	}
}
