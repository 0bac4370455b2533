package capability

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Kind identifies a stripping capability.
type Kind int

const (
	// ImageStrip erases embedded image metadata in place.
	ImageStrip Kind = iota
	// VideoStrip remuxes a video while dropping metadata streams.
	VideoStrip
)

func (k Kind) String() string {
	if k == VideoStrip {
		return "video-strip"
	}
	return "image-strip"
}

// Capability reports where one external tool was found, if anywhere.
// Resolved once per batch and read-only thereafter.
type Capability struct {
	Kind        Kind
	Name        string
	Description string
	// Command is the resolved invocation path. Empty when unavailable.
	Command   string
	Available bool
	// Detail explains an unavailable capability.
	Detail string
}

// Set bundles the capabilities shared with the dispatcher.
type Set struct {
	Image Capability
	Video Capability
}

// ForKind returns the capability matching a media stripping kind.
func (s Set) ForKind(kind Kind) Capability {
	if kind == VideoStrip {
		return s.Video
	}
	return s.Image
}

// Missing lists the human-readable labels of unavailable capabilities.
func (s Set) Missing() []string {
	var out []string
	if !s.Image.Available {
		out = append(out, fmt.Sprintf("%s (images)", s.Image.Name))
	}
	if !s.Video.Available {
		out = append(out, fmt.Sprintf("%s (videos)", s.Video.Name))
	}
	return out
}

// probeTimeout bounds the identity probe so a wedged binary cannot stall
// batch startup.
const probeTimeout = 5 * time.Second

// Requirement describes one tool the resolver should locate.
type Requirement struct {
	Kind        Kind
	Name        string
	Description string
	// ProbeArgs are passed to the candidate binary; a zero exit status
	// marks the candidate as responsive.
	ProbeArgs []string
}

// Resolver locates external tools. The zero value resolves the default
// exiftool/ffmpeg pair against the bundled directory next to the running
// executable, then PATH.
type Resolver struct {
	// BundledDir is checked before PATH. Defaults to <executable dir>/tools.
	BundledDir string
	// ImageTool and VideoTool override the default binary names.
	ImageTool string
	VideoTool string
}

// Resolve probes both capabilities. It never fails; absence is encoded
// in the returned set.
func (r Resolver) Resolve(ctx context.Context) Set {
	bundled := strings.TrimSpace(r.BundledDir)
	if bundled == "" {
		bundled = defaultBundledDir()
	}

	return Set{
		Image: r.resolveOne(ctx, bundled, Requirement{
			Kind:        ImageStrip,
			Name:        defaultName(r.ImageTool, "exiftool"),
			Description: "Erases embedded image metadata",
			ProbeArgs:   []string{"-ver"},
		}),
		Video: r.resolveOne(ctx, bundled, Requirement{
			Kind:        VideoStrip,
			Name:        defaultName(r.VideoTool, "ffmpeg"),
			Description: "Remuxes videos dropping metadata streams",
			ProbeArgs:   []string{"-version"},
		}),
	}
}

func defaultName(override, fallback string) string {
	if cleaned := strings.TrimSpace(override); cleaned != "" {
		return cleaned
	}
	return fallback
}

func (r Resolver) resolveOne(ctx context.Context, bundledDir string, req Requirement) Capability {
	result := Capability{
		Kind:        req.Kind,
		Name:        req.Name,
		Description: req.Description,
	}

	for _, candidate := range candidates(bundledDir, req.Name) {
		if candidate == "" {
			continue
		}
		if !respondsToProbe(ctx, candidate, req.ProbeArgs) {
			continue
		}
		result.Command = candidate
		result.Available = true
		return result
	}

	result.Detail = fmt.Sprintf("binary %q not found in bundled tools or PATH", req.Name)
	return result
}

// candidates returns the ordered probe list: bundled directory first,
// then the PATH lookup result.
func candidates(bundledDir, name string) []string {
	var out []string
	for _, base := range executableNames(name) {
		candidate := filepath.Join(bundledDir, base)
		if info, err := os.Stat(candidate); err == nil && isExecutable(info) {
			out = append(out, candidate)
		}
	}
	if resolved, err := exec.LookPath(name); err == nil {
		out = append(out, resolved)
	}
	return out
}

func executableNames(base string) []string {
	if runtime.GOOS == "windows" {
		return []string{base + ".exe", base}
	}
	return []string{base}
}

func isExecutable(info os.FileInfo) bool {
	if info == nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}

func respondsToProbe(ctx context.Context, command string, args []string) bool {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	cmd := exec.CommandContext(probeCtx, command, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}

func defaultBundledDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "tools"
	}
	return filepath.Join(filepath.Dir(exe), "tools")
}
