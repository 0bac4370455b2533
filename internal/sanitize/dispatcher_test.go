package sanitize

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"niclean/internal/capability"
	"niclean/internal/logging"
	"niclean/internal/media"
)

func writeScript(t *testing.T, path, body string) string {
	t.Helper()
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write script %s: %v", path, err)
	}
	return path
}

func writeSource(t *testing.T, dir, name string, payload []byte) media.File {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat source: %v", err)
	}
	kind := media.KindImage
	if strings.HasSuffix(name, ".mp4") || strings.HasSuffix(name, ".mov") {
		kind = media.KindVideo
	}
	return media.File{Path: path, Kind: kind, Size: info.Size(), ModTime: info.ModTime()}
}

func newDispatcher(t *testing.T, caps capability.Set, outputDir string, opts ...Option) *Dispatcher {
	t.Helper()
	d, err := NewDispatcher(caps, outputDir, logging.NewNop(), opts...)
	if err != nil {
		t.Fatalf("new dispatcher: %v", err)
	}
	return d
}

func imageCaps(command string) capability.Set {
	return capability.Set{
		Image: capability.Capability{Kind: capability.ImageStrip, Name: "exiftool", Command: command, Available: command != ""},
	}
}

func videoCaps(command string) capability.Set {
	return capability.Set{
		Video: capability.Capability{Kind: capability.VideoStrip, Name: "ffmpeg", Command: command, Available: command != ""},
	}
}

func TestSanitizeImageStripped(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	payload := []byte("image-with-exif")
	file := writeSource(t, srcDir, "a.jpg", payload)

	// The erase instruction rewrites the copy in place ($4 is the copy path).
	tool := writeScript(t, filepath.Join(t.TempDir(), "exiftool"), `printf stripped > "$4"`+"\n")
	d := newDispatcher(t, imageCaps(tool), outDir)

	result := d.Sanitize(context.Background(), file, "IMG_0001.JPG")
	if result.Outcome != OutcomeCopiedStripped {
		t.Fatalf("expected stripped outcome, got %v (%s)", result.Outcome, result.Reason)
	}

	got, err := os.ReadFile(filepath.Join(outDir, "IMG_0001.JPG"))
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if string(got) != "stripped" {
		t.Fatalf("tool did not run on the copy: %q", got)
	}

	// Source must be untouched.
	src, err := os.ReadFile(file.Path)
	if err != nil {
		t.Fatalf("read source: %v", err)
	}
	if !bytes.Equal(src, payload) {
		t.Fatal("source bytes were modified")
	}
}

func TestSanitizeImageToolFailureKeepsUnstrippedCopy(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	payload := []byte("image-with-exif")
	file := writeSource(t, srcDir, "a.jpg", payload)

	tool := writeScript(t, filepath.Join(t.TempDir(), "exiftool"), "echo 'boom' >&2\nexit 1\n")
	d := newDispatcher(t, imageCaps(tool), outDir)

	result := d.Sanitize(context.Background(), file, "IMG_0001.JPG")
	if result.Outcome != OutcomeCopiedSkippedStrip {
		t.Fatalf("expected skipped-strip outcome, got %v", result.Outcome)
	}
	if result.Reason == "" || result.Reason == ReasonUnavailable {
		t.Fatalf("expected tool-error reason, got %q", result.Reason)
	}

	got, err := os.ReadFile(filepath.Join(outDir, "IMG_0001.JPG"))
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatal("expected byte-identical unstripped copy")
	}
}

func TestSanitizeImageUnavailableCopiesDirectly(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	payload := []byte("image-bytes")
	file := writeSource(t, srcDir, "a.jpg", payload)

	d := newDispatcher(t, imageCaps(""), outDir)
	result := d.Sanitize(context.Background(), file, "IMG_0001.JPG")

	if result.Outcome != OutcomeCopiedSkippedStrip {
		t.Fatalf("expected skipped-strip outcome, got %v", result.Outcome)
	}
	if result.Reason != ReasonUnavailable {
		t.Fatalf("expected unavailable reason, got %q", result.Reason)
	}
	got, err := os.ReadFile(filepath.Join(outDir, "IMG_0001.JPG"))
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatal("expected byte-identical copy")
	}
}

func TestSanitizeVideoRemuxed(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	file := writeSource(t, srcDir, "c.mp4", []byte("video-with-tags"))

	// The remux instruction writes the last argument.
	tool := writeScript(t, filepath.Join(t.TempDir(), "ffmpeg"), "for last; do :; done\nprintf remuxed > \"$last\"\n")
	d := newDispatcher(t, videoCaps(tool), outDir)

	result := d.Sanitize(context.Background(), file, "VID_0001.MOV")
	if result.Outcome != OutcomeCopiedStripped {
		t.Fatalf("expected stripped outcome, got %v (%s)", result.Outcome, result.Reason)
	}
	got, err := os.ReadFile(filepath.Join(outDir, "VID_0001.MOV"))
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if string(got) != "remuxed" {
		t.Fatalf("unexpected destination content %q", got)
	}
}

func TestSanitizeVideoToolFailureDegradesToPlainCopy(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	payload := []byte("video-with-tags")
	file := writeSource(t, srcDir, "c.mp4", payload)

	tool := writeScript(t, filepath.Join(t.TempDir(), "ffmpeg"), "exit 1\n")
	d := newDispatcher(t, videoCaps(tool), outDir)

	result := d.Sanitize(context.Background(), file, "VID_0001.MOV")
	if result.Outcome != OutcomeCopiedSkippedStrip {
		t.Fatalf("expected skipped-strip outcome, got %v", result.Outcome)
	}
	got, err := os.ReadFile(filepath.Join(outDir, "VID_0001.MOV"))
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatal("expected byte-identical fallback copy")
	}
}

func TestSanitizeToolTimeoutFailsFile(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	file := writeSource(t, srcDir, "c.mp4", []byte("video"))

	tool := writeScript(t, filepath.Join(t.TempDir(), "ffmpeg"), "sleep 5\n")
	d := newDispatcher(t, videoCaps(tool), outDir, WithToolTimeout(50*time.Millisecond))

	result := d.Sanitize(context.Background(), file, "VID_0001.MOV")
	if result.Outcome != OutcomeFailed {
		t.Fatalf("expected failed outcome, got %v", result.Outcome)
	}
	if result.Reason != "timeout" {
		t.Fatalf("expected timeout reason, got %q", result.Reason)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no output entries after timeout, got %d", len(entries))
	}
}

func TestSanitizeUnreadableSource(t *testing.T) {
	outDir := t.TempDir()
	d := newDispatcher(t, imageCaps(""), outDir)

	file := media.File{Path: filepath.Join(t.TempDir(), "gone.jpg"), Kind: media.KindImage}
	result := d.Sanitize(context.Background(), file, "IMG_0001.JPG")
	if result.Outcome != OutcomeFailed {
		t.Fatalf("expected failed outcome, got %v", result.Outcome)
	}
	if !strings.Contains(result.Reason, "unreadable source") {
		t.Fatalf("expected unreadable-source reason, got %q", result.Reason)
	}
}

func TestSanitizeUnsupportedKind(t *testing.T) {
	d := newDispatcher(t, capability.Set{}, t.TempDir())
	result := d.Sanitize(context.Background(), media.File{Path: "/in/notes.txt"}, "")
	if result.Outcome != OutcomeUnsupported {
		t.Fatalf("expected unsupported outcome, got %v", result.Outcome)
	}
	if result.Destination != "" {
		t.Fatalf("unsupported files must not get a destination, got %q", result.Destination)
	}
}

func TestSanitizePreservesTimestamps(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	file := writeSource(t, srcDir, "a.jpg", []byte("img"))
	want := time.Date(2020, 6, 7, 8, 9, 10, 0, time.Local)
	if err := os.Chtimes(file.Path, want, want); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	d := newDispatcher(t, imageCaps(""), outDir)
	result := d.Sanitize(context.Background(), file, "IMG_0001.JPG")
	if result.Outcome != OutcomeCopiedSkippedStrip {
		t.Fatalf("unexpected outcome %v", result.Outcome)
	}

	info, err := os.Stat(filepath.Join(outDir, "IMG_0001.JPG"))
	if err != nil {
		t.Fatalf("stat destination: %v", err)
	}
	if !info.ModTime().Equal(want) {
		t.Fatalf("expected preserved mod time %v, got %v", want, info.ModTime())
	}
}
