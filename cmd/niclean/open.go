package main

import (
	"fmt"
	"os/exec"
	"runtime"
)

// openFolder reveals path in the platform file manager. Best effort;
// callers only log the error.
func openFolder(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("explorer", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("no file manager integration on %s", runtime.GOOS)
	}
	return cmd.Start()
}
