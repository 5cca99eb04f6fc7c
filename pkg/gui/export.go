package gui

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// copyJSONAction copies the combined filter to the clipboard
func (g *Gui) copyJSONAction() error {
	data, err := g.filterJSON()
	if err != nil {
		g.logCommand("copy", err.Error(), "error")
		return g.refresh()
	}

	// Copy to clipboard using platform-specific command
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("pbcopy")
	case "linux":
		cmd = exec.Command("xclip", "-selection", "clipboard")
	default:
		g.logCommand("copy", "Clipboard not supported on this platform", "error")
		return g.refresh()
	}

	cmd.Stdin = strings.NewReader(string(data))
	if err := cmd.Run(); err != nil {
		g.logCommand("copy", fmt.Sprintf("Failed to copy: %v", err), "error")
		return g.refresh()
	}

	g.logCommand("copy", "Copied filter to clipboard", "success")
	return g.refresh()
}

// saveJSONAction saves the combined filter to the Downloads directory
func (g *Gui) saveJSONAction() error {
	home, _ := os.UserHomeDir()
	path, err := g.saveFilter(filepath.Join(home, "Downloads"))
	if err != nil {
		g.logCommand("save", err.Error(), "error")
		return g.refresh()
	}

	g.logCommand("save", fmt.Sprintf("Saved to %s", path), "success")
	return g.refresh()
}

// filterJSON is the indented combined filter of the mounted controller.
func (g *Gui) filterJSON() ([]byte, error) {
	data, err := json.MarshalIndent(g.ctrl.Filter(), "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal filter")
	}
	return data, nil
}

// saveFilter writes the combined filter into dir, named after the mount.
func (g *Gui) saveFilter(dir string) (string, error) {
	data, err := g.filterJSON()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, "failed to create %s", dir)
	}

	fullPath := filepath.Join(dir, fmt.Sprintf("lazyshop-filter-%s.json", g.ctrl.ID()))
	if err := os.WriteFile(fullPath, append(data, '\n'), 0644); err != nil {
		return "", errors.Wrap(err, "failed to save")
	}
	return fullPath, nil
}
