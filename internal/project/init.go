package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultManifest returns the grok.toml written by Init.
func DefaultManifest(name string) string {
	d := Defaults()
	return fmt.Sprintf(`# grok project manifest
[package]
name = %q

[run]
main = %q
entry = %q

[check]
max_depth = %d
strict_logical = false
max_diagnostics = %d

[vm]
hotspot_threshold = %d
max_call_depth = %d
trace = false
`, name, d.Run.Main, d.Run.Entry, d.Check.MaxDepth, d.Check.MaxDiagnostics, d.VM.HotspotThreshold, d.VM.MaxCallDepth)
}

// DefaultMain is the entry file written by Init.
func DefaultMain() string {
	return `fn add(a: i32, b: i32) -> i32 {
    a + b
}

fn main() -> i32 {
    add(2, 3)
}
`
}

// InitResult lists what Init wrote.
type InitResult struct {
	Dir          string
	ManifestPath string
	MainPath     string
	CreatedMain  bool
}

// Init creates grok.toml and main.grok in dir, creating dir when needed.
// An existing manifest is an error; an existing main.grok is kept.
func Init(dir string) (InitResult, error) {
	target, err := filepath.Abs(dir)
	if err != nil {
		return InitResult{}, err
	}
	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return InitResult{}, err
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return InitResult{}, fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return InitResult{}, fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "grok-project"
	}

	res := InitResult{
		Dir:          target,
		ManifestPath: filepath.Join(target, ManifestName),
		MainPath:     filepath.Join(target, Defaults().Run.Main),
	}
	if _, err := os.Stat(res.ManifestPath); err == nil {
		return InitResult{}, fmt.Errorf("project already initialized: %s exists", res.ManifestPath)
	}
	if err := os.WriteFile(res.ManifestPath, []byte(DefaultManifest(name)), 0o600); err != nil {
		return InitResult{}, fmt.Errorf("failed to write manifest: %w", err)
	}
	if _, err := os.Stat(res.MainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(res.MainPath, []byte(DefaultMain()), 0o600); err != nil {
			return InitResult{}, fmt.Errorf("failed to write %s: %w", filepath.Base(res.MainPath), err)
		}
		res.CreatedMain = true
	}
	return res, nil
}
