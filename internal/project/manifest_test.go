package project_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"grok/internal/project"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, project.ManifestName), `
[package]
name = "demo"

[vm]
hotspot_threshold = 5
`)
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := project.Load(nested)
	if err != nil || !ok {
		t.Fatalf("Load = %v, %v", ok, err)
	}
	if m.Root != root {
		t.Errorf("root = %s, want %s", m.Root, root)
	}
	cfg := m.Config
	if cfg.Package.Name != "demo" || cfg.VM.HotspotThreshold != 5 {
		t.Errorf("config = %+v", cfg)
	}
	// Unset keys keep their defaults.
	if cfg.VM.MaxCallDepth != 1024 || cfg.Check.MaxDepth != 512 || cfg.Run.Entry != "main" {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if m.MainPath() != filepath.Join(root, "main.grok") {
		t.Errorf("main path = %s", m.MainPath())
	}
}

func TestLoadWithoutManifest(t *testing.T) {
	m, ok, err := project.Load(t.TempDir())
	if err != nil || ok || m != nil {
		t.Fatalf("Load = %v, %v, %v", m, ok, err)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "[package\n", "failed to parse TOML"},
		{"no-name", "[run]\nentry = \"main\"\n", "missing [package].name"},
		{"unknown-key", "[package]\nname = \"x\"\n[vm]\nturbo = true\n", "unknown keys: vm.turbo"},
		{"bad-depth", "[package]\nname = \"x\"\n[check]\nmax_depth = 0\n", "max_depth must be positive"},
		{"bad-main", "[package]\nname = \"x\"\n[run]\nmain = \"main.txt\"\n", "[run].main must be a .grok file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), project.ManifestName)
			writeFile(t, path, tt.content)
			_, err := project.LoadConfig(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("got %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "hello")
	res, err := project.Init(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !res.CreatedMain {
		t.Error("main.grok not created")
	}
	cfg, err := project.LoadConfig(res.ManifestPath)
	if err != nil {
		t.Fatalf("generated manifest does not load: %v", err)
	}
	if cfg.Package.Name != "hello" {
		t.Errorf("name = %q", cfg.Package.Name)
	}
	if _, err := project.Init(dir); err == nil {
		t.Error("second Init should fail")
	}
}
