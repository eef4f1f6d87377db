package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file that marks a project root.
const ManifestName = "grok.toml"

// SourceExt is the extension of grok source files.
const SourceExt = ".grok"

// Config mirrors grok.toml. Zero values are filled from Defaults.
type Config struct {
	Package PackageConfig `toml:"package"`
	Run     RunConfig     `toml:"run"`
	Check   CheckConfig   `toml:"check"`
	VM      VMConfig      `toml:"vm"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type RunConfig struct {
	Main  string `toml:"main"`
	Entry string `toml:"entry"`
}

type CheckConfig struct {
	MaxDepth       int  `toml:"max_depth"`
	StrictLogical  bool `toml:"strict_logical"`
	MaxDiagnostics int  `toml:"max_diagnostics"`
}

type VMConfig struct {
	HotspotThreshold int  `toml:"hotspot_threshold"`
	MaxCallDepth     int  `toml:"max_call_depth"`
	Trace            bool `toml:"trace"`
}

// Defaults is the configuration used when no manifest exists.
func Defaults() Config {
	return Config{
		Run:   RunConfig{Main: "main" + SourceExt, Entry: "main"},
		Check: CheckConfig{MaxDepth: 512, MaxDiagnostics: 100},
		VM:    VMConfig{HotspotThreshold: 100, MaxCallDepth: 1024},
	}
}

// Manifest is a loaded grok.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// MainPath resolves [run].main against the project root.
func (m *Manifest) MainPath() string {
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Run.Main))
}

// FindManifest walks up from startDir to locate grok.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and parses the manifest above startDir. When there is none it
// returns ok == false and no error.
func Load(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig parses one manifest file on top of Defaults.
func LoadConfig(path string) (Config, error) {
	cfg := Defaults()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the pipeline cannot honour.
func (c Config) Validate() error {
	var errs []error
	if c.Check.MaxDepth <= 0 {
		errs = append(errs, fmt.Errorf("[check].max_depth must be positive, got %d", c.Check.MaxDepth))
	}
	if c.Check.MaxDiagnostics < 0 {
		errs = append(errs, fmt.Errorf("[check].max_diagnostics must not be negative, got %d", c.Check.MaxDiagnostics))
	}
	if c.VM.HotspotThreshold < 0 {
		errs = append(errs, fmt.Errorf("[vm].hotspot_threshold must not be negative, got %d", c.VM.HotspotThreshold))
	}
	if c.VM.MaxCallDepth <= 0 {
		errs = append(errs, fmt.Errorf("[vm].max_call_depth must be positive, got %d", c.VM.MaxCallDepth))
	}
	if strings.TrimSpace(c.Run.Entry) == "" {
		errs = append(errs, errors.New("[run].entry must not be empty"))
	}
	if filepath.Ext(c.Run.Main) != SourceExt {
		errs = append(errs, fmt.Errorf("[run].main must be a %s file, got %q", SourceExt, c.Run.Main))
	}
	return errors.Join(errs...)
}
