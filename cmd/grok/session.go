package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"grok/internal/diag"
	"grok/internal/diagfmt"
	"grok/internal/driver"
	"grok/internal/observ"
	"grok/internal/project"
	"grok/internal/source"
)

// session holds the per-invocation state shared by the commands that
// compile or run code.
type session struct {
	cmd       *cobra.Command
	timer     *observ.Timer
	traceDone func(failed bool)
	profDone  func()
	quiet     bool
}

func beginSession(cmd *cobra.Command) (*session, error) {
	flags := cmd.Root().PersistentFlags()
	s := &session{cmd: cmd}
	var err error
	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return nil, err
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return nil, err
	}
	if timings {
		s.timer = observ.NewTimer()
	}
	if s.profDone, err = setupProfiling(cmd); err != nil {
		return nil, err
	}
	if s.traceDone, err = setupTracing(cmd); err != nil {
		s.profDone()
		return nil, err
	}
	return s, nil
}

// end prints timings and releases tracing and profiling. It returns err.
func (s *session) end(err error) error {
	if s.timer != nil {
		if werr := s.timer.Report().Write(s.cmd.ErrOrStderr(), "text"); werr != nil && err == nil {
			err = werr
		}
	}
	s.traceDone(err != nil)
	s.profDone()
	return err
}

// settings loads the manifest governing dir and applies flag overrides.
// Without a manifest the defaults are used.
func (s *session) settings(dir string) (project.Config, *project.Manifest, error) {
	cfg := project.Defaults()
	m, ok, err := project.Load(dir)
	if err != nil {
		return cfg, nil, manifestError(err)
	}
	if ok {
		cfg = m.Config
	}
	flags := s.cmd.Flags()
	override := func(name string, dst *int) {
		if flags.Lookup(name) != nil && flags.Changed(name) {
			if v, err := flags.GetInt(name); err == nil {
				*dst = v
			}
		}
	}
	override("max-diagnostics", &cfg.Check.MaxDiagnostics)
	override("max-depth", &cfg.Check.MaxDepth)
	override("hotspot-threshold", &cfg.VM.HotspotThreshold)
	override("max-call-depth", &cfg.VM.MaxCallDepth)
	if flags.Lookup("strict-logical") != nil && flags.Changed("strict-logical") {
		cfg.Check.StrictLogical, _ = flags.GetBool("strict-logical")
	}
	if flags.Lookup("vm-trace") != nil && flags.Changed("vm-trace") {
		cfg.VM.Trace, _ = flags.GetBool("vm-trace")
	}
	if flags.Lookup("entry") != nil && flags.Changed("entry") {
		cfg.Run.Entry, _ = flags.GetString("entry")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, m, manifestError(err)
	}
	return cfg, m, nil
}

func manifestError(err error) error {
	return fmt.Errorf("%s: %w", diag.ProjManifestInvalid.ID(), err)
}

func (s *session) compileOptions(cfg project.Config, stage driver.Stage) driver.Options {
	return driver.Options{
		Stage:          stage,
		MaxDiagnostics: cfg.Check.MaxDiagnostics,
		MaxDepth:       cfg.Check.MaxDepth,
		StrictLogical:  cfg.Check.StrictLogical,
		Timer:          s.timer,
	}
}

// resolveMain returns args[0], or the manifest's main file when no file
// was given.
func resolveMain(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	m, ok, err := project.Load(".")
	if err != nil {
		return "", manifestError(err)
	}
	if !ok {
		return "", fmt.Errorf("no file given and no %s found", project.ManifestName)
	}
	return m.MainPath(), nil
}

// report prints the diagnostics of c. Pretty output goes to stderr, JSON to
// stdout.
func (s *session) report(c *driver.Compilation) error {
	if c == nil || c.Bag.Len() == 0 {
		return nil
	}
	return s.printBag(c.Bag, c.FileSet)
}

func (s *session) printBag(bag *diag.Bag, fs *source.FileSet) error {
	flags := s.cmd.Root().PersistentFlags()
	format, _ := flags.GetString("diag-format")
	pathModeStr, _ := flags.GetString("path-mode")
	pathMode, ok := diagfmt.ParsePathMode(pathModeStr)
	if !ok {
		return fmt.Errorf("invalid path mode: %q", pathModeStr)
	}
	baseDir, _ := os.Getwd()

	bag.Sort()
	switch format {
	case "json":
		return diagfmt.JSON(s.cmd.OutOrStdout(), bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			BaseDir:          baseDir,
			IncludeNotes:     true,
		})
	case "pretty", "":
		useColor, err := s.useColor()
		if err != nil {
			return err
		}
		diagfmt.Pretty(s.cmd.ErrOrStderr(), bag, fs, diagfmt.PrettyOpts{
			Color:     useColor,
			Context:   1,
			PathMode:  pathMode,
			BaseDir:   baseDir,
			ShowNotes: true,
		})
		return nil
	default:
		return fmt.Errorf("unsupported diagnostics format %q (must be pretty or json)", format)
	}
}

func (s *session) useColor() (bool, error) {
	mode, _ := s.cmd.Root().PersistentFlags().GetString("color")
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		return isTerminal(s.cmd.ErrOrStderr()), nil
	default:
		return false, fmt.Errorf("invalid color mode: %q (expected: auto|on|off)", mode)
	}
}
