package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"grok/internal/driver"
)

func newCheckCmd() *cobra.Command {
	var (
		jobs   int
		stage  string
		uiMode string
	)
	cmd := &cobra.Command{
		Use:   "check [files or dirs...]",
		Short: "Type-check grok sources",
		Long: `Parse and type-check each file. Directories are searched for .grok files.
With no arguments the manifest's main file is checked.`,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, err := beginSession(cmd)
			if err != nil {
				return err
			}
			defer func() { err = s.end(err) }()
			return runCheck(cmd, s, args, stage, uiMode, jobs)
		},
	}
	cmd.Flags().IntVar(&jobs, "jobs", 0, "files checked in parallel (0 = GOMAXPROCS)")
	cmd.Flags().StringVar(&stage, "stage", "check", "last stage to run (parse|check|generate)")
	cmd.Flags().StringVar(&uiMode, "ui", "auto", "live progress view (auto|on|off)")
	cmd.Flags().Int("max-depth", 512, "maximum expression nesting depth")
	cmd.Flags().Bool("strict-logical", false, "require bool operands for && and ||")
	return cmd
}

func parseStage(s string) (driver.Stage, error) {
	switch s {
	case "parse":
		return driver.StageParse, nil
	case "check", "":
		return driver.StageCheck, nil
	case "generate":
		return driver.StageGenerate, nil
	}
	return driver.StageCheck, fmt.Errorf("invalid stage: %q (expected: parse|check|generate)", s)
}

func runCheck(cmd *cobra.Command, s *session, args []string, stageStr, uiMode string, jobs int) error {
	stage, err := parseStage(stageStr)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		path, err := resolveMain(nil)
		if err != nil {
			return err
		}
		args = []string{path}
	}
	paths, err := driver.ExpandPaths(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .grok files found")
	}
	cfg, _, err := s.settings(filepath.Dir(paths[0]))
	if err != nil {
		return err
	}

	showUI, err := s.wantUI(uiMode)
	if err != nil {
		return err
	}
	var results []*driver.Compilation
	if showUI {
		results, err = checkWithUI(cmd.Context(), cmd.OutOrStdout(), paths, s.compileOptions(cfg, stage), jobs)
	} else {
		results, err = driver.CheckFiles(cmd.Context(), paths, s.compileOptions(cfg, stage), jobs, nil)
	}
	if err != nil {
		return err
	}
	failed := 0
	for _, c := range results {
		if rerr := s.report(c); rerr != nil {
			return rerr
		}
		if c.HasErrors() {
			failed++
		}
	}
	if failed > 0 {
		if !s.quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d file(s) failed\n", failed, len(results))
		}
		return errReported
	}
	if !s.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d file(s) checked\n", len(results))
	}
	return nil
}

// wantUI resolves --ui. auto shows the view only on an interactive stdout
// with pretty diagnostics.
func (s *session) wantUI(mode string) (bool, error) {
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		format, _ := s.cmd.Root().PersistentFlags().GetString("diag-format")
		return !s.quiet && format != "json" && isTerminal(s.cmd.OutOrStdout()), nil
	default:
		return false, fmt.Errorf("invalid ui mode: %q (expected: auto|on|off)", mode)
	}
}
