package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"grok/internal/driver"
	"grok/internal/ir"
	"grok/internal/project"
	"grok/internal/vm"
)

// runFlags are shared by run and exec.
type runFlags struct {
	args          []string
	profile       bool
	profileFormat string
	profileOut    string
}

func (f *runFlags) register(cmd *cobra.Command) {
	d := project.Defaults()
	cmd.Flags().String("entry", d.Run.Entry, "function to call")
	cmd.Flags().StringArrayVar(&f.args, "arg", nil, "argument passed to the entry function (repeatable)")
	cmd.Flags().BoolVar(&f.profile, "profile", false, "print the call profile after the run")
	cmd.Flags().StringVar(&f.profileFormat, "profile-format", "text", "profile format (text|json|yaml)")
	cmd.Flags().StringVar(&f.profileOut, "profile-out", "", "write the profile to a file instead of stderr")
	cmd.Flags().Bool("vm-trace", false, "print every executed instruction to stderr")
	cmd.Flags().Int("hotspot-threshold", d.VM.HotspotThreshold, "calls above which a function is a hotspot")
	cmd.Flags().Int("max-call-depth", d.VM.MaxCallDepth, "maximum VM call depth")
}

func newRunCmd() *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Compile and run a grok program on the VM",
		Long: `Check and lower the file to IR, then call the entry function on the VM and
print its result. With no file the manifest's main file is run.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, err := beginSession(cmd)
			if err != nil {
				return err
			}
			defer func() { err = s.end(err) }()

			path, err := resolveMain(args)
			if err != nil {
				return err
			}
			cfg, _, err := s.settings(filepath.Dir(path))
			if err != nil {
				return err
			}
			c, err := driver.Compile(cmd.Context(), path, s.compileOptions(cfg, driver.StageGenerate))
			if err != nil {
				return err
			}
			if err := s.report(c); err != nil {
				return err
			}
			if c.HasErrors() {
				return errReported
			}
			return s.execute(c.Funcs, cfg, &flags)
		},
	}
	flags.register(cmd)
	cmd.Flags().Int("max-depth", 512, "maximum expression nesting depth")
	cmd.Flags().Bool("strict-logical", false, "require bool operands for && and ||")
	return cmd
}

// execute runs fns and prints the result, a runtime error with its
// backtrace, and the profile when requested.
func (s *session) execute(fns []*ir.Function, cfg project.Config, flags *runFlags) error {
	args := make([]vm.Value, len(flags.args))
	for i, a := range flags.args {
		args[i] = vm.ParseValue(a)
	}
	vmOpts := vm.Options{
		HotspotThreshold: cfg.VM.HotspotThreshold,
		MaxCallDepth:     cfg.VM.MaxCallDepth,
	}
	if cfg.VM.Trace {
		vmOpts.Tracer = vm.NewTracer(s.cmd.ErrOrStderr())
	}

	exec, err := driver.Execute(s.cmd.Context(), fns, driver.ExecOptions{
		Entry: cfg.Run.Entry,
		Args:  args,
		VM:    vmOpts,
		Timer: s.timer,
	})
	if flags.profile && exec != nil {
		if perr := s.writeProfile(exec.VM, flags); perr != nil && err == nil {
			err = perr
		}
	}
	var vmErr *vm.VMError
	if errors.As(err, &vmErr) {
		fmt.Fprint(s.cmd.ErrOrStderr(), vmErr.Detailed())
		return errReported
	}
	if err != nil {
		return err
	}
	if !exec.Result.IsNone() {
		fmt.Fprintln(s.cmd.OutOrStdout(), exec.Result.String())
	}
	return nil
}

func (s *session) writeProfile(machine *vm.VM, flags *runFlags) (err error) {
	report := machine.Profiler().Report(machine.RunID().String())
	var w io.Writer = s.cmd.ErrOrStderr()
	if flags.profileOut != "" {
		f, err := os.Create(flags.profileOut)
		if err != nil {
			return fmt.Errorf("failed to create profile output: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		w = f
	}
	return report.Write(w, flags.profileFormat)
}
