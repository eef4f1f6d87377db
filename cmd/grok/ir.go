package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"grok/internal/driver"
	"grok/internal/ir"
	"grok/internal/version"
)

func newIRCmd() *cobra.Command {
	var (
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "ir <file>",
		Short: "Lower a grok file to stack IR",
		Long: `Check the file and print its IR as text or JSON, or write a msgpack
program that 'grok exec' can run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, err := beginSession(cmd)
			if err != nil {
				return err
			}
			defer func() { err = s.end(err) }()

			switch format {
			case "text", "json":
			case "pack":
				if out == "" {
					return fmt.Errorf("--format pack requires -o")
				}
			default:
				return fmt.Errorf("unsupported format %q (must be text, json or pack)", format)
			}

			cfg, _, err := s.settings(filepath.Dir(args[0]))
			if err != nil {
				return err
			}
			c, err := driver.Compile(cmd.Context(), args[0], s.compileOptions(cfg, driver.StageGenerate))
			if err != nil {
				return err
			}
			if err := s.report(c); err != nil {
				return err
			}
			if c.HasErrors() {
				return errReported
			}
			if format == "pack" {
				return ir.WritePackFile(out, "grok "+version.Version, c.Funcs)
			}
			return writeIR(cmd.OutOrStdout(), out, format, c.Funcs)
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format (text|json|pack)")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	cmd.Flags().Int("max-depth", 512, "maximum expression nesting depth")
	cmd.Flags().Bool("strict-logical", false, "require bool operands for && and ||")
	return cmd
}

func writeIR(stdout io.Writer, path, format string, fns []*ir.Function) (err error) {
	w := stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		w = f
	}
	if format == "json" {
		return ir.WriteJSON(w, fns)
	}
	return ir.Dump(w, fns)
}
