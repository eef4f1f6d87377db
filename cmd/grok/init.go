package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"grok/internal/project"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path|name]",
		Short: "Initialize a new grok project",
		Long: `Create grok.toml and a main.grok entry point. With no argument the current
directory is initialized; a missing directory is created.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			res, err := project.Init(dir)
			if err != nil {
				return err
			}
			quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
			if quiet {
				return nil
			}
			rel := res.Dir
			if wd, err := os.Getwd(); err == nil {
				if r, err := filepath.Rel(wd, res.Dir); err == nil {
					rel = r
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Initialized grok project in %s\n", rel)
			fmt.Fprintf(out, "  - %s\n", project.ManifestName)
			if res.CreatedMain {
				fmt.Fprintf(out, "  - %s\n", filepath.Base(res.MainPath))
			} else {
				fmt.Fprintf(out, "  - %s (existing)\n", filepath.Base(res.MainPath))
			}
			return nil
		},
	}
}
