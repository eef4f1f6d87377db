package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"grok/internal/ir"
)

func newExecCmd() *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "exec <file.gpk>",
		Short: "Run a packed IR program produced by 'grok ir --format pack'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, err := beginSession(cmd)
			if err != nil {
				return err
			}
			defer func() { err = s.end(err) }()

			cfg, _, err := s.settings(filepath.Dir(args[0]))
			if err != nil {
				return err
			}
			idx := s.timer.Begin("load pack")
			pack, err := ir.ReadPackFile(args[0])
			s.timer.End(idx, "")
			if err != nil {
				return err
			}
			if err := ir.Validate(pack.Functions); err != nil {
				return fmt.Errorf("invalid program %s: %w", args[0], err)
			}
			return s.execute(pack.Functions, cfg, &flags)
		},
	}
	flags.register(cmd)
	return cmd
}
