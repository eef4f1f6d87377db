package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"grok/internal/version"
)

const versionTagline = "infer first, run later"

type versionOptions struct {
	format      string
	showHash    bool
	showMessage bool
	showDate    bool
	color       bool
}

type versionPayload struct {
	Tool       string `json:"tool"`
	Version    string `json:"version"`
	Tagline    string `json:"tagline"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
}

func newVersionCmd() *cobra.Command {
	var (
		format              string
		hash, message, date bool
		full                bool
	)
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show grok build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := versionOptions{
				format:      strings.ToLower(format),
				showHash:    hash || full,
				showMessage: message || full,
				showDate:    date || full,
			}
			switch opts.format {
			case "json":
				return renderVersionJSON(cmd.OutOrStdout(), opts)
			case "pretty":
				mode, _ := cmd.Root().PersistentFlags().GetString("color")
				opts.color = mode == "on" || (mode == "auto" && isTerminal(cmd.OutOrStdout()))
				renderVersionPretty(cmd.OutOrStdout(), opts)
				return nil
			default:
				return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
			}
		},
	}
	cmd.Flags().BoolVar(&hash, "hash", false, "include git commit hash")
	cmd.Flags().BoolVar(&message, "message", false, "include git commit message")
	cmd.Flags().BoolVar(&date, "date", false, "include build timestamp")
	cmd.Flags().BoolVar(&full, "full", false, "show all recorded build metadata")
	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty|json)")
	return cmd
}

func currentVersion() string {
	v := strings.TrimSpace(version.Version)
	if v == "" {
		return "dev"
	}
	return v
}

func renderVersionPretty(out io.Writer, opts versionOptions) {
	fmt.Fprintf(out, "grok %s: %s\n", version.Colored(currentVersion(), opts.color), versionTagline)
	if opts.showHash {
		fmt.Fprintf(out, "commit:  %s\n", valueOrUnknown(version.GitCommit))
	}
	if opts.showMessage {
		fmt.Fprintf(out, "message: %s\n", valueOrUnknown(version.GitMessage))
	}
	if opts.showDate {
		fmt.Fprintf(out, "built:   %s\n", valueOrUnknown(version.BuildDate))
	}
}

func renderVersionJSON(out io.Writer, opts versionOptions) error {
	payload := versionPayload{
		Tool:    "grok",
		Version: currentVersion(),
		Tagline: versionTagline,
	}
	if opts.showHash {
		payload.GitCommit = valueOrUnknown(version.GitCommit)
	}
	if opts.showMessage {
		payload.GitMessage = valueOrUnknown(version.GitMessage)
	}
	if opts.showDate {
		payload.BuildDate = valueOrUnknown(version.BuildDate)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "unknown"
	}
	return s
}
