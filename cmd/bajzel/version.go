package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"bajzel/internal/version"
)

const versionTagline = "noise with a layout"

// versionPayload is also the --format json document.
type versionPayload struct {
	Tool       string `json:"tool"`
	Version    string `json:"version"`
	Tagline    string `json:"tagline"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
}

var versionFlags struct {
	format                     string
	hash, message, date, full bool
}

func init() {
	f := versionCmd.Flags()
	f.BoolVar(&versionFlags.hash, "hash", false, "include git commit hash")
	f.BoolVar(&versionFlags.message, "message", false, "include git commit message")
	f.BoolVar(&versionFlags.date, "date", false, "include build timestamp")
	f.BoolVar(&versionFlags.full, "full", false, "show all build metadata")
	f.StringVar(&versionFlags.format, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show bajzel build fingerprints",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		format := strings.ToLower(versionFlags.format)
		if format != "pretty" && format != "json" {
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFlags.format)
		}
		p := buildVersionPayload()
		if format == "json" {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(p)
		}
		printVersion(cmd.OutOrStdout(), p)
		return nil
	},
}

// buildVersionPayload keeps only the fields the flags asked for.
// Missing ldflags fall back to the VCS stamp of the binary, then "unknown".
func buildVersionPayload() versionPayload {
	commit, date := strings.TrimSpace(version.GitCommit), strings.TrimSpace(version.BuildDate)
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && commit == "":
				commit = s.Value
			case s.Key == "vcs.time" && date == "":
				date = s.Value
			}
		}
	}

	all := versionFlags.full
	p := versionPayload{
		Tool:    "bajzel",
		Version: orDefault(strings.TrimSpace(version.Version), "dev"),
		Tagline: versionTagline,
	}
	if all || versionFlags.hash {
		p.GitCommit = orDefault(commit, "unknown")
	}
	if all || versionFlags.message {
		p.GitMessage = orDefault(strings.TrimSpace(version.GitMessage), "unknown")
	}
	if all || versionFlags.date {
		p.BuildDate = orDefault(date, "unknown")
	}
	return p
}

func printVersion(out io.Writer, p versionPayload) {
	fmt.Fprintf(out, "bajzel %s: %s\n", version.Colored(), p.Tagline)
	for _, row := range [][2]string{
		{"commit", p.GitCommit},
		{"message", p.GitMessage},
		{"built", p.BuildDate},
	} {
		if row[1] != "" {
			fmt.Fprintf(out, "%-8s %s\n", row[0]+":", row[1])
		}
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
