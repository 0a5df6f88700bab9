package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"bajzel/internal/config"
)

// cliSettings is the merge of global flags and bajzel.toml; an explicitly
// set flag always wins over the file.
type cliSettings struct {
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
	diagFormat     string
	config         *config.Config
}

// settings is filled by the root PersistentPreRunE.
var settings = &cliSettings{maxDiagnostics: 100, diagFormat: "pretty"}

func configFileName() string { return config.FileName }

func resolveSettings(cmd *cobra.Command) (*cliSettings, error) {
	flags := cmd.Root().PersistentFlags()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	colorMode, err := flags.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	if !flags.Changed("color") && cfg.IsSet("output", "color") {
		colorMode = cfg.Output.Color
	}
	useColor, err := resolveColor(colorMode, os.Stderr)
	if err != nil {
		return nil, err
	}
	// fatih/color сам проверяет stdout в режиме auto
	switch strings.ToLower(colorMode) {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	}

	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if !flags.Changed("max-diagnostics") && cfg.IsSet("output", "max_diagnostics") {
		maxDiagnostics = cfg.Output.MaxDiagnostics
	}

	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	diagFormat, err := flags.GetString("diagnostics-format")
	if err != nil {
		return nil, fmt.Errorf("failed to get diagnostics-format flag: %w", err)
	}
	diagFormat = strings.ToLower(diagFormat)
	if diagFormat != "pretty" && diagFormat != "json" {
		return nil, fmt.Errorf("invalid --diagnostics-format value %q (expected pretty|json)", diagFormat)
	}

	return &cliSettings{
		color:          useColor,
		quiet:          quiet,
		timings:        timings,
		maxDiagnostics: maxDiagnostics,
		diagFormat:     diagFormat,
		config:         cfg,
	}, nil
}

// loadConfig honours --config, otherwise searches upwards from the working
// directory. A missing file is not an error.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg, _, err := config.Discover(wd)
	return cfg, err
}

func resolveColor(mode string, f *os.File) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(mode)) {
	case "", "auto":
		return f != nil && isTerminal(f), nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}
