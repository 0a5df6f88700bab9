package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bajzel/internal/config"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, config.FileName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[generate]
seed = 42
count = 100
out_dir = "corpus"
append_term = true

[output]
color = "off"
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Generate.Seed != 42 || cfg.Generate.Count != 100 || cfg.Generate.OutDir != "corpus" || !cfg.Generate.AppendTerm {
		t.Errorf("generate = %+v", cfg.Generate)
	}
	if !cfg.IsSet("generate", "seed") || cfg.IsSet("generate", "jobs") || cfg.IsSet("output", "max_diagnostics") {
		t.Error("IsSet mismatch")
	}
	var nilCfg *config.Config
	if nilCfg.IsSet("generate") {
		t.Error("nil config reports keys")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "[generate\nseed = 1", "failed to parse TOML"},
		{"unknown key", "[generate]\nsed = 1", "unknown keys: generate.sed"},
		{"bad color", "[output]\ncolor = \"rainbow\"", "must be auto, on or off"},
		{"negative count", "[generate]\ncount = -1", "count must not be negative"},
		{"negative jobs", "[generate]\njobs = -2", "jobs must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, t.TempDir(), tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[output]\nmax_diagnostics = 5\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg, ok, err := config.Discover(nested)
	if err != nil || !ok {
		t.Fatalf("Discover: ok=%v err=%v", ok, err)
	}
	if cfg.Output.MaxDiagnostics != 5 || filepath.Dir(cfg.Path) != root {
		t.Errorf("cfg = %+v", cfg)
	}
}
