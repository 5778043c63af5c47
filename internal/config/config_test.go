package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		path := writeConfigFile(t, "wiki.yaml", `
input:
  defaultDir: docs
output:
  defaultDir: out
convert:
  tag: latex
  highlight: true
math:
  format: svg
  dpi: 150
  fontSize: 14
`)
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Input.DefaultDir != "docs" || cfg.Output.DefaultDir != "out" {
			t.Errorf("unexpected dirs: %+v", cfg)
		}
		if cfg.Convert.Tag != "latex" || !cfg.Convert.Highlight {
			t.Errorf("unexpected convert config: %+v", cfg.Convert)
		}
		if cfg.Math.Format != "svg" || cfg.Math.DPI != 150 || cfg.Math.FontSize != 14 {
			t.Errorf("unexpected math config: %+v", cfg.Math)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		path := writeConfigFile(t, "wiki.yaml", "bogus: 1\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid math format", func(t *testing.T) {
		path := writeConfigFile(t, "wiki.yaml", "math:\n  format: bmp\n")
		_, err := LoadConfig(path)
		if err == nil || !strings.Contains(err.Error(), "math.format") {
			t.Errorf("error = %v, want math.format validation error", err)
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "zero config", cfg: Config{}},
		{name: "png format", cfg: Config{Math: MathConfig{Format: "png"}}},
		{name: "uppercase format", cfg: Config{Math: MathConfig{Format: "SVG"}}},
		{name: "bad format", cfg: Config{Math: MathConfig{Format: "gif"}}, wantErr: "math.format"},
		{name: "negative dpi", cfg: Config{Math: MathConfig{DPI: -1}}, wantErr: "math.dpi"},
		{name: "negative font size", cfg: Config{Math: MathConfig{FontSize: -2}}, wantErr: "math.fontSize"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestResolveConfigPath(t *testing.T) {
	dir := t.TempDir()
	origWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(origWD) })

	if err := os.WriteFile("team.yml", []byte("convert:\n  tag: csf\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	path, err := resolveConfigPath("team")
	if err != nil {
		t.Fatalf("resolveConfigPath() error = %v", err)
	}
	if path != "team.yml" {
		t.Errorf("path = %q, want team.yml", path)
	}

	if _, err := resolveConfigPath("missing"); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("error = %v, want ErrConfigNotFound", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
	if cfg.Convert.Tag != "" || cfg.Convert.Highlight {
		t.Errorf("unexpected defaults: %+v", cfg.Convert)
	}
}
