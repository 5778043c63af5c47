package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/go-wikitext/md2wiki/internal/config"
)

func TestRunDoctor(t *testing.T) {
	result := runDoctor(config.DefaultConfig())

	if result.Status != "ready" {
		t.Errorf("status = %q, want ready (errors: %v, warnings: %v)",
			result.Status, result.Errors, result.Warnings)
	}
	if !result.Engine.Ready {
		t.Error("engine should be ready")
	}
	if result.Engine.PassthroughTag != "csf" {
		t.Errorf("tag = %q, want csf", result.Engine.PassthroughTag)
	}
	if !result.Math.PNG || !result.Math.SVG {
		t.Errorf("math checks failed: %+v", result.Math)
	}
	if !result.System.TempWritable {
		t.Error("temp dir should be writable")
	}
}

func TestRunDoctorWithConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Convert.Tag = "latex"
	cfg.Math.Format = "svg"
	cfg.Math.DPI = 150
	cfg.Math.FontSize = 14

	result := runDoctor(cfg)
	if result.Engine.PassthroughTag != "latex" {
		t.Errorf("tag = %q, want latex", result.Engine.PassthroughTag)
	}
	if result.Math.Format != "svg" || result.Math.DPI != 150 || result.Math.FontSize != 14 {
		t.Errorf("unexpected math info: %+v", result.Math)
	}
}

func TestRunDoctorCmd(t *testing.T) {
	t.Run("human readable", func(t *testing.T) {
		env, stdout, _ := testEnv()
		code := runDoctorCmd(nil, env)
		if code != ExitSuccess {
			t.Errorf("exit code = %d, want %d", code, ExitSuccess)
		}
		out := stdout.String()
		for _, want := range []string{"md2wiki doctor", "Engine", "Math", "Status: Ready to convert"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("json output", func(t *testing.T) {
		env, stdout, _ := testEnv()
		code := runDoctorCmd([]string{"--json"}, env)
		if code != ExitSuccess {
			t.Errorf("exit code = %d, want %d", code, ExitSuccess)
		}
		var result doctorResult
		if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
			t.Fatalf("output is not valid JSON: %v\n%s", err, stdout.String())
		}
		if result.Status != "ready" {
			t.Errorf("status = %q, want ready", result.Status)
		}
	})

	t.Run("invalid flag", func(t *testing.T) {
		env, _, _ := testEnv()
		if code := runDoctorCmd([]string{"--bogus"}, env); code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
	})
}

func TestMergeDoctorFlags(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Math.Format = "png"

	mergeDoctorFlags(&doctorFlags{mathFormat: "svg", mathDPI: 200}, cfg)
	if cfg.Math.Format != "svg" || cfg.Math.DPI != 200 {
		t.Errorf("unexpected merge result: %+v", cfg.Math)
	}

	cfg2 := config.DefaultConfig()
	cfg2.Math.Format = "png"
	mergeDoctorFlags(&doctorFlags{}, cfg2)
	if cfg2.Math.Format != "png" {
		t.Errorf("unset flags should not override config: %+v", cfg2.Math)
	}
}
