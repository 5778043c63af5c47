package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	md2wiki "github.com/go-wikitext/md2wiki"
	"github.com/go-wikitext/md2wiki/internal/config"
	flag "github.com/spf13/pflag"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Engine   engineInfo `json:"engine"`
	Math     mathInfo   `json:"math"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// engineInfo holds conversion engine check results.
type engineInfo struct {
	Ready          bool   `json:"ready"`
	PassthroughTag string `json:"passthrough_tag"`
}

// mathInfo holds math rasterizer check results.
type mathInfo struct {
	PNG      bool   `json:"png"`
	SVG      bool   `json:"svg"`
	Format   string `json:"format"`
	DPI      int    `json:"dpi"`
	FontSize int    `json:"font_size"`
}

// envInfo holds runtime environment information.
type envInfo struct {
	OS       string `json:"os"`
	Arch     string `json:"arch"`
	MaxProcs int    `json:"max_procs"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	flags, err := parseDoctorFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	cfg := config.DefaultConfig()
	if flags.config != "" {
		cfg, err = config.LoadConfig(flags.config)
		if err != nil {
			fmt.Fprintln(env.Stderr, err)
			return exitCodeFor(err)
		}
	}
	mergeDoctorFlags(flags, cfg)

	result := runDoctor(cfg)

	if flags.jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// mergeDoctorFlags merges CLI flags into config. CLI values override config values.
func mergeDoctorFlags(flags *doctorFlags, cfg *config.Config) {
	if flags.mathFormat != "" {
		cfg.Math.Format = flags.mathFormat
	}
	if flags.mathDPI != 0 {
		cfg.Math.DPI = flags.mathDPI
	}
	if flags.mathFontSize != 0 {
		cfg.Math.FontSize = flags.mathFontSize
	}
}

// runDoctor performs all diagnostic checks.
func runDoctor(cfg *config.Config) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:       runtime.GOOS,
			Arch:     runtime.GOARCH,
			MaxProcs: runtime.GOMAXPROCS(0),
		},
	}

	checkEngine(result, cfg)
	checkMath(result, cfg)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkEngine verifies that a converter can be built and produces output.
func checkEngine(result *doctorResult, cfg *config.Config) {
	tag := cfg.Convert.Tag
	if tag == "" {
		tag = md2wiki.DefaultPassthroughTag
	}
	result.Engine.PassthroughTag = tag

	var opts []md2wiki.Option
	if cfg.Convert.Tag != "" {
		opts = append(opts, md2wiki.WithPassthroughTag(cfg.Convert.Tag))
	}
	if cfg.Convert.Highlight {
		opts = append(opts, md2wiki.WithHighlighting())
	}

	conv, err := md2wiki.NewConverter(opts...)
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Conversion engine not usable: %v", err))
		return
	}

	out, err := conv.Convert(context.Background(), "# heading\n\n- item\n")
	if err != nil || out == "" {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Conversion check failed: %v", err))
		return
	}

	result.Engine.Ready = true
}

// checkMath exercises the math rasterizer in both output formats.
func checkMath(result *doctorResult, cfg *config.Config) {
	format := strings.ToLower(cfg.Math.Format)
	if format == "" {
		format = md2wiki.FormatPNG
	}
	result.Math.Format = format
	result.Math.DPI = cfg.Math.DPI
	result.Math.FontSize = cfg.Math.FontSize
	if result.Math.DPI == 0 {
		result.Math.DPI = md2wiki.DefaultRasterDPI
	}
	if result.Math.FontSize == 0 {
		result.Math.FontSize = md2wiki.DefaultRasterFontSize
	}

	render := func(f string) error {
		_, err := md2wiki.RenderMath(`x^2`,
			md2wiki.WithRasterFormat(f),
			md2wiki.WithRasterDPI(result.Math.DPI),
			md2wiki.WithRasterFontSize(result.Math.FontSize),
		)
		return err
	}

	if err := render(md2wiki.FormatPNG); err == nil {
		result.Math.PNG = true
	} else if format == md2wiki.FormatPNG {
		result.Errors = append(result.Errors,
			fmt.Sprintf("PNG math rendering failed: %v", err))
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("PNG math rendering failed: %v", err))
	}

	if err := render(md2wiki.FormatSVG); err == nil {
		result.Math.SVG = true
	} else if format == md2wiki.FormatSVG {
		result.Errors = append(result.Errors,
			fmt.Sprintf("SVG math rendering failed: %v", err))
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("SVG math rendering failed: %v", err))
	}
}

// checkSystem verifies system requirements.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "md2wiki-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		result.System.TempWritable = true
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "md2wiki doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Engine")
	if r.Engine.Ready {
		fmt.Fprintln(w, "  [OK] Markdown conversion: working")
		fmt.Fprintf(w, "  [OK] Passthrough tag: %s\n", r.Engine.PassthroughTag)
	} else {
		fmt.Fprintln(w, "  [ERROR] Markdown conversion: not working")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Math")
	if r.Math.PNG {
		fmt.Fprintf(w, "  [OK] PNG rendering (dpi %d, %dpt)\n", r.Math.DPI, r.Math.FontSize)
	} else {
		fmt.Fprintln(w, "  [ERROR] PNG rendering: failed")
	}
	if r.Math.SVG {
		fmt.Fprintln(w, "  [OK] SVG rendering")
	} else {
		fmt.Fprintln(w, "  [ERROR] SVG rendering: failed")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	fmt.Fprintf(w, "  [OK] GOMAXPROCS: %d\n", r.Env.MaxProcs)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to convert")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
