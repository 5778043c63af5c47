package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	md2wiki "github.com/go-wikitext/md2wiki"
	"github.com/go-wikitext/md2wiki/internal/config"
	"github.com/go-wikitext/md2wiki/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrReadMarkdown       = errors.New("failed to read markdown file")
	ErrWriteFragment      = errors.New("failed to write html fragment")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// maxWorkers caps --workers to keep goroutine counts sane.
const maxWorkers = 64

// CLIConverter is the interface for the conversion pipeline.
type CLIConverter interface {
	Convert(ctx context.Context, content string) (string, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*md2wiki.Converter)(nil)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	// Load configuration
	cfg := config.DefaultConfig()
	var err error
	if flags.common.config != "" {
		cfg, err = config.LoadConfig(flags.common.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// Merge CLI flags into config (CLI wins)
	mergeFlags(flags, cfg)

	inputs, err := resolveInputs(positionalArgs, cfg)
	if err != nil {
		return err
	}

	outputDir := resolveOutputDir(flags.output, cfg)

	files, err := fileutil.DiscoverMarkdown(inputs, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}

	conv, err := md2wiki.NewConverter(buildOptions(cfg)...)
	if err != nil {
		return err
	}

	workers := resolveWorkers(flags.workers, len(files))
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Converting %d file(s) with %d worker(s)\n", len(files), workers)
	}

	results := convertBatch(ctx, conv, files, workers)

	failedCount := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		return fmt.Errorf("%d conversion(s) failed", failedCount)
	}

	return nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.tag != "" {
		cfg.Convert.Tag = flags.tag
	}
	if flags.highlight {
		cfg.Convert.Highlight = true
	}
}

// resolveInputs determines the input paths from args or config.
func resolveInputs(args []string, cfg *config.Config) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if cfg.Input.DefaultDir != "" {
		return []string{cfg.Input.DefaultDir}, nil
	}
	return nil, ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// buildOptions translates config into converter options.
func buildOptions(cfg *config.Config) []md2wiki.Option {
	var opts []md2wiki.Option
	if cfg.Convert.Tag != "" {
		opts = append(opts, md2wiki.WithPassthroughTag(cfg.Convert.Tag))
	}
	if cfg.Convert.Highlight {
		opts = append(opts, md2wiki.WithHighlighting())
	}
	return opts
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > maxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, maxWorkers)
	}
	return nil
}

// resolveWorkers maps the --workers flag to an effective concurrency level.
func resolveWorkers(n, fileCount int) int {
	if n == 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n > fileCount {
		n = fileCount
	}
	if n < 1 {
		n = 1
	}
	return n
}

// convertBatch processes files concurrently. The converter serializes engine
// access internally, so all workers share the single instance.
func convertBatch(ctx context.Context, conv CLIConverter, files []fileutil.FileToConvert, workers int) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx])
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv CLIConverter, f fileutil.FileToConvert) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		result.Duration = time.Since(start)
		return result
	}

	fragment, err := conv.Convert(ctx, string(content))
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		result.Err = fmt.Errorf("creating output directory: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	// #nosec G306 -- fragments are meant to be readable
	if err := os.WriteFile(f.OutputPath, []byte(fragment), filePermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWriteFragment, err)
		result.Duration = time.Since(start)
		return result
	}

	result.Duration = time.Since(start)
	return result
}

// printResults outputs conversion results and returns the failure count.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	var succeeded, failed int

	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		succeeded++
		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	return failed
}
