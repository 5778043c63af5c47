// Package fileutil provides file and path utility functions for the CLI.
package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrNoInputs         = errors.New("no input files given")
	ErrInvalidExtension = errors.New("file must have .md or .markdown extension")
	ErrNoMarkdownFound  = errors.New("no markdown files found")
)

// FileToConvert pairs a Markdown source with its HTML destination.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// DiscoverMarkdown expands the given paths into the list of files to convert.
// A file argument must carry a Markdown extension; a directory argument is
// walked recursively and contributes every Markdown file beneath it, with the
// directory layout mirrored under outputDir when one is set.
func DiscoverMarkdown(paths []string, outputDir string) ([]FileToConvert, error) {
	if len(paths) == 0 {
		return nil, ErrNoInputs
	}

	var files []FileToConvert
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if !IsMarkdownPath(path) {
				return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
			}
			files = append(files, FileToConvert{
				InputPath:  path,
				OutputPath: OutputPath(path, outputDir, ""),
			})
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("scanning %s: %w", p, err)
			}
			if d.IsDir() || !IsMarkdownPath(p) {
				return nil
			}
			files = append(files, FileToConvert{
				InputPath:  p,
				OutputPath: OutputPath(p, outputDir, path),
			})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if len(files) == 0 {
		return nil, ErrNoMarkdownFound
	}
	return files, nil
}

// OutputPath determines the HTML output path for a Markdown file. With no
// outputDir the fragment lands next to its source. When baseInputDir is set,
// the source's position relative to it is mirrored under outputDir.
func OutputPath(inputPath, outputDir, baseInputDir string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base+".html")
	}

	if baseInputDir != "" {
		if relPath, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), base+".html")
		}
	}

	return filepath.Join(outputDir, base+".html")
}

// IsMarkdownPath reports whether the path has a Markdown extension.
func IsMarkdownPath(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".md" || ext == ".markdown"
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
