package main

import (
	"errors"
	"os"

	md2wiki "github.com/go-wikitext/md2wiki"
	"github.com/go-wikitext/md2wiki/internal/config"
	"github.com/go-wikitext/md2wiki/internal/fileutil"
)

// Exit codes for md2wiki CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitConvert = 4 // Engine or rasterizer errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Engine/rasterizer errors (exit 4)
	if errors.Is(err, md2wiki.ErrConversion) ||
		errors.Is(err, md2wiki.ErrRasterUnavailable) {
		return ExitConvert
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteFragment) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, fileutil.ErrNoMarkdownFound) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, md2wiki.ErrEmptyMarkdown) ||
		errors.Is(err, md2wiki.ErrInvalidPassthroughTag) ||
		errors.Is(err, md2wiki.ErrUnsupportedFormat) ||
		errors.Is(err, md2wiki.ErrInvalidDPI) ||
		errors.Is(err, md2wiki.ErrInvalidFontSize) ||
		errors.Is(err, fileutil.ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) {
		return ExitUsage
	}

	return ExitGeneral
}
