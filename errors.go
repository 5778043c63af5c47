package md2wiki

import (
	"errors"

	"github.com/go-wikitext/md2wiki/internal/raster"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown = errors.New("markdown content cannot be empty")
	ErrConversion    = errors.New("markdown conversion failed")

	// Converter configuration errors. A misconfigured engine would silently
	// mis-render every document, so these abort construction.
	ErrInvalidPassthroughTag = errors.New("invalid passthrough fence tag")
)

// Rasterizer errors, re-exported so callers match them without importing
// internal packages.
var (
	// ErrRasterUnavailable reports a broken rendering backend. It is
	// recoverable by reconfiguration and distinct from document failures.
	ErrRasterUnavailable = raster.ErrUnavailable
	ErrUnsupportedFormat = raster.ErrUnsupportedFormat
	ErrInvalidDPI        = raster.ErrInvalidDPI
	ErrInvalidFontSize   = raster.ErrInvalidFontSize
)
