package md2wiki

import (
	"github.com/go-wikitext/md2wiki/internal/raster"
)

// Raster output formats.
const (
	FormatPNG = raster.FormatPNG
	FormatSVG = raster.FormatSVG
)

// Raster defaults.
const (
	DefaultRasterDPI      = raster.DefaultDPI
	DefaultRasterFontSize = raster.DefaultFontSize
)

// RasterOption customizes a RenderMath call.
type RasterOption func(*raster.Options)

// WithRasterFormat selects the output format, FormatPNG or FormatSVG.
func WithRasterFormat(format string) RasterOption {
	return func(o *raster.Options) { o.Format = format }
}

// WithRasterDPI sets the output resolution. Must be at least 1.
func WithRasterDPI(dpi int) RasterOption {
	return func(o *raster.Options) { o.DPI = dpi }
}

// WithRasterFontSize sets the point size of the math text. Must be at least 1.
func WithRasterFontSize(size int) RasterOption {
	return func(o *raster.Options) { o.FontSize = size }
}

// RenderMath produces a transparent-background image of a LaTeX-like math
// expression, for page-assembly code that replaces math divs with attached
// images. The call is stateless and bounded; errors satisfying
// errors.Is(err, ErrRasterUnavailable) indicate a broken rendering backend
// rather than a bad expression.
func RenderMath(expression string, opts ...RasterOption) ([]byte, error) {
	var options raster.Options
	for _, opt := range opts {
		opt(&options)
	}
	return raster.Render(expression, options)
}
