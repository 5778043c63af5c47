// Package raster renders math expressions to image bytes. PNG output draws
// the expression with an embedded font onto a transparent background; SVG
// output produces an equivalent vector document. Rendering is stateless: one
// call, one image, no external resources held afterwards.
package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/math/fixed"
)

// Output formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// Defaults applied when options are zero.
const (
	DefaultDPI      = 100
	DefaultFontSize = 12
)

// Sentinel errors for rasterizer operations.
var (
	// ErrUnavailable distinguishes a broken rendering backend from document
	// errors; callers recover by fixing the installation, not the document.
	ErrUnavailable       = errors.New("math rasterizer unavailable")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrInvalidDPI        = errors.New("dpi must be at least 1")
	ErrInvalidFontSize   = errors.New("font size must be at least 1")
)

// Options configures a single rendering call.
type Options struct {
	Format   string // "png" or "svg"; empty means png
	DPI      int    // output resolution; zero means DefaultDPI
	FontSize int    // point size of the math text; zero means DefaultFontSize
}

// withDefaults fills zero values.
func (o Options) withDefaults() Options {
	if o.Format == "" {
		o.Format = FormatPNG
	}
	if o.DPI == 0 {
		o.DPI = DefaultDPI
	}
	if o.FontSize == 0 {
		o.FontSize = DefaultFontSize
	}
	return o
}

// validate checks option bounds after defaulting.
func (o Options) validate() error {
	if o.DPI < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidDPI, o.DPI)
	}
	if o.FontSize < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidFontSize, o.FontSize)
	}
	switch o.Format {
	case FormatPNG, FormatSVG:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, o.Format)
	}
}

// Render produces an image of the expression rendered as display math.
func Render(expression string, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	text := ApproximateExpression(expression)
	if text == "" {
		text = " "
	}

	switch opts.Format {
	case FormatPNG:
		return renderPNG(text, opts)
	default:
		return renderSVG(text, opts)
	}
}

// renderPNG draws the text with the embedded italic face onto a transparent
// RGBA canvas sized to the measured string.
func renderPNG(text string, opts Options) ([]byte, error) {
	ttf, err := truetype.Parse(goitalic.TTF)
	if err != nil {
		return nil, fmt.Errorf("%w: embedded font is corrupt (%v); reinstall the module", ErrUnavailable, err)
	}

	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    float64(opts.FontSize),
		DPI:     float64(opts.DPI),
		Hinting: font.HintingFull,
	})
	defer func() { _ = face.Close() }()

	drawer := &font.Drawer{
		Src:  image.NewUniform(color.Black),
		Face: face,
	}

	const pad = 2
	width := drawer.MeasureString(text).Ceil() + 2*pad
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	height := ascent + metrics.Descent.Ceil() + 2*pad
	if width < 1 {
		width = 1
	}

	// NewRGBA zeroes the pixel buffer, which is the transparent background.
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	drawer.Dst = canvas
	drawer.Dot = fixed.P(pad, ascent+pad)
	drawer.DrawString(text)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("%w: encoding png: %v", ErrUnavailable, err)
	}
	return buf.Bytes(), nil
}

// svgEscaper covers the characters with markup meaning in SVG text content.
var svgEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// renderSVG emits a minimal vector document with the expression as a single
// text element. Width is estimated from the rune count; vector consumers
// scale freely, so the estimate only affects the default viewport.
func renderSVG(text string, opts Options) ([]byte, error) {
	// Average glyph advance for the italic face is roughly half the em size.
	width := (len([]rune(text))*opts.FontSize + 1) / 2
	if width < opts.FontSize {
		width = opts.FontSize
	}
	height := opts.FontSize * 3 / 2

	var buf bytes.Buffer
	fmt.Fprintf(&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		width, height, width, height)
	fmt.Fprintf(&buf,
		`<text x="0" y="%d" font-family="serif" font-style="italic" font-size="%d">%s</text>`,
		opts.FontSize, opts.FontSize, svgEscaper.Replace(text))
	buf.WriteString(`</svg>`)
	return buf.Bytes(), nil
}
