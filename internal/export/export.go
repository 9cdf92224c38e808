// Package export rasterizes generated images onto a sized canvas and
// serializes them for download.
package export

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"math"

	xdraw "golang.org/x/image/draw"

	"server/internal/domain"
	"server/internal/imgio"
)

// Quality names an export tier.
type Quality string

const (
	QualityStandard Quality = "standard"
	QualityHigh     Quality = "high"
	QualityMaximum  Quality = "maximum"
)

// Format is the serialization target.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

type preset struct {
	resolution  int
	jpegQuality int
}

// Tiers map a quality name to the long-edge resolution and, for JPEG, the
// compression quality.
var tiers = map[Quality]preset{
	QualityStandard: {resolution: 1024, jpegQuality: 85},
	QualityHigh:     {resolution: 1500, jpegQuality: 92},
	QualityMaximum:  {resolution: 1500, jpegQuality: 100},
}

// NormalizeQuality sanitizes free-form input; unknown tiers become standard.
func NormalizeQuality(s string) Quality {
	switch Quality(s) {
	case QualityHigh:
		return QualityHigh
	case QualityMaximum:
		return QualityMaximum
	default:
		return QualityStandard
	}
}

// NormalizeFormat defaults to PNG, the provider's native output format.
func NormalizeFormat(s string) Format {
	if Format(s) == FormatJPEG || s == "jpg" {
		return FormatJPEG
	}
	return FormatPNG
}

// Resolution returns the long-edge resolution of a tier.
func Resolution(q Quality) int {
	return tiers[q].resolution
}

// ComputeDimensions derives exact pixel output for a tier resolution and
// aspect ratio. Landscape and square ratios pin the width to the resolution;
// portrait ratios pin the height. Rounding is half-up to keep parity with
// the original canvas math.
func ComputeDimensions(resolution int, aspect domain.AspectRatio) (width, height int) {
	w, h := aspect.Terms()
	if aspect.Portrait() {
		height = resolution
		width = int(math.Round(float64(resolution) * float64(w) / float64(h)))
		return width, height
	}
	width = resolution
	height = int(math.Round(float64(resolution) * float64(h) / float64(w)))
	return width, height
}

// Options configures a render.
type Options struct {
	Quality Quality
	Aspect  domain.AspectRatio
	Format  Format
}

// Render decodes the base64 source image, scales it onto a freshly sized
// canvas of the computed dimensions, and serializes it in the requested
// format. Decode failures surface as domain.ErrDecode, serialization
// failures as domain.ErrRender.
func Render(b64 string, opts Options) ([]byte, error) {
	src, err := imgio.Decode(b64, "", "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}
	img, _, err := image.Decode(bytes.NewReader(src.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}

	tier := tiers[NormalizeQuality(string(opts.Quality))]
	width, height := ComputeDimensions(tier.resolution, opts.Aspect)
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(canvas, canvas.Bounds(), img, img.Bounds(), xdraw.Over, nil)

	buf := new(bytes.Buffer)
	switch NormalizeFormat(string(opts.Format)) {
	case FormatJPEG:
		err = jpeg.Encode(buf, canvas, &jpeg.Options{Quality: tier.jpegQuality})
	default:
		err = png.Encode(buf, canvas)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRender, err)
	}
	return buf.Bytes(), nil
}

// MIME returns the content type for a format.
func MIME(f Format) string {
	if f == FormatJPEG {
		return "image/jpeg"
	}
	return "image/png"
}
