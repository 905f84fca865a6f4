package render

import (
	"bytes"
	"fmt"
	"html"
	"image"
	"image/color"
	"image/png"
	"math"
	"regexp"
	"strconv"

	"github.com/raykavin/plotforge/pkg/config"
	"github.com/raykavin/plotforge/pkg/core"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// watermarkRatio is the text height as a share of the image height
const watermarkRatio = 0.04

var (
	watermarkAlpha = 0.5
	watermarkColor = color.NRGBA{R: 128, G: 128, B: 128, A: uint8(math.Round(255 * watermarkAlpha))}
)

// Watermark stamps text in the bottom-right corner of a rendered image. JSON
// output and empty text are returned unchanged.
func Watermark(data []byte, format config.Format, text string) ([]byte, error) {
	if text == "" {
		return data, nil
	}

	switch format {
	case config.FormatPNG:
		return watermarkPNG(data, text)
	case config.FormatSVG:
		return watermarkSVG(data, text)
	default:
		return data, nil
	}
}

func watermarkPNG(data []byte, text string) ([]byte, error) {
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &core.RenderError{Stage: "watermark", Err: err}
	}

	bounds := src.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)

	// draw the text once at the font's native size, then scale it up
	face := basicfont.Face7x13
	drawer := &font.Drawer{Face: face, Src: image.NewUniform(watermarkColor)}
	width := drawer.MeasureString(text).Ceil()
	glyphs := image.NewRGBA(image.Rect(0, 0, width, face.Height))
	drawer.Dst = glyphs
	drawer.Dot = fixed.P(0, face.Ascent)
	drawer.DrawString(text)

	scale := math.Max(1, float64(bounds.Dy())*watermarkRatio/float64(face.Height))
	w := int(math.Round(float64(width) * scale))
	h := int(math.Round(float64(face.Height) * scale))
	margin := h / 2

	target := image.Rect(bounds.Max.X-margin-w, bounds.Max.Y-margin-h, bounds.Max.X-margin, bounds.Max.Y-margin)
	draw.BiLinear.Scale(dst, target, glyphs, glyphs.Bounds(), draw.Over, nil)

	var out bytes.Buffer
	if err := png.Encode(&out, dst); err != nil {
		return nil, &core.RenderError{Stage: "watermark", Err: err}
	}
	return out.Bytes(), nil
}

var (
	svgClose  = []byte("</svg>")
	svgWidth  = regexp.MustCompile(`<svg[^>]*\swidth="([0-9.]+)`)
	svgHeight = regexp.MustCompile(`<svg[^>]*\sheight="([0-9.]+)`)
)

func watermarkSVG(data []byte, text string) ([]byte, error) {
	end := bytes.LastIndex(data, svgClose)
	if end < 0 {
		return nil, &core.RenderError{Stage: "watermark", Err: fmt.Errorf("no closing svg tag")}
	}

	width, height := svgSize(data, svgWidth), svgSize(data, svgHeight)
	if width == 0 || height == 0 {
		return nil, &core.RenderError{Stage: "watermark", Err: fmt.Errorf("svg has no width or height")}
	}

	size := math.Max(10, height*watermarkRatio)
	margin := size / 2
	mark := fmt.Sprintf(
		`<text x="%g" y="%g" text-anchor="end" font-family="sans-serif" font-size="%g" fill="#808080" fill-opacity="%g">%s</text>`,
		width-margin, height-margin, size, watermarkAlpha, html.EscapeString(text),
	)

	out := make([]byte, 0, len(data)+len(mark))
	out = append(out, data[:end]...)
	out = append(out, mark...)
	out = append(out, data[end:]...)
	return out, nil
}

func svgSize(data []byte, attr *regexp.Regexp) float64 {
	match := attr.FindSubmatch(data)
	if match == nil {
		return 0
	}
	v, err := strconv.ParseFloat(string(match[1]), 64)
	if err != nil {
		return 0
	}
	return v
}
