// ABOUTME: Translates chart scenes into output formats: SVG markup, an HTML fragment with overlays, or a PNG image.
// ABOUTME: Provides Render as the single entry point plus the style palette shared by every surface.
package render

import (
	"context"
	"fmt"

	"github.com/2389-research/youdrawit/chart"
)

// Output formats understood by Render.
const (
	FormatSVG  = "svg"
	FormatHTML = "html"
	FormatPNG  = "png"
)

// Style colors keyed by segment class.
const (
	ColorPrimary   = "#333333" // near black
	ColorSecondary = "#d32f2f" // red
	ColorUser      = "#1e88e5" // blue
	ColorGrid      = "#dddddd"
	ColorHighlight = "#999999"
)

// styleColor returns the stroke color for a style class such as "primary".
func styleColor(class string) string {
	switch class {
	case "secondary":
		return ColorSecondary
	default:
		return ColorPrimary
	}
}

// ContentType returns the MIME type for format.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatPNG:
		return "image/png"
	default:
		return "application/octet-stream"
	}
}

// Render produces scene output in the specified format.
// Supported formats: "svg", "html" and "png".
func Render(ctx context.Context, scene chart.Scene, format string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch format {
	case FormatSVG:
		return []byte(SVG(scene)), nil
	case FormatHTML:
		return []byte(HTML(scene)), nil
	case FormatPNG:
		return PNG(scene)
	default:
		return nil, fmt.Errorf("unsupported format %q: supported formats are svg, html, png", format)
	}
}
