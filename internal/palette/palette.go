// Package palette provides the brush color swatches and hex color
// parsing used by the color picker.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var ErrInvalidHex = errors.New("invalid hex color")

// Swatches returns a grid of colors: hues evenly spaced around the
// color wheel at full and reduced value, followed by a grey ramp from
// black to white.
func Swatches(hues, greys int) []color.RGBA {
	out := make([]color.RGBA, 0, 2*hues+greys)
	for _, v := range []float64{1, 0.6} {
		for i := range hues {
			h := 360 * float64(i) / float64(hues)
			out = append(out, rgba(colorful.Hsv(h, 1, v)))
		}
	}
	for i := range greys {
		g := 0.0
		if greys > 1 {
			g = float64(i) / float64(greys-1)
		}
		out = append(out, rgba(colorful.Color{R: g, G: g, B: g}))
	}
	return out
}

// Default is the picker shown by the frontends.
func Default() []color.RGBA { return Swatches(12, 6) }

func rgba(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// ParseHex parses "#rrggbb" or "#rgb"; the leading '#' is optional.
func ParseHex(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return color.RGBA{}, fmt.Errorf("%q: %w", s, ErrInvalidHex)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%q: %w", s, ErrInvalidHex)
	}
	return rgba(c), nil
}

// Hex formats c as "#rrggbb", ignoring alpha.
func Hex(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

// Next returns the swatch after c in p, wrapping around. A color not
// in p moves to the first swatch.
func Next(p []color.RGBA, c color.RGBA) color.RGBA {
	for i, s := range p {
		if s == c {
			return p[(i+1)%len(p)]
		}
	}
	return p[0]
}
