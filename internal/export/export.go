// Package export flattens a document's layer stack and writes it as a
// PNG or GIF image.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"pixelpaint/internal/canvas"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format is an output image encoding.
type Format string

const (
	PNG Format = "png"
	GIF Format = "gif"
)

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string { return "." + string(f) }

// ParseFormat maps a name or extension ("png", ".GIF") to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return PNG, nil
	case "gif":
		return GIF, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnsupportedFormat)
}

// ResolvePath returns the path to write and the format to write it in.
// A path without an extension gets the requested format's extension; a
// path with a known extension is written in that format.
func ResolvePath(path string, f Format) (string, Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		if _, err := ParseFormat(string(f)); err != nil {
			return "", "", err
		}
		return path + f.Ext(), f, nil
	}
	got, err := ParseFormat(ext)
	if err != nil {
		return "", "", err
	}
	return path, got, nil
}

// Flatten composites every layer of d, bottom to top, onto a new
// transparent image.
func Flatten(d *canvas.Document) *image.RGBA {
	out := image.NewRGBA(d.Bounds())
	d.Redraw(out)
	return out
}

// Scale upscales img by an integer factor with nearest-neighbour
// sampling so cells stay crisp. Factors below 2 return img unchanged.
func Scale(img image.Image, factor int) image.Image {
	if factor < 2 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Encode writes img to w in format f after scaling it by scale.
func Encode(w io.Writer, img image.Image, f Format, scale int) error {
	img = Scale(img, scale)
	switch f {
	case PNG:
		return png.Encode(w, img)
	case GIF:
		return gif.Encode(w, Paletted(img), nil)
	}
	return fmt.Errorf("%q: %w", f, ErrUnsupportedFormat)
}

// SaveFile flattens d and writes it to path. An empty path means the
// user cancelled and nothing is written. The path actually written is
// returned.
func SaveFile(path string, d *canvas.Document, f Format, scale int) (string, error) {
	if path == "" {
		return "", nil
	}
	path, f, err := ResolvePath(path, f)
	if err != nil {
		return "", err
	}
	return path, writeFile(path, func(w io.Writer) error {
		return Encode(w, Flatten(d), f, scale)
	})
}

func writeFile(path string, encode func(io.Writer) error) (err error) {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := fh.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := encode(fh); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// Paletted converts img for GIF output. Index 0 is transparent and
// takes every pixel with alpha below half. If the remaining pixels use
// at most 255 colors they are kept exactly, otherwise the image is
// dithered onto the Plan 9 palette.
func Paletted(img image.Image) *image.Paletted {
	b := img.Bounds()
	pal := color.Palette{color.RGBA{}}
	index := map[color.RGBA]uint8{}
	exact := true

	for y := b.Min.Y; y < b.Max.Y && exact; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c, ok := opaque(img.At(x, y))
			if !ok {
				continue
			}
			if _, seen := index[c]; seen {
				continue
			}
			if len(pal) == 256 {
				exact = false
				break
			}
			index[c] = uint8(len(pal))
			pal = append(pal, c)
		}
	}

	if !exact {
		pal = append(color.Palette{color.RGBA{}}, palette.Plan9[:255]...)
		out := image.NewPaletted(b, pal)
		draw.FloydSteinberg.Draw(out, b, img, b.Min)
		punchTransparent(out, img)
		return out
	}

	out := image.NewPaletted(b, pal)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if c, ok := opaque(img.At(x, y)); ok {
				out.SetColorIndex(x, y, index[c])
			}
		}
	}
	return out
}

// opaque reports the un-premultiplied, fully opaque color of c, or
// false if c is mostly transparent.
func opaque(c color.Color) (color.RGBA, bool) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A < 0x80 {
		return color.RGBA{}, false
	}
	return color.RGBA{R: n.R, G: n.G, B: n.B, A: 0xff}, true
}

func punchTransparent(out *image.Paletted, img image.Image) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, ok := opaque(img.At(x, y)); !ok {
				out.SetColorIndex(x, y, 0)
			}
		}
	}
}
