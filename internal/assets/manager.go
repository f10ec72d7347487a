// Package assets loads images from disk so they can be imported as
// layers.
package assets

import (
	"bufio"
	"fmt"
	"image"
	"image/gif"
	_ "image/png" // Register PNG format
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

// LoadImage decodes a PNG or GIF file. For an animated GIF only the
// first frame is returned.
func LoadImage(path string) (image.Image, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	defer fh.Close()

	img, _, err := image.Decode(bufio.NewReader(fh))
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}

// LoadFrames decodes path into one full-size image per animation
// frame. Non-GIF files yield a single frame.
func LoadFrames(path string) ([]image.Image, error) {
	if !strings.EqualFold(filepath.Ext(path), ".gif") {
		img, err := LoadImage(path)
		if err != nil {
			return nil, err
		}
		return []image.Image{img}, nil
	}

	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gif %s: %w", path, err)
	}
	defer fh.Close()

	anim, err := gif.DecodeAll(bufio.NewReader(fh))
	if err != nil {
		return nil, fmt.Errorf("decode gif %s: %w", path, err)
	}
	return renderFrames(anim), nil
}

// renderFrames plays anim onto a logical screen and snapshots it after
// every frame, honouring the frame disposal methods.
func renderFrames(anim *gif.GIF) []image.Image {
	bounds := image.Rect(0, 0, anim.Config.Width, anim.Config.Height)
	for _, pm := range anim.Image {
		bounds = bounds.Union(pm.Bounds())
	}
	screen := image.NewRGBA(bounds)
	frames := make([]image.Image, 0, len(anim.Image))

	for i, pm := range anim.Image {
		var restore *image.RGBA
		disposal := byte(0)
		if i < len(anim.Disposal) {
			disposal = anim.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			restore = image.NewRGBA(screen.Bounds())
			copy(restore.Pix, screen.Pix)
		}

		draw.Draw(screen, pm.Bounds(), pm, pm.Bounds().Min, draw.Over)
		snap := image.NewRGBA(screen.Bounds())
		copy(snap.Pix, screen.Pix)
		frames = append(frames, snap)

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(screen, pm.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			copy(screen.Pix, restore.Pix)
		}
	}
	return frames
}
