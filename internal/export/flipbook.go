package export

import (
	"fmt"
	"image"
	"image/gif"
	"io"

	"pixelpaint/internal/canvas"
)

// DefaultFrameDelay is the flipbook delay per frame, in 100ths of a second.
const DefaultFrameDelay = 25

// Frames returns one image per layer. Frame i is the stack flattened up
// to and including layer i, so playing the frames builds the picture up
// layer by layer.
func Frames(d *canvas.Document) []*image.RGBA {
	layers := d.Layers()
	frames := make([]*image.RGBA, len(layers))
	surfaces := make([]image.Image, 0, len(layers))
	for i, l := range layers {
		surfaces = append(surfaces, l.Surface)
		frames[i] = image.NewRGBA(d.Bounds())
		canvas.Composite(frames[i], surfaces...)
	}
	return frames
}

// Flipbook writes the frames of d as a looping animated GIF.
func Flipbook(w io.Writer, d *canvas.Document, delay, scale int) error {
	if delay <= 0 {
		delay = DefaultFrameDelay
	}
	frames := Frames(d)
	anim := &gif.GIF{
		Image:    make([]*image.Paletted, len(frames)),
		Delay:    make([]int, len(frames)),
		Disposal: make([]byte, len(frames)),
	}
	for i, f := range frames {
		anim.Image[i] = Paletted(Scale(f, scale))
		anim.Delay[i] = delay
		// Each frame is a full composite, so the previous one must be
		// cleared for transparent pixels to show through.
		anim.Disposal[i] = gif.DisposalBackground
	}
	return gif.EncodeAll(w, anim)
}

// SaveFlipbook writes the flipbook of d to path. The extension
// must be .gif or absent. An empty path is a no-op.
func SaveFlipbook(path string, d *canvas.Document, delay, scale int) (string, error) {
	if path == "" {
		return "", nil
	}
	path, f, err := ResolvePath(path, GIF)
	if err != nil {
		return "", err
	}
	if f != GIF {
		return "", fmt.Errorf("flipbook %s: %w", path, ErrUnsupportedFormat)
	}
	return path, writeFile(path, func(w io.Writer) error {
		return Flipbook(w, d, delay, scale)
	})
}
