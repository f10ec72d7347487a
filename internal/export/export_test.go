package export_test

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelpaint/internal/canvas"
	"pixelpaint/internal/export"
)

var (
	black       = color.RGBA{A: 0xff}
	red         = color.RGBA{R: 0xff, A: 0xff}
	transparent = color.RGBA{}
)

func fill(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestParseFormat(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]export.Format{"png": export.PNG, ".PNG": export.PNG, "gif": export.GIF, ".gif": export.GIF} {
		got, err := export.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := export.ParseFormat(".bmp")
	require.ErrorIs(t, err, export.ErrUnsupportedFormat)
}

func TestResolvePath(t *testing.T) {
	t.Parallel()
	tests := []struct {
		path, wantPath string
		format         export.Format
		wantFormat     export.Format
	}{
		{path: "art", format: export.PNG, wantPath: "art.png", wantFormat: export.PNG},
		{path: "art", format: export.GIF, wantPath: "art.gif", wantFormat: export.GIF},
		{path: "art.gif", format: export.PNG, wantPath: "art.gif", wantFormat: export.GIF},
		{path: "dir.v2/art.PNG", format: export.GIF, wantPath: "dir.v2/art.PNG", wantFormat: export.PNG},
	}
	for _, tt := range tests {
		path, f, err := export.ResolvePath(tt.path, tt.format)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.wantPath, path)
		assert.Equal(t, tt.wantFormat, f)
	}

	_, _, err := export.ResolvePath("art.jpg", export.PNG)
	require.ErrorIs(t, err, export.ErrUnsupportedFormat)
}

func TestPNGRoundTripTopLayerWins(t *testing.T) {
	t.Parallel()
	d := canvas.New(20, 20, 10)
	d.AddLayer()
	layers := d.Layers()
	fill(layers[0].Surface, image.Rect(0, 0, 10, 10), black)
	fill(layers[1].Surface, image.Rect(5, 5, 15, 15), red)

	path := filepath.Join(t.TempDir(), "out")
	written, err := export.SaveFile(path, d, export.PNG, 1)
	require.NoError(t, err)
	assert.Equal(t, path+".png", written)

	fh, err := os.Open(written)
	require.NoError(t, err)
	defer fh.Close()
	img, err := png.Decode(fh)
	require.NoError(t, err)

	assert.Equal(t, d.Bounds(), img.Bounds())
	assert.Equal(t, black, rgbaAt(img, 0, 0))
	assert.Equal(t, black, rgbaAt(img, 4, 9))
	assert.Equal(t, black, rgbaAt(img, 9, 4))
	assert.Equal(t, red, rgbaAt(img, 5, 5))
	assert.Equal(t, red, rgbaAt(img, 9, 9))
	assert.Equal(t, red, rgbaAt(img, 14, 14))
	assert.Equal(t, transparent, rgbaAt(img, 15, 15))
	assert.Equal(t, transparent, rgbaAt(img, 12, 2))
}

func TestPaintedLayersFlatten(t *testing.T) {
	t.Parallel()
	d := canvas.New(20, 20, 10)
	d.Paint(0, 0)
	d.AddLayer()
	d.SetColor(red)
	d.Paint(15, 5)

	img := export.Flatten(d)
	assert.Equal(t, black, img.RGBAAt(9, 9))
	assert.Equal(t, red, img.RGBAAt(10, 0))
	assert.Equal(t, transparent, img.RGBAAt(0, 10))
}

func TestSaveFileCancelled(t *testing.T) {
	t.Parallel()
	written, err := export.SaveFile("", canvas.New(10, 10, 10), export.PNG, 1)
	require.NoError(t, err)
	assert.Empty(t, written)
}

func TestSaveFileUnwritable(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "missing", "art.png")
	_, err := export.SaveFile(path, canvas.New(10, 10, 10), export.PNG, 1)
	require.Error(t, err)
}

func TestScale(t *testing.T) {
	t.Parallel()
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.SetRGBA(1, 0, red)

	out := export.Scale(src, 3)
	require.Equal(t, image.Rect(0, 0, 6, 3), out.Bounds())
	assert.Equal(t, transparent, rgbaAt(out, 2, 2))
	assert.Equal(t, red, rgbaAt(out, 3, 0))
	assert.Equal(t, red, rgbaAt(out, 5, 2))

	assert.Same(t, src, export.Scale(src, 1))
}

func TestGIFKeepsTransparencyAndColors(t *testing.T) {
	t.Parallel()
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	fill(src, image.Rect(0, 0, 2, 2), red)
	fill(src, image.Rect(2, 2, 4, 4), black)

	var buf bytes.Buffer
	require.NoError(t, export.Encode(&buf, src, export.GIF, 1))
	img, err := gif.Decode(&buf)
	require.NoError(t, err)

	pm, ok := img.(*image.Paletted)
	require.True(t, ok)
	assert.Equal(t, uint8(0), pm.ColorIndexAt(3, 0))
	assert.Len(t, export.Paletted(src).Palette, 3)
	assert.Equal(t, transparent, rgbaAt(img, 3, 0))
	assert.Equal(t, red, rgbaAt(img, 1, 1))
	assert.Equal(t, black, rgbaAt(img, 3, 3))
}

func TestGIFManyColorsFallsBackToPlan9(t *testing.T) {
	t.Parallel()
	src := image.NewRGBA(image.Rect(0, 0, 32, 16))
	for y := range 16 {
		for x := range 32 {
			src.SetRGBA(x, y, color.RGBA{R: uint8(x * 8), G: uint8(y * 16), B: 0x40, A: 0xff})
		}
	}
	src.SetRGBA(0, 0, transparent)

	pm := export.Paletted(src)
	assert.Len(t, pm.Palette, 256)
	assert.Equal(t, uint8(0), pm.ColorIndexAt(0, 0))
	assert.NotEqual(t, uint8(0), pm.ColorIndexAt(31, 15))
}

func TestEncodeUnknownFormat(t *testing.T) {
	t.Parallel()
	err := export.Encode(&bytes.Buffer{}, image.NewRGBA(image.Rect(0, 0, 1, 1)), export.Format("bmp"), 1)
	require.ErrorIs(t, err, export.ErrUnsupportedFormat)
}
