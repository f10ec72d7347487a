package canvas

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// snap rounds p down to a multiple of cell, toward negative infinity.
func snap(p, cell int) int {
	q := p / cell
	if p%cell != 0 && p < 0 {
		q--
	}
	return q * cell
}

// CellAt returns the full grid cell containing the pixel (x, y). The
// cell may lie partly or wholly outside the canvas.
func (d *Document) CellAt(x, y int) image.Rectangle {
	cx, cy := snap(x, d.cellSize), snap(y, d.cellSize)
	return image.Rect(cx, cy, cx+d.cellSize, cy+d.cellSize)
}

// Paint applies the current tool to the grid cell under (x, y) on the
// active layer and returns the pixels written.
//
// Cells with no pixel inside the canvas are dropped and the returned
// rectangle is empty. Cells straddling the right or bottom edge are
// clipped.
func (d *Document) Paint(x, y int) image.Rectangle {
	r := d.CellAt(x, y).Intersect(d.bounds)
	if r.Empty() {
		return image.Rectangle{}
	}
	var src color.RGBA
	if d.tool == Brush {
		src = d.color
	}
	// Src replaces the pixels, so the eraser restores alpha 0 rather
	// than blending transparent over what is there.
	draw.Draw(d.ActiveLayer().Surface, r, image.NewUniform(src), image.Point{}, draw.Src)
	d.touch()
	return r
}

// Composite clears dst and draws each surface over it, bottom to top,
// with source-over blending.
func Composite(dst draw.Image, surfaces ...image.Image) {
	b := dst.Bounds()
	draw.Draw(dst, b, image.Transparent, image.Point{}, draw.Src)
	for _, s := range surfaces {
		draw.Draw(dst, b, s, b.Min, draw.Over)
	}
}

// Redraw repaints dst from the whole stack.
func (d *Document) Redraw(dst draw.Image) {
	surfaces := make([]image.Image, len(d.layers))
	for i, l := range d.layers {
		surfaces[i] = l.Surface
	}
	Composite(dst, surfaces...)
}
