// Package canvas holds the layer stack of a pixel-art document and the
// grid paint engine that mutates it.
//
// A Document is owned by exactly one frontend and is not safe for
// concurrent use.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Canvas defaults.
const (
	DefaultWidth    = 600
	DefaultHeight   = 400
	DefaultCellSize = 10
)

var (
	ErrCannotRemoveLastLayer = errors.New("cannot remove the last layer")
	ErrNoSuchLayer           = errors.New("no such layer")
)

// Tool selects what Paint writes into a cell.
type Tool int

const (
	Brush Tool = iota
	Eraser
)

func (t Tool) String() string {
	switch t {
	case Brush:
		return "brush"
	case Eraser:
		return "eraser"
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// Layer is one transparent raster surface in the stack.
type Layer struct {
	Name    string
	Surface *image.RGBA
}

func newLayer(name string, bounds image.Rectangle) *Layer {
	return &Layer{Name: name, Surface: image.NewRGBA(bounds)}
}

// Document is the ordered layer stack plus the editing state that
// applies to it. Later layers are drawn on top of earlier ones.
type Document struct {
	bounds   image.Rectangle
	cellSize int

	layers []*Layer
	active int

	tool  Tool
	color color.RGBA

	revision uint64
}

// New creates a document with a single empty layer named "Layer 1".
// Non-positive arguments fall back to the package defaults.
func New(width, height, cellSize int) *Document {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	d := &Document{
		bounds:   image.Rect(0, 0, width, height),
		cellSize: cellSize,
		tool:     Brush,
		color:    color.RGBA{A: 0xff},
	}
	d.AddLayer()
	return d
}

func (d *Document) Bounds() image.Rectangle { return d.bounds }
func (d *Document) CellSize() int           { return d.cellSize }
func (d *Document) Len() int                { return len(d.layers) }
func (d *Document) Active() int             { return d.active }
func (d *Document) ActiveLayer() *Layer     { return d.layers[d.active] }
func (d *Document) Tool() Tool              { return d.tool }
func (d *Document) Color() color.RGBA       { return d.color }

// Revision increases on every mutation that changes what a redraw
// would show.
func (d *Document) Revision() uint64 { return d.revision }

func (d *Document) touch() { d.revision++ }

// Layers returns the stack bottom to top. The slice is a copy; the
// layers are not.
func (d *Document) Layers() []*Layer {
	out := make([]*Layer, len(d.layers))
	copy(out, d.layers)
	return out
}

// Layer returns the layer at index.
func (d *Document) Layer(index int) (*Layer, error) {
	if index < 0 || index >= len(d.layers) {
		return nil, fmt.Errorf("layer %d of %d: %w", index, len(d.layers), ErrNoSuchLayer)
	}
	return d.layers[index], nil
}

func (d *Document) SetTool(t Tool) {
	if t != Brush && t != Eraser {
		return
	}
	d.tool = t
}

// SetColor sets the brush color. Alpha is discarded; the brush always
// paints opaque.
func (d *Document) SetColor(c color.Color) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	d.color = color.RGBA{R: n.R, G: n.G, B: n.B, A: 0xff}
}

// AddLayer appends a transparent layer and makes it active.
func (d *Document) AddLayer() *Layer {
	l := newLayer(fmt.Sprintf("Layer %d", len(d.layers)+1), d.bounds)
	d.push(l)
	return l
}

// ImportLayer appends a layer holding img drawn at the origin and
// clipped to the canvas, and makes it active.
func (d *Document) ImportLayer(name string, img image.Image) *Layer {
	if name == "" {
		name = fmt.Sprintf("Layer %d", len(d.layers)+1)
	}
	l := newLayer(name, d.bounds)
	draw.Draw(l.Surface, d.bounds, img, img.Bounds().Min, draw.Src)
	d.push(l)
	return l
}

func (d *Document) push(l *Layer) {
	d.layers = append(d.layers, l)
	d.active = len(d.layers) - 1
	d.touch()
}

// RemoveLayer deletes the layer at index. The stack never becomes
// empty: removing the only layer returns ErrCannotRemoveLastLayer and
// leaves the document unchanged.
func (d *Document) RemoveLayer(index int) error {
	if len(d.layers) == 1 {
		return ErrCannotRemoveLastLayer
	}
	if _, err := d.Layer(index); err != nil {
		return err
	}
	d.layers = append(d.layers[:index], d.layers[index+1:]...)
	d.active = max(index-1, 0)
	d.touch()
	return nil
}

func (d *Document) RemoveActiveLayer() error {
	return d.RemoveLayer(d.active)
}

// RenameLayer replaces the display name at index. An empty name is
// ignored.
func (d *Document) RenameLayer(index int, name string) error {
	l, err := d.Layer(index)
	if err != nil {
		return err
	}
	if name == "" {
		return nil
	}
	l.Name = name
	d.touch()
	return nil
}

// SelectLayer makes index the active layer. A negative index stands
// for an empty selection; it and any out of range index are ignored.
func (d *Document) SelectLayer(index int) bool {
	if index < 0 || index >= len(d.layers) {
		return false
	}
	d.active = index
	d.touch()
	return true
}
