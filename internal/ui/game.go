// Package ui is the windowed frontend. It polls ebiten input, feeds the
// editor controller and draws the canvas next to a sidebar.
package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"

	"pixelpaint/internal/editor"
)

// Sidebar geometry.
const (
	SidebarWidth = 220
	MinHeight    = 640
)

// --- Colors ---
var (
	ColBg      = color.RGBA{0x2b, 0x2b, 0x2b, 0xff} // Dark Grey
	ColPanel   = color.RGBA{0x3a, 0x3a, 0x3a, 0xff}
	ColPaper   = color.RGBA{0xff, 0xff, 0xff, 0xff}
	ColText    = color.RGBA{0xee, 0xee, 0xee, 0xff}
	ColAccent  = color.RGBA{0xff, 0x6b, 0x6b, 0xff}
	ColSelect  = color.RGBA{0x4e, 0xcd, 0xc4, 0xff}
	ColHover   = color.RGBA{0x80, 0x80, 0x80, 0x88}
	ColWarning = color.RGBA{0xff, 0x40, 0x40, 0xff}
)

var face = text.NewGoXFace(basicfont.Face7x13)

// Game holds the frontend state around one controller.
type Game struct {
	ctrl *editor.Controller
	log  *zap.Logger

	width, height int

	// One presentation image per layer, rewritten from the layer
	// surfaces whenever the document revision moves.
	layerImgs []*ebiten.Image
	revision  uint64

	lastCursor image.Point
	stroking   bool
	quit       bool
}

func NewGame(ctrl *editor.Controller, log *zap.Logger) *Game {
	b := ctrl.Doc().Bounds()
	return &Game{
		ctrl:     ctrl,
		log:      log,
		width:    b.Dx() + SidebarWidth,
		height:   max(b.Dy(), MinHeight),
		revision: ^uint64(0),
	}
}

// Update: Logic (60 TPS)
func (g *Game) Update() error {
	g.handleKeys()
	g.handlePointer()
	if g.quit {
		return ebiten.Termination
	}
	return nil
}

// Draw: Rendering (VSync)
func (g *Game) Draw(screen *ebiten.Image) {
	// 1. Clear Screen (Background Color)
	screen.Fill(ColBg)

	// 2. Canvas, bottom layer first
	g.drawCanvas(screen)

	// 3. Sidebar
	g.drawSidebar(screen)
}

// Layout: the logical screen is the canvas plus the sidebar; ebiten
// scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

func (g *Game) canvasRect() image.Rectangle {
	return g.ctrl.Doc().Bounds()
}

// refreshLayers rewrites the presentation images from the layer
// surfaces. Images are recreated when the layer count changes.
func (g *Game) refreshLayers() {
	d := g.ctrl.Doc()
	if g.revision == d.Revision() {
		return
	}
	layers := d.Layers()
	if len(g.layerImgs) != len(layers) {
		for _, img := range g.layerImgs {
			img.Deallocate()
		}
		b := d.Bounds()
		g.layerImgs = make([]*ebiten.Image, len(layers))
		for i := range layers {
			g.layerImgs[i] = ebiten.NewImage(b.Dx(), b.Dy())
		}
	}
	// Both sides are premultiplied RGBA.
	for i, l := range layers {
		g.layerImgs[i].WritePixels(l.Surface.Pix)
	}
	g.revision = d.Revision()
}

func (g *Game) drawCanvas(screen *ebiten.Image) {
	g.refreshLayers()
	r := g.canvasRect()
	vector.DrawFilledRect(screen, 0, 0, float32(r.Dx()), float32(r.Dy()), ColPaper, false)
	for _, img := range g.layerImgs {
		screen.DrawImage(img, &ebiten.DrawImageOptions{})
	}

	// Hovered grid cell
	mx, my := ebiten.CursorPosition()
	if image.Pt(mx, my).In(r) && g.ctrl.Mode() == editor.ModePaint {
		c := g.ctrl.Doc().CellAt(mx, my).Intersect(r)
		vector.StrokeRect(screen, float32(c.Min.X), float32(c.Min.Y), float32(c.Dx()), float32(c.Dy()), 1, ColHover, false)
	}
}

func drawText(dst *ebiten.Image, s string, x, y int, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, face, op)
}
