package ui

import (
	"image"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"pixelpaint/internal/canvas"
	"pixelpaint/internal/editor"
	"pixelpaint/internal/palette"
)

const (
	pad         = 10
	swatchCols  = 6
	swatchW     = 30
	swatchH     = 14
	swatchGap   = 3
	layerRowH   = 18
	swatchTop   = 78
	layerTop    = 242
	buttonH     = 20
	buttonWidth = 62
)

type button struct {
	rect  image.Rectangle
	label string
	cmd   editor.Command
}

func (g *Game) sidebarX() int { return g.canvasRect().Dx() + pad }

func (g *Game) buttons() []button {
	x := g.sidebarX()
	row := func(y int, specs ...button) []button {
		for i := range specs {
			bx := x + i*(buttonWidth+4)
			specs[i].rect = image.Rect(bx, y, bx+buttonWidth, y+buttonH)
		}
		return specs
	}
	var out []button
	out = append(out, row(28,
		button{label: "Brush", cmd: editor.CmdBrush},
		button{label: "Eraser", cmd: editor.CmdEraser},
	)...)
	out = append(out, row(172,
		button{label: "Add", cmd: editor.CmdAddLayer},
		button{label: "Remove", cmd: editor.CmdRemoveLayer},
		button{label: "Rename", cmd: editor.CmdRename},
	)...)
	out = append(out, row(196,
		button{label: "PNG", cmd: editor.CmdExportPNG},
		button{label: "GIF", cmd: editor.CmdExportGIF},
		button{label: "Hex", cmd: editor.CmdHexColor},
	)...)
	return out
}

func (g *Game) swatchRect(i int) image.Rectangle {
	x := g.sidebarX() + (i%swatchCols)*(swatchW+swatchGap)
	y := swatchTop + (i/swatchCols)*(swatchH+swatchGap)
	return image.Rect(x, y, x+swatchW, y+swatchH)
}

func (g *Game) layerRect(i int) image.Rectangle {
	x := g.sidebarX()
	y := layerTop + i*layerRowH
	return image.Rect(x, y, x+SidebarWidth-2*pad, y+layerRowH)
}

// click handles a press outside the canvas.
func (g *Game) click(p image.Point) {
	for _, b := range g.buttons() {
		if p.In(b.rect) {
			g.ctrl.Do(b.cmd)
			return
		}
	}
	if g.ctrl.Mode() != editor.ModePaint {
		return
	}
	for i, c := range g.ctrl.Swatches() {
		if p.In(g.swatchRect(i)) {
			g.ctrl.PickColor(c)
			return
		}
	}
	for i := range g.ctrl.Doc().Len() {
		if p.In(g.layerRect(i)) {
			g.ctrl.SelectLayer(i)
			return
		}
	}
}

func fillRect(dst *ebiten.Image, r image.Rectangle, clr color.Color) {
	vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), clr, false)
}

func strokeRect(dst *ebiten.Image, r image.Rectangle, clr color.Color) {
	vector.StrokeRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 1, clr, false)
}

func (g *Game) drawSidebar(screen *ebiten.Image) {
	d := g.ctrl.Doc()
	x := g.sidebarX()
	fillRect(screen, image.Rect(x-pad, 0, g.width, g.height), ColPanel)

	drawText(screen, "Pixel Painting", x, 8, ColText)

	for _, b := range g.buttons() {
		fill := ColBg
		if (b.cmd == editor.CmdBrush && d.Tool() == canvas.Brush) ||
			(b.cmd == editor.CmdEraser && d.Tool() == canvas.Eraser) {
			fill = ColSelect
		}
		fillRect(screen, b.rect, fill)
		drawText(screen, b.label, b.rect.Min.X+6, b.rect.Min.Y+4, ColText)
	}

	drawText(screen, "Color", x, 56, ColText)
	cur := image.Rect(x+50, 54, x+74, 70)
	fillRect(screen, cur, d.Color())
	strokeRect(screen, cur, ColText)
	drawText(screen, palette.Hex(d.Color()), x+82, 56, ColText)

	for i, c := range g.ctrl.Swatches() {
		r := g.swatchRect(i)
		fillRect(screen, r, c)
		if c == d.Color() {
			strokeRect(screen, r.Inset(-1), ColAccent)
		}
	}

	drawText(screen, "Layers", x, layerTop-18, ColText)
	for i, l := range d.Layers() {
		r := g.layerRect(i)
		if i == d.Active() {
			fillRect(screen, r, ColSelect)
		}
		drawText(screen, l.Name, r.Min.X+4, r.Min.Y+2, ColText)
	}

	y := layerTop + d.Len()*layerRowH + 8
	if m := g.ctrl.Mode(); m != editor.ModePaint {
		drawText(screen, m.Prompt(), x, y, ColAccent)
		field := image.Rect(x, y+16, x+SidebarWidth-2*pad, y+34)
		fillRect(screen, field, ColBg)
		strokeRect(screen, field, ColAccent)
		drawText(screen, tail(g.ctrl.Input(), 27)+"_", x+3, y+19, ColText)
		y += 40
	}
	if w := g.ctrl.Warning(); w != "" {
		for _, line := range wrap(w, 28) {
			drawText(screen, line, x, y, ColWarning)
			y += 16
		}
	}
	if s := g.ctrl.Status(); s != "" {
		drawText(screen, tail(s, 28), x, y, ColText)
	}

	help := strings.ReplaceAll(editor.Help, "  ", "\n")
	ebitenutil.DebugPrintAt(screen, help, x, g.height-16*(strings.Count(help, "\n")+1)-4)
}

// tail keeps the last n runes of s so the cursor end stays visible.
func tail(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}

func wrap(s string, n int) []string {
	var lines []string
	r := []rune(s)
	for len(r) > n {
		lines = append(lines, string(r[:n]))
		r = r[n:]
	}
	return append(lines, string(r))
}
