// Package tui is the terminal frontend. Each terminal cell shows one
// grid cell of the canvas; the mouse paints and the sidebar lists the
// layers.
package tui

import (
	"context"
	"image"
	"image/color"
	"strings"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"pixelpaint/internal/editor"
	"pixelpaint/internal/palette"
)

const (
	sidebarGap   = 2
	layerListRow = 5
)

var (
	styleText    = tcell.StyleDefault
	styleTitle   = tcell.StyleDefault.Bold(true)
	styleActive  = tcell.StyleDefault.Reverse(true)
	styleWarning = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	stylePrompt  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	paper        = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

type App struct {
	screen tcell.Screen
	ctrl   *editor.Controller
	log    *zap.Logger

	// flat is the cached composite, rebuilt when the document
	// revision moves.
	flat     *image.RGBA
	revision uint64

	held bool
}

func New(screen tcell.Screen, ctrl *editor.Controller, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		screen:   screen,
		ctrl:     ctrl,
		log:      log,
		revision: ^uint64(0),
	}
}

// gridSize is the canvas size in terminal cells.
func (a *App) gridSize() (cols, rows int) {
	d := a.ctrl.Doc()
	cs := d.CellSize()
	b := d.Bounds()
	return (b.Dx() + cs - 1) / cs, (b.Dy() + cs - 1) / cs
}

func (a *App) sidebarX() int {
	cols, _ := a.gridSize()
	return cols + sidebarGap
}

// Run draws and handles events until the user quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event)
	go a.screen.ChannelEvents(events, ctx.Done())

	a.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if a.HandleEvent(ev) {
				return nil
			}
			a.Draw()
		}
	}
}

// HandleEvent applies one terminal event and reports whether the
// application should exit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventMouse:
		a.mouse(ev)
	case *tcell.EventKey:
		return a.key(ev)
	}
	return false
}

func (a *App) mouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	pressed := ev.Buttons()&tcell.Button1 != 0
	cols, rows := a.gridSize()
	cs := a.ctrl.Doc().CellSize()
	onCanvas := x < cols && y < rows

	switch {
	case pressed && !a.held:
		a.held = true
		if onCanvas {
			a.ctrl.PointerDown(x*cs, y*cs)
			return
		}
		a.click(x, y)
	case pressed:
		a.ctrl.PointerMove(x*cs, y*cs)
	case a.held:
		a.held = false
		a.ctrl.PointerUp()
	}
}

// click handles a press on the sidebar.
func (a *App) click(x, y int) {
	sx := a.sidebarX()
	if x < sx {
		return
	}
	if y == 2 {
		sw := a.ctrl.Swatches()
		if i := x - sx; i < len(sw) {
			a.ctrl.PickColor(sw[i])
		}
		return
	}
	if i := y - layerListRow; i >= 0 && i < a.ctrl.Doc().Len() {
		a.ctrl.SelectLayer(i)
	}
}

func (a *App) key(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}
	if a.ctrl.Mode() != editor.ModePaint {
		switch ev.Key() {
		case tcell.KeyEnter:
			if err := a.ctrl.Submit(); err != nil {
				a.log.Debug("prompt", zap.Error(err))
			}
		case tcell.KeyEscape:
			a.ctrl.Cancel()
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			a.ctrl.Backspace()
		case tcell.KeyRune:
			a.ctrl.Type(ev.Rune())
		}
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		a.ctrl.DismissWarning()
	case tcell.KeyF2:
		a.ctrl.Do(editor.CmdRename)
	case tcell.KeyUp:
		a.ctrl.Do(editor.CmdLayerUp)
	case tcell.KeyDown:
		a.ctrl.Do(editor.CmdLayerDown)
	case tcell.KeyDelete:
		a.ctrl.Do(editor.CmdRemoveLayer)
	case tcell.KeyRune:
		if ev.Rune() == 'q' {
			return true
		}
		a.ctrl.Do(editor.Shortcut(ev.Rune()))
	}
	return false
}

// Draw repaints the whole screen.
func (a *App) Draw() {
	a.screen.Clear()
	a.drawCanvas()
	a.drawSidebar()
	a.screen.Show()
}

func (a *App) drawCanvas() {
	d := a.ctrl.Doc()
	if a.flat == nil || a.revision != d.Revision() {
		if a.flat == nil {
			a.flat = image.NewRGBA(d.Bounds())
		}
		d.Redraw(a.flat)
		a.revision = d.Revision()
	}

	cols, rows := a.gridSize()
	cs := d.CellSize()
	for row := range rows {
		for col := range cols {
			c := overPaper(a.flat.RGBAAt(col*cs, row*cs))
			a.screen.SetContent(col, row, ' ', nil, tcell.StyleDefault.Background(rgb(c)))
		}
	}
}

// overPaper blends a premultiplied pixel onto the white canvas
// background.
func overPaper(c color.RGBA) color.RGBA {
	inv := 0xff - uint32(c.A)
	return color.RGBA{
		R: uint8(uint32(c.R) + uint32(paper.R)*inv/0xff),
		G: uint8(uint32(c.G) + uint32(paper.G)*inv/0xff),
		B: uint8(uint32(c.B) + uint32(paper.B)*inv/0xff),
		A: 0xff,
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (a *App) text(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		a.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (a *App) drawSidebar() {
	d := a.ctrl.Doc()
	x := a.sidebarX()

	a.text(x, 0, "pixelpaint  tool: "+d.Tool().String(), styleTitle)
	a.text(x, 1, "color: ", styleText)
	a.text(x+7, 1, "  ", tcell.StyleDefault.Background(rgb(d.Color())))
	a.text(x+10, 1, palette.Hex(d.Color()), styleText)
	for i, c := range a.ctrl.Swatches() {
		a.screen.SetContent(x+i, 2, ' ', nil, tcell.StyleDefault.Background(rgb(c)))
	}

	a.text(x, layerListRow-1, "Layers", styleTitle)
	for i, l := range d.Layers() {
		style, marker := styleText, "  "
		if i == d.Active() {
			style, marker = styleActive, "> "
		}
		a.text(x, layerListRow+i, marker+l.Name, style)
	}

	y := layerListRow + d.Len() + 1
	if m := a.ctrl.Mode(); m != editor.ModePaint {
		a.text(x, y, m.Prompt()+" "+a.ctrl.Input()+"_", stylePrompt)
		y++
	}
	if w := a.ctrl.Warning(); w != "" {
		a.text(x, y, w, styleWarning)
		y++
	}
	if s := a.ctrl.Status(); s != "" {
		a.text(x, y, s, styleText)
		y++
	}
	for i, line := range strings.Split(editor.Help+"  Q quit", "\n") {
		a.text(x, y+1+i, line, styleText)
	}
}
