package ui

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"pixelpaint/internal/editor"
)

// Key repeat, in ticks.
const (
	repeatDelay    = 30
	repeatInterval = 3
)

func repeatingKeyPressed(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	if d == 1 {
		return true
	}
	return d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0
}

func (g *Game) handleKeys() {
	chars := ebiten.AppendInputChars(nil)

	if g.ctrl.Mode() != editor.ModePaint {
		g.ctrl.Type(chars...)
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter):
			if err := g.ctrl.Submit(); err != nil {
				g.log.Debug("prompt", zap.Error(err))
			}
		case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
			g.ctrl.Cancel()
		case repeatingKeyPressed(ebiten.KeyBackspace):
			g.ctrl.Backspace()
		}
		return
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyF2):
		g.ctrl.Do(editor.CmdRename)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		g.ctrl.Do(editor.CmdLayerUp)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		g.ctrl.Do(editor.CmdLayerDown)
	case inpututil.IsKeyJustPressed(ebiten.KeyDelete):
		g.ctrl.Do(editor.CmdRemoveLayer)
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.ctrl.DismissWarning()
	case inpututil.IsKeyJustPressed(ebiten.KeyQ) && ebiten.IsKeyPressed(ebiten.KeyControl):
		g.quit = true
		return
	}
	for _, r := range chars {
		g.ctrl.Do(editor.Shortcut(r))
	}
}

// handlePointer turns the left button into stroke events. A press arms
// the stroke, every frame in which the cursor moved while held is one
// move sample, and release ends it.
func (g *Game) handlePointer() {
	mx, my := ebiten.CursorPosition()
	p := image.Pt(mx, my)

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		if p.In(g.canvasRect()) {
			g.stroking = true
			g.ctrl.PointerDown(mx, my)
		} else {
			g.click(p)
		}
	case g.stroking && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.stroking = false
		g.ctrl.PointerUp()
	case g.stroking && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && p != g.lastCursor:
		g.ctrl.PointerMove(mx, my)
	}
	g.lastCursor = p
}
