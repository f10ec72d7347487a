package tui_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"pixelpaint/internal/canvas"
	"pixelpaint/internal/editor"
	"pixelpaint/internal/tui"
)

type fixture struct {
	screen tcell.SimulationScreen
	ctrl   *editor.Controller
	app    *tui.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	t.Cleanup(s.Fini)
	s.SetSize(80, 24)

	log := zaptest.NewLogger(t)
	ctrl := editor.New(canvas.New(40, 30, 10), log, editor.Options{ExportScale: 1, FrameDelay: 10})
	return &fixture{screen: s, ctrl: ctrl, app: tui.New(s, ctrl, log)}
}

func (f *fixture) mouse(x, y int, b tcell.ButtonMask) {
	f.app.HandleEvent(tcell.NewEventMouse(x, y, b, tcell.ModNone))
}

func (f *fixture) key(k tcell.Key, r rune) bool {
	return f.app.HandleEvent(tcell.NewEventKey(k, r, tcell.ModNone))
}

func (f *fixture) background(t *testing.T, x, y int) (int32, int32, int32) {
	t.Helper()
	cells, w, _ := f.screen.GetContents()
	_, bg, _ := cells[y*w+x].Style.Decompose()
	return bg.RGB()
}

func (f *fixture) row(y int) string {
	cells, w, _ := f.screen.GetContents()
	var sb strings.Builder
	for x := range w {
		if rs := cells[y*w+x].Runes; len(rs) > 0 {
			sb.WriteRune(rs[0])
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

func (f *fixture) screenText() string {
	_, _, h := f.screen.GetContents()
	rows := make([]string, h)
	for y := range h {
		rows[y] = f.row(y)
	}
	return strings.Join(rows, "\n")
}

func TestDragPaintsCells(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.mouse(1, 1, tcell.Button1)
	f.mouse(2, 1, tcell.Button1)
	f.mouse(2, 2, tcell.Button1)
	f.mouse(2, 2, tcell.ButtonNone)
	f.mouse(3, 2, tcell.ButtonNone)
	f.app.Draw()

	r, g, b := f.background(t, 2, 1)
	assert.Equal(t, [3]int32{0, 0, 0}, [3]int32{r, g, b})
	r, g, b = f.background(t, 2, 2)
	assert.Equal(t, [3]int32{0, 0, 0}, [3]int32{r, g, b})

	r, g, b = f.background(t, 1, 1)
	assert.Equal(t, [3]int32{255, 255, 255}, [3]int32{r, g, b}, "press alone does not paint")
	r, g, b = f.background(t, 3, 2)
	assert.Equal(t, [3]int32{255, 255, 255}, [3]int32{r, g, b}, "released pointer does not paint")
}

func TestEraseShowsPaper(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.mouse(0, 0, tcell.Button1)
	f.mouse(1, 0, tcell.Button1)
	f.mouse(1, 0, tcell.ButtonNone)

	f.key(tcell.KeyRune, 'e')
	f.mouse(0, 0, tcell.Button1)
	f.mouse(1, 0, tcell.Button1)
	f.mouse(1, 0, tcell.ButtonNone)
	f.app.Draw()

	r, g, b := f.background(t, 1, 0)
	assert.Equal(t, [3]int32{255, 255, 255}, [3]int32{r, g, b})
}

func TestSidebarListsLayers(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.key(tcell.KeyRune, 'a')
	f.app.Draw()

	text := f.screenText()
	assert.Contains(t, text, "  Layer 1")
	assert.Contains(t, text, "> Layer 2")

	// Clicking a row selects that layer.
	f.mouse(6, 5, tcell.Button1)
	f.mouse(6, 5, tcell.ButtonNone)
	assert.Equal(t, 0, f.ctrl.Doc().Active())
}

func TestSwatchClickPicksColor(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.mouse(6+3, 2, tcell.Button1)
	f.mouse(6+3, 2, tcell.ButtonNone)
	assert.Equal(t, f.ctrl.Swatches()[3], f.ctrl.Doc().Color())
}

func TestRemoveLastLayerShowsWarning(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.key(tcell.KeyDelete, 0)
	f.app.Draw()
	assert.Contains(t, f.screenText(), "Cannot remove the last layer.")

	f.key(tcell.KeyEscape, 0)
	f.app.Draw()
	assert.NotContains(t, f.screenText(), "Cannot remove the last layer.")
}

func TestRenameWithF2(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.key(tcell.KeyF2, 0)
	f.app.Draw()
	assert.Contains(t, f.screenText(), "Rename layer: Layer 1_")

	for range len("Layer 1") {
		f.key(tcell.KeyBackspace2, 0)
	}
	for _, r := range "ink" {
		f.key(tcell.KeyRune, r)
	}
	assert.False(t, f.key(tcell.KeyRune, 'q'), "q is text while a prompt is open")
	f.key(tcell.KeyEnter, 0)

	assert.Equal(t, "inkq", f.ctrl.Doc().ActiveLayer().Name)
}

func TestQuitKeys(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	assert.True(t, f.key(tcell.KeyRune, 'q'))
	assert.True(t, f.key(tcell.KeyCtrlC, 0))
}

func TestRunStopsOnContext(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := f.app.Run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
