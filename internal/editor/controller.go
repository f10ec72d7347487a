// Package editor translates frontend input into document operations.
//
// Frontends report pointer samples, key commands and prompt text to a
// Controller; everything that changes the document goes through it so
// the behaviour can be tested without a window or terminal.
package editor

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"pixelpaint/internal/assets"
	"pixelpaint/internal/canvas"
	"pixelpaint/internal/export"
	"pixelpaint/internal/palette"
)

// Options are the export settings taken from the command line.
type Options struct {
	ExportScale int
	FrameDelay  int
}

type Controller struct {
	doc      *canvas.Document
	log      *zap.Logger
	opts     Options
	swatches []color.RGBA

	mode   Mode
	input  []rune
	format export.Format

	stroking bool
	warning  string
	status   string
}

func New(doc *canvas.Document, log *zap.Logger, opts Options) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.ExportScale < 1 {
		opts.ExportScale = 1
	}
	return &Controller{
		doc:      doc,
		log:      log,
		opts:     opts,
		swatches: palette.Default(),
	}
}

func (c *Controller) Doc() *canvas.Document  { return c.doc }
func (c *Controller) Mode() Mode             { return c.mode }
func (c *Controller) Input() string          { return string(c.input) }
func (c *Controller) Swatches() []color.RGBA { return c.swatches }
func (c *Controller) Stroking() bool         { return c.stroking }
func (c *Controller) Warning() string        { return c.warning }
func (c *Controller) Status() string         { return c.status }
func (c *Controller) DismissWarning()        { c.warning = "" }

func (c *Controller) warn(msg string, err error) {
	c.warning = msg
	if err != nil {
		c.warning = fmt.Sprintf("%s: %v", msg, err)
	}
}

// PointerDown arms a stroke. It does not paint: the first cell is
// written by the first move sample.
func (c *Controller) PointerDown(x, y int) {
	if c.mode != ModePaint {
		return
	}
	c.stroking = true
	c.warning = ""
}

// PointerMove paints one cell per sample while a stroke is armed.
// Samples are not interpolated.
func (c *Controller) PointerMove(x, y int) {
	if !c.stroking || c.mode != ModePaint {
		return
	}
	c.doc.Paint(x, y)
}

// PointerUp ends the stroke. Cells already written stay written.
func (c *Controller) PointerUp() {
	c.stroking = false
}

// PickColor sets the brush color, as from a swatch click.
func (c *Controller) PickColor(col color.Color) {
	c.doc.SetColor(col)
	c.log.Debug("color", zap.String("hex", palette.Hex(c.doc.Color())))
}

// SelectLayer is a click on the layer list.
func (c *Controller) SelectLayer(index int) {
	if c.doc.SelectLayer(index) {
		c.log.Debug("select layer", zap.Int("index", index))
	}
}

// Do runs a command. Commands are ignored while a prompt is open.
func (c *Controller) Do(cmd Command) {
	if c.mode != ModePaint {
		return
	}
	switch cmd {
	case CmdBrush:
		c.doc.SetTool(canvas.Brush)
	case CmdEraser:
		c.doc.SetTool(canvas.Eraser)
	case CmdNextColor:
		c.PickColor(palette.Next(c.swatches, c.doc.Color()))
	case CmdAddLayer:
		l := c.doc.AddLayer()
		c.log.Debug("add layer", zap.String("name", l.Name), zap.Int("layers", c.doc.Len()))
	case CmdRemoveLayer:
		c.removeLayer()
	case CmdLayerUp:
		c.SelectLayer(c.doc.Active() - 1)
	case CmdLayerDown:
		c.SelectLayer(c.doc.Active() + 1)
	case CmdRename:
		c.open(ModeRename, c.doc.ActiveLayer().Name)
	case CmdExportPNG:
		c.format = export.PNG
		c.open(ModeExport, "untitled"+export.PNG.Ext())
	case CmdExportGIF:
		c.format = export.GIF
		c.open(ModeExport, "untitled"+export.GIF.Ext())
	case CmdFlipbook:
		c.open(ModeFlipbook, "flipbook"+export.GIF.Ext())
	case CmdHexColor:
		c.open(ModeHex, palette.Hex(c.doc.Color()))
	case CmdImport:
		c.open(ModeImport, "")
	}
}

func (c *Controller) removeLayer() {
	name := c.doc.ActiveLayer().Name
	err := c.doc.RemoveActiveLayer()
	if errors.Is(err, canvas.ErrCannotRemoveLastLayer) {
		c.log.Warn("remove layer refused", zap.Error(err))
		c.warn("Cannot remove the last layer.", nil)
		return
	}
	if err != nil {
		c.log.Error("remove layer", zap.Error(err))
		c.warn("Remove failed", err)
		return
	}
	c.log.Debug("remove layer", zap.String("name", name), zap.Int("layers", c.doc.Len()))
}

// open switches to a prompt with the field prefilled.
func (c *Controller) open(m Mode, prefill string) {
	c.stroking = false
	c.warning = ""
	c.mode = m
	c.input = []rune(prefill)
}

// Type appends text to the open prompt.
func (c *Controller) Type(rs ...rune) {
	if c.mode == ModePaint {
		return
	}
	for _, r := range rs {
		if r >= ' ' && r != 0x7f {
			c.input = append(c.input, r)
		}
	}
}

func (c *Controller) Backspace() {
	if len(c.input) > 0 {
		c.input = c.input[:len(c.input)-1]
	}
}

// Cancel closes the prompt without acting, like dismissing a dialog.
func (c *Controller) Cancel() {
	c.mode = ModePaint
	c.input = nil
}

// Submit applies the open prompt and returns to painting. Failures are
// returned and also shown as the warning.
func (c *Controller) Submit() error {
	m, text := c.mode, strings.TrimSpace(string(c.input))
	c.Cancel()

	var err error
	switch m {
	case ModeRename:
		err = c.doc.RenameLayer(c.doc.Active(), text)
	case ModeExport:
		err = c.export(text)
	case ModeFlipbook:
		err = c.flipbook(text)
	case ModeHex:
		err = c.hexColor(text)
	case ModeImport:
		err = c.importLayers(text)
	}
	return err
}

func (c *Controller) export(path string) error {
	written, err := export.SaveFile(path, c.doc, c.format, c.opts.ExportScale)
	if err != nil {
		c.log.Error("export", zap.String("path", path), zap.Error(err))
		c.warn("Export failed", err)
		return err
	}
	if written != "" {
		c.log.Info("exported", zap.String("path", written), zap.Int("layers", c.doc.Len()))
		c.status = "Saved " + written
	}
	return nil
}

func (c *Controller) flipbook(path string) error {
	written, err := export.SaveFlipbook(path, c.doc, c.opts.FrameDelay, c.opts.ExportScale)
	if err != nil {
		c.log.Error("flipbook", zap.String("path", path), zap.Error(err))
		c.warn("Flipbook failed", err)
		return err
	}
	if written != "" {
		c.log.Info("flipbook exported", zap.String("path", written), zap.Int("frames", c.doc.Len()))
		c.status = "Saved " + written
	}
	return nil
}

func (c *Controller) hexColor(text string) error {
	if text == "" {
		return nil
	}
	col, err := palette.ParseHex(text)
	if err != nil {
		c.warn("Bad color", err)
		return err
	}
	c.PickColor(col)
	return nil
}

func (c *Controller) importLayers(path string) error {
	if path == "" {
		return nil
	}
	frames, err := assets.LoadFrames(path)
	if err != nil {
		c.log.Error("import", zap.String("path", path), zap.Error(err))
		c.warn("Import failed", err)
		return err
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for i, f := range frames {
		name := base
		if len(frames) > 1 {
			name = fmt.Sprintf("%s %d", base, i+1)
		}
		c.doc.ImportLayer(name, f)
	}
	c.log.Info("imported", zap.String("path", path), zap.Int("frames", len(frames)))
	c.status = fmt.Sprintf("Imported %s", filepath.Base(path))
	return nil
}
