package editor

import "fmt"

// Mode is what keyboard input currently feeds.
type Mode int

const (
	ModePaint    Mode = iota // Pointer strokes reach the canvas
	ModeRename               // Typing a new name for the active layer
	ModeExport               // Typing the path for a flat export
	ModeFlipbook             // Typing the path for a flipbook export
	ModeHex                  // Typing a #rrggbb brush color
	ModeImport               // Typing the path of an image to import
)

func (m Mode) String() string {
	switch m {
	case ModePaint:
		return "paint"
	case ModeRename:
		return "rename"
	case ModeExport:
		return "export"
	case ModeFlipbook:
		return "flipbook"
	case ModeHex:
		return "color"
	case ModeImport:
		return "import"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Prompt is the label shown in front of the text field.
func (m Mode) Prompt() string {
	switch m {
	case ModeRename:
		return "Rename layer:"
	case ModeExport:
		return "Export to:"
	case ModeFlipbook:
		return "Flipbook to:"
	case ModeHex:
		return "Color (#rrggbb):"
	case ModeImport:
		return "Import from:"
	}
	return ""
}

// Command is a frontend-independent editor action.
type Command int

const (
	CmdNone Command = iota
	CmdBrush
	CmdEraser
	CmdNextColor
	CmdHexColor
	CmdAddLayer
	CmdRemoveLayer
	CmdLayerUp
	CmdLayerDown
	CmdRename
	CmdExportPNG
	CmdExportGIF
	CmdFlipbook
	CmdImport
)

// Shortcut maps the single-letter bindings shared by both frontends.
func Shortcut(r rune) Command {
	switch r {
	case 'b', 'B':
		return CmdBrush
	case 'e', 'E':
		return CmdEraser
	case 'c', 'C':
		return CmdNextColor
	case 'h', 'H':
		return CmdHexColor
	case 'a', 'A':
		return CmdAddLayer
	case 'd', 'D':
		return CmdRemoveLayer
	case 'p', 'P':
		return CmdExportPNG
	case 'g', 'G':
		return CmdExportGIF
	case 'f', 'F':
		return CmdFlipbook
	case 'i', 'I':
		return CmdImport
	}
	return CmdNone
}

// Help is the key summary printed by the frontends.
const Help = "B brush  E eraser  C next color  H hex color\n" +
	"A add  D remove  Up/Down select  F2 rename\n" +
	"P png  G gif  F flipbook  I import  Esc cancel"
