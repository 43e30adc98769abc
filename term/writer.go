package term

import (
	"fmt"

	"github.com/wnuspl/demys/canvas"
	"github.com/wnuspl/demys/style"
)

// ANSIWriter is the style-to-escape-sequence translator spec §6 declares
// an external collaborator: it implements canvas.Writer, turning a
// flattened Command stream into the ANSI bytes tui/screen.go's
// writeStyle/writeCursorPos emit, buffered through a Driver's Flusher.
type ANSIWriter struct {
	out interface {
		WriteString(string) (int, error)
	}
}

// NewANSIWriter wraps out (typically a Driver's Flusher) as a
// canvas.Writer.
func NewANSIWriter(out interface{ WriteString(string) (int, error) }) *ANSIWriter {
	return &ANSIWriter{out: out}
}

// Queue translates a single canvas.Command into ANSI bytes. Canvas
// coordinates are 0-based; terminal cursor positioning is 1-based, so
// MoveTo adds one to each axis (matching tui/screen.go's
// writeCursorPos(y+1, x+1)).
func (w *ANSIWriter) Queue(cmd canvas.Command) {
	switch c := cmd.(type) {
	case canvas.MoveTo:
		fmt.Fprintf(w.out, "\x1b[%d;%dH", c.Pos.Row+1, c.Pos.Col+1)
	case canvas.WriteText:
		w.out.WriteString(c.Text)
	case canvas.ApplyAttribute:
		w.out.WriteString(ansiFor(c.Attr))
	case canvas.ResetAttribute:
		w.out.WriteString(resetFor(c.Kind))
	}
}

// ansiFor renders one style.Attribute as its ANSI escape sequence.
func ansiFor(attr style.Attribute) string {
	switch attr.Kind {
	case style.AttrFg:
		return fgCode(attr.Color)
	case style.AttrBg:
		return bgCode(attr.Color)
	case style.AttrBold:
		if attr.Bold {
			return "\x1b[1m"
		}
		return "\x1b[22m"
	}
	return ""
}

// resetFor turns off every attribute of kind. Fg/Bg reset to the
// terminal default (SGR 39/49); Bold resets via SGR 22 (same code that
// turns off an explicit Bold(false), since both mean "not bold").
func resetFor(kind style.AttributeKind) string {
	switch kind {
	case style.AttrFg:
		return "\x1b[39m"
	case style.AttrBg:
		return "\x1b[49m"
	case style.AttrBold:
		return "\x1b[22m"
	}
	return ""
}

// fgCode maps a ThemeColor to its SGR foreground code, grounded on
// basement/style.go's GetColorCode name-to-escape table.
func fgCode(c style.ThemeColor) string {
	switch c {
	case style.ColorBlack:
		return "\x1b[30m"
	case style.ColorRed:
		return "\x1b[31m"
	case style.ColorGreen:
		return "\x1b[32m"
	case style.ColorYellow:
		return "\x1b[33m"
	case style.ColorBlue:
		return "\x1b[34m"
	case style.ColorMagenta:
		return "\x1b[35m"
	case style.ColorCyan:
		return "\x1b[36m"
	case style.ColorWhite:
		return "\x1b[37m"
	case style.ColorGray:
		return "\x1b[90m"
	default:
		return "\x1b[39m"
	}
}

// bgCode is fgCode's code plus the standard ANSI foreground-to-background
// offset of 10.
func bgCode(c style.ThemeColor) string {
	switch c {
	case style.ColorBlack:
		return "\x1b[40m"
	case style.ColorRed:
		return "\x1b[41m"
	case style.ColorGreen:
		return "\x1b[42m"
	case style.ColorYellow:
		return "\x1b[43m"
	case style.ColorBlue:
		return "\x1b[44m"
	case style.ColorMagenta:
		return "\x1b[45m"
	case style.ColorCyan:
		return "\x1b[46m"
	case style.ColorWhite:
		return "\x1b[47m"
	case style.ColorGray:
		return "\x1b[100m"
	default:
		return "\x1b[49m"
	}
}
