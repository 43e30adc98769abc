package canvas

import (
	"github.com/wnuspl/demys/plot"
	"github.com/wnuspl/demys/style"
)

// Command is one step of the minimal stream a flushed Canvas produces.
// Turning a Command stream into terminal bytes is the job of the
// style-to-escape-sequence translator, an out-of-scope external
// collaborator (spec §6) that implements Writer.
type Command interface {
	isCommand()
}

// MoveTo repositions the terminal cursor before the next WriteText.
type MoveTo struct {
	Pos plot.Plot
}

// WriteText emits a run of plain text at the terminal's current position.
type WriteText struct {
	Text string
}

// ApplyAttribute turns on a style attribute, to remain active until the
// matching ResetAttribute (or another ApplyAttribute of the same kind).
type ApplyAttribute struct {
	Attr style.Attribute
}

// ResetAttribute turns off every attribute of the given kind.
type ResetAttribute struct {
	Kind style.AttributeKind
}

func (MoveTo) isCommand()         {}
func (WriteText) isCommand()      {}
func (ApplyAttribute) isCommand() {}
func (ResetAttribute) isCommand() {}

// Writer accepts a flattened Command stream. The terminal I/O driver
// (spec §6) implements this to turn commands into ANSI escape sequences.
type Writer interface {
	Queue(cmd Command)
}
