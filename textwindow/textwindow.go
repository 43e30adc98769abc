package textwindow

import (
	"fmt"
	"os"

	"github.com/wnuspl/demys/buffer"
	"github.com/wnuspl/demys/canvas"
	"github.com/wnuspl/demys/event"
	"github.com/wnuspl/demys/plot"
	"github.com/wnuspl/demys/style"
	"github.com/wnuspl/demys/window"
)

// mode is the text window's modal state (spec §4.9).
type mode int

const (
	modeNormal mode = iota
	modeInsert
)

// scrollStep is how far J/K move the viewport per press (spec's
// "Open Question" resolution: simple row-offset scrolling, DESIGN.md).
const scrollStep = 10

// gutterWidth is the fixed width of the line-number column when shown.
const gutterWidth = 3

// TextWindow is the modal text editor leaf window (spec §4.9): a
// buffer.TextBuffer plus the normal/insert key tables, an optional
// line-number gutter, and a bottom status line showing mode and
// filename. Drawing is built on textwindow.WrapContent (spec §4.10).
type TextWindow struct {
	buf             *buffer.TextBuffer
	poster          *event.Poster[window.Request]
	mode            mode
	scrollY         int
	showLineNumbers bool
	focused         bool
	dim             plot.Plot
}

// New returns a text window over a fresh, empty, unnamed buffer.
func New() *TextWindow {
	return &TextWindow{buf: buffer.New()}
}

// Open returns a text window over path's contents. A missing file is not
// an error: it yields an empty buffer pointed at path and marked unsaved
// (spec §6: "creating empty buffers for missing files, marked unsaved").
func Open(path string) (*TextWindow, error) {
	b, err := buffer.NewFromFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			b = buffer.New()
			b.SetPath(path)
			b.MarkUnsaved()
			return &TextWindow{buf: b}, nil
		}
		return nil, err
	}
	return &TextWindow{buf: b}, nil
}

func (t *TextWindow) Init(poster *event.Poster[window.Request]) { t.poster = poster }

func (t *TextWindow) Name() string {
	if p := t.buf.Path(); p != "" {
		return p
	}
	return "[untitled]"
}

// InputBypass is true in insert mode: a containing tab/manager must not
// steal printable keys meant for the buffer.
func (t *TextWindow) InputBypass() bool { return t.mode == modeInsert }

func (t *TextWindow) Tick()                              {}
func (t *TextWindow) CollectRequests() []window.Request { return nil }

func (t *TextWindow) Event(ev window.Event) {
	switch e := ev.(type) {
	case window.ResizeEvent:
		t.dim = e.Dim
	case window.FocusEvent:
		t.focused = true
	case window.UnfocusEvent:
		t.focused = false
	case window.CommandEvent:
		t.handleCommand(e.Cmd)
	case window.TryQuitEvent:
		// Same decision as the "q" command: close if saved, else prompt.
		t.handleCommand("q")
	case window.InputEvent:
		if t.mode == modeInsert {
			t.handleInsert(e.Input)
		} else {
			t.handleNormal(e.Input)
		}
		t.poster.Post(window.RedrawRequest{})
	}
}

func (t *TextWindow) handleInsert(k window.KeyInput) {
	switch {
	case k.Key == window.KeyEsc, k.Key == window.KeyChar && k.Rune == '[' && k.Mod.Has(window.ModControl):
		t.mode = modeNormal
	case k.Key == window.KeyBackspace:
		t.buf.Apply(buffer.NewDeleteBack(1))
	case k.Key == window.KeyEnter:
		t.buf.Apply(&buffer.InsertLinebreak{})
	case k.Key == window.KeyChar && k.Rune == 'z' && k.Mod.Has(window.ModControl):
		t.buf.Undo()
	case k.Key == window.KeyChar:
		t.buf.Apply(&buffer.InsertChar{Char: byte(k.Rune)})
	}
}

func (t *TextWindow) handleNormal(k window.KeyInput) {
	if k.Key != window.KeyChar {
		return
	}
	switch k.Rune {
	case 'h':
		t.buf.Apply(&buffer.CursorLeft{Count: 1})
	case 'l':
		t.buf.Apply(&buffer.CursorRight{Count: 1})
	case 'j':
		t.buf.Apply(&buffer.LineDown{Count: 1})
	case 'k':
		t.buf.Apply(&buffer.LineUp{Count: 1})
	case 'J':
		t.scrollY += scrollStep
	case 'K':
		t.scrollY -= scrollStep
		if t.scrollY < 0 {
			t.scrollY = 0
		}
	case 'i':
		t.mode = modeInsert
	case 'I':
		t.buf.Apply(&buffer.StartOfLine{})
		t.mode = modeInsert
	case 'a':
		t.buf.Apply(&buffer.CursorRight{Count: 1})
		t.mode = modeInsert
	case 'A':
		t.buf.Apply(&buffer.EndOfLine{})
		t.mode = modeInsert
	case 'o':
		t.buf.Apply(&buffer.EndOfLine{})
		t.buf.Apply(&buffer.InsertLinebreak{})
		t.mode = modeInsert
	}
}

// handleCommand dispatches a ":"-line command routed to this window
// (spec §4.9): w/wq/q!/q/tl.
func (t *TextWindow) handleCommand(cmd string) {
	switch cmd {
	case "w":
		t.buf.Save()
	case "wq":
		t.buf.Save()
		t.poster.Post(window.RemoveSelfWindowRequest{})
	case "q!":
		t.poster.Post(window.RemoveSelfWindowRequest{})
	case "q":
		if t.buf.Saved() {
			t.poster.Post(window.RemoveSelfWindowRequest{})
		} else {
			t.poster.Post(window.AddPopupRequest{Popup: window.NewUnsavedChangesAlert()})
		}
	case "tl":
		t.showLineNumbers = !t.showLineNumbers
	}
	t.poster.Post(window.RedrawRequest{})
}

func (t *TextWindow) Draw(c *canvas.Canvas) {
	dim := c.Dim()
	if dim.Row < 2 {
		return
	}

	gutter := 0
	if t.showLineNumbers {
		gutter = gutterWidth
	}
	bodyDim := plot.New(dim.Row-1, dim.Col-gutter)
	if bodyDim.Col < 1 {
		bodyDim.Col = 1
	}

	wrapped, cursorPlot := WrapContent(t.buf.String(), bodyDim, t.buf.Cursor())
	rows := flattenRows(wrapped)

	for i, row := range rows {
		dr := i - t.scrollY
		if dr < 0 || dr >= bodyDim.Row {
			continue
		}
		if gutter > 0 {
			c.WriteAt(style.New(fmt.Sprintf("%2d ", i+1)), plot.New(dr, 0))
		}
		c.WriteAt(style.New(row), plot.New(dr, gutter))
	}

	if t.focused {
		dr := cursorPlot.Row - t.scrollY
		if dr >= 0 && dr < bodyDim.Row {
			idx := dr*dim.Col + gutter + cursorPlot.Col
			c.SetAttribute(style.Bg(style.ColorWhite), idx, idx+1)
		}
	}

	modeLabel := "NORMAL"
	if t.mode == modeInsert {
		modeLabel = "INSERT"
	}
	c.WriteAt(style.New(modeLabel), plot.New(dim.Row-1, 0))

	name := t.Name()
	if !t.buf.Saved() {
		name += " [+]"
	}
	col := dim.Col - len(name)
	if col < 0 {
		col = 0
	}
	c.WriteAt(style.New(name), plot.New(dim.Row-1, col))
}

// flattenRows concatenates every logical line's wrapped chunks into one
// flat, top-to-bottom row list, matching the row indices WrapContent's
// returned cursor Plot already counts against.
func flattenRows(wrapped [][]string) []string {
	var out []string
	for _, line := range wrapped {
		out = append(out, line...)
	}
	return out
}
