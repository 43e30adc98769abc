package fswindow

import (
	"strings"

	"github.com/wnuspl/demys/canvas"
	"github.com/wnuspl/demys/event"
	"github.com/wnuspl/demys/plot"
	"github.com/wnuspl/demys/style"
	"github.com/wnuspl/demys/textwindow"
	"github.com/wnuspl/demys/window"
)

// scrollMargin keeps the selection at least this many rows from the top
// or bottom of the viewport, matching fswindow.rs's
// ScrollableData.scroll_margin = 2.
const scrollMargin = 2

// FSWindow is the filesystem explorer leaf window (spec §4.11), browsing
// a DirectoryEntry tree with j/k (or the arrow keys), opening files into
// new text windows and toggling directories with Enter.
type FSWindow struct {
	line int
	dir  *DirectoryEntry

	scrollY int
	dim     plot.Plot
	focused bool
	poster  *event.Poster[window.Request]
}

// New returns an explorer rooted at cwd.
func New(cwd string) *FSWindow {
	return &FSWindow{dir: NewRoot(cwd)}
}

func (f *FSWindow) Init(poster *event.Poster[window.Request]) { f.poster = poster }
func (f *FSWindow) Name() string                              { return "Explorer" }
func (f *FSWindow) InputBypass() bool                          { return false }
func (f *FSWindow) Tick()                                      {}
func (f *FSWindow) CollectRequests() []window.Request          { return nil }

func (f *FSWindow) Event(ev window.Event) {
	switch e := ev.(type) {
	case window.ResizeEvent:
		f.dim = e.Dim
	case window.FocusEvent:
		f.focused = true
	case window.UnfocusEvent:
		f.focused = false
	case window.InputEvent:
		f.handleInput(e.Input)
	}
}

func (f *FSWindow) handleInput(k window.KeyInput) {
	switch {
	case k.Key == window.KeyUp, k.Key == window.KeyChar && k.Rune == 'k':
		target := f.line - 1
		if target < 0 || f.dir.At(target) == nil {
			return
		}
		f.line = target
		f.scrollToSelection()
	case k.Key == window.KeyDown, k.Key == window.KeyChar && k.Rune == 'j':
		target := f.line + 1
		if f.dir.At(target) == nil {
			return
		}
		f.line = target
		f.scrollToSelection()
	case k.Key == window.KeyEnter:
		f.activate()
	default:
		return
	}
	f.poster.Post(window.RedrawRequest{})
}

// activate opens the node under the cursor: a text window for a file, a
// toggle for a directory. Corrects fswindow.rs's Enter-on-file stub
// (which created another FSWindow rather than a text window) per
// spec.md §4.11.
func (f *FSWindow) activate() {
	node := f.dir.At(f.line)
	if node == nil {
		return
	}
	if !node.IsDir {
		tw, err := textwindow.Open(node.Dir)
		if err == nil {
			f.poster.Post(window.AddWindowRequest{Window: tw})
		}
		return
	}
	if node.IsOpen {
		node.Close()
	} else {
		node.Open()
	}
}

// scrollToSelection keeps the current line within scrollMargin rows of
// the viewport's top and bottom edges.
func (f *FSWindow) scrollToSelection() {
	if f.dim.Row <= 0 {
		return
	}
	if f.line < f.scrollY+scrollMargin {
		f.scrollY = f.line - scrollMargin
		if f.scrollY < 0 {
			f.scrollY = 0
		}
	}
	bottom := f.scrollY + f.dim.Row - 1 - scrollMargin
	if f.line > bottom {
		f.scrollY = f.line - (f.dim.Row - 1 - scrollMargin)
	}
	if f.scrollY < 0 {
		f.scrollY = 0
	}
}

func (f *FSWindow) Draw(c *canvas.Canvas) {
	dim := c.Dim()
	lines := strings.Split(f.dir.String(), "\n")

	for i, line := range lines {
		dr := i - f.scrollY
		if dr < 0 || dr >= dim.Row {
			continue
		}
		c.WriteAt(style.New(line), plot.New(dr, 0))
		if f.focused && i == f.line {
			idx := dr * dim.Col
			c.SetAttribute(style.Bg(style.ColorWhite), idx, idx+dim.Col)
		}
	}
}
