package window

import (
	"github.com/wnuspl/demys/canvas"
	"github.com/wnuspl/demys/event"
	"github.com/wnuspl/demys/plot"
	"github.com/wnuspl/demys/style"
)

// TabWindow groups child windows behind a single tile, cycling among
// them and optionally showing a header bar naming each (spec §4.7).
// Ported from original_source/src/window/tab.rs.
type TabWindow struct {
	*Container
	poster     *event.Poster[Request]
	showHeader bool
	dim        plot.Plot
	focused    bool
}

// NewTabWindow returns an empty tab window with its header hidden.
func NewTabWindow() *TabWindow {
	return &TabWindow{Container: NewContainer()}
}

func (t *TabWindow) Init(poster *event.Poster[Request]) {
	t.poster = poster
	t.Container.SetOuter(poster)
}

func (t *TabWindow) Name() string {
	if w := t.Current(); w != nil {
		return w.Name()
	}
	return "tab"
}

func (t *TabWindow) InputBypass() bool {
	if w := t.Current(); w != nil {
		return w.InputBypass()
	}
	return false
}

func (t *TabWindow) Event(ev Event) {
	if re, ok := ev.(ResizeEvent); ok {
		t.dim = re.Dim
		ev = ResizeEvent{Dim: t.bodyDim()}
	}
	switch e := ev.(type) {
	case FocusEvent:
		t.focused = true
		if w := t.Current(); w != nil {
			w.Event(FocusEvent{})
		}
		return
	case UnfocusEvent:
		t.focused = false
		if w := t.Current(); w != nil {
			w.Event(UnfocusEvent{})
		}
		return
	case TryQuitEvent:
		// spec §4.6/§5: TryQuit cascades to every child, not just the
		// current one, so a hidden (non-current) child still gets to
		// surface its own unsaved-changes prompt on qall/Ctrl-X.
		t.TryQuit()
		return
	case InputEvent:
		if t.handleInput(e.Input) {
			t.Post(RedrawRequest{})
			return
		}
	}
	t.DistributeEvent(ev)
}

// bodyDim is the dimension the current child actually draws into: the
// tab's own dimension minus one row when the header is showing.
func (t *TabWindow) bodyDim() plot.Plot {
	if t.showHeader && t.Count() > 1 {
		return plot.New(t.dim.Row-1, t.dim.Col)
	}
	return t.dim
}

// handleInput processes the tab-level key bindings, returning true if it
// consumed the key itself rather than forwarding to the current child.
// A current child with InputBypass set receives every key, the tab's own
// toggle/cycle/pop keys included, matching tab.rs's input_bypass
// delegation.
func (t *TabWindow) handleInput(k KeyInput) bool {
	if w := t.Current(); w != nil && w.InputBypass() {
		return false
	}

	switch {
	case k.Key == KeyChar && k.Rune == '\'':
		t.showHeader = !t.showHeader
		return true
	case k.Key == KeyRight && k.Mod.Has(ModControl):
		t.popCurrent()
		return true
	case k.Key == KeyTab && k.Mod.Has(ModControl):
		t.CycleCurrent()
		return true
	}
	return false
}

// popCurrent removes the current child from this tab and re-adds it as
// a new top-level sibling by requesting AddWindow on the outer
// container. If this tab only has the one child, there is nothing left
// to pop into a sibling of, so it degrades to removing itself instead
// (spec's Ctrl-Right tab-pop decision, DESIGN.md).
func (t *TabWindow) popCurrent() {
	w := t.Current()
	if w == nil {
		return
	}
	if t.Count() <= 1 {
		t.Post(RemoveSelfWindowRequest{})
		return
	}
	t.RemoveCurrent()
	t.Post(AddWindowRequest{Window: w})
}

func (t *TabWindow) Draw(c *canvas.Canvas) {
	dim := c.Dim()
	headerRows := 0
	if t.showHeader && t.Count() > 1 {
		headerRows = 1
	}

	bodyDim := plot.New(dim.Row-headerRows, dim.Col)
	body := canvas.New(bodyDim)
	if w := t.Current(); w != nil {
		w.Draw(body)
	}
	c.AddChild(body, plot.New(headerRows, 0))

	if headerRows == 0 {
		t.drawPopups(c)
		return
	}

	header := canvas.New(plot.New(1, dim.Col))
	col := 0
	for i := 0; i < t.Count(); i++ {
		w := t.WindowAt(i)
		name := w.Name()
		if i == t.CurrentIndex() {
			header.SetAttribute(style.Bg(style.ColorWhite), col, col+len(name))
		}
		header.WriteAt(style.New(name), plot.New(0, col))
		col += len(name)
		if i < t.Count()-1 {
			header.WriteAt(style.New("|"), plot.New(0, col))
			col++
		}
	}
	c.AddChild(header, plot.New(0, 0))
	t.drawPopups(c)
}

func (t *TabWindow) drawPopups(c *canvas.Canvas) {
	dim := c.Dim()
	for _, p := range t.Popups() {
		origin, pdim := p.Rect(dim)
		pc := canvas.New(pdim)
		p.Draw(pc)
		c.AddChild(pc, origin)
	}
}
