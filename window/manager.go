package window

import (
	"strings"

	"github.com/wnuspl/demys/canvas"
	"github.com/wnuspl/demys/plot"
	"github.com/wnuspl/demys/style"
)

// Manager is the root of the window tree (spec §4.8): a Container whose
// top-level children are laid out side by side via a Layout, with its
// own command popup / quit handling and no outer container above it.
// Ported from original_source/src/window/windowmanager.rs, with the
// Esc/Ctrl-End and qall behavior redirected to match spec.md where it
// disagrees with the original.
type Manager struct {
	*Container
	layout *Layout
	dim    plot.Plot
	quit   bool

	// NewExplorer builds a fresh filesystem-explorer window rooted at
	// cwd. It's injected rather than imported directly to avoid a
	// window -> fswindow -> window import cycle (fswindow needs the
	// Window contract and textwindow.Open); main.go wires it.
	NewExplorer func(cwd string) Window
	cwd         string
}

// NewManager returns a manager sized to dim, rooted at cwd for any
// explorer windows it creates. Its Container has no outer poster: it is
// the root, and Redraw/other bubbled requests have nowhere further to
// go (CollectRequests always returns nil).
func NewManager(dim plot.Plot, cwd string) *Manager {
	c := NewContainer()
	m := &Manager{
		Container: c,
		layout:    NewLayout(dim),
		dim:       dim,
		cwd:       cwd,
	}
	c.CommandHandler = m.handleCommand
	c.AddWindowHook = m.AddWindow
	return m
}

// QuitRequested reports whether Esc or Ctrl-End has asked the program to
// exit.
func (m *Manager) QuitRequested() bool { return m.quit }

// AddWindow wraps w in a new top-level TabWindow and grows the layout's
// minor axis to match, mirroring windowmanager.rs's AddWindow handling.
func (m *Manager) AddWindow(w Window) {
	tab := NewTabWindow()
	tab.AddWindow(w)
	m.Container.AddWindow(tab)
	m.syncLayout()
}

// syncLayout grows or shrinks the layout's minor axis so its window
// count matches the container's, then regenerates cell rectangles and
// re-dispatches a Resize to every child (spec §4.8: "regenerate the
// layout and emit Resize to every affected child sized to its new
// rectangle").
func (m *Manager) syncLayout() {
	want := m.Count()
	for m.layout.Grid.MinorCount(0) < want {
		m.layout.SplitMinor(0)
	}
	for m.layout.Grid.MinorCount(0) > want && m.layout.Grid.MinorCount(0) > 1 {
		m.layout.RemoveMinor(0)
	}
	m.layout.Generate()
	m.dispatchResizes()
}

func (m *Manager) dispatchResizes() {
	spaces := m.layout.Windows()
	for i, space := range spaces {
		if w := m.WindowAt(i); w != nil {
			w.Event(ResizeEvent{Dim: space.Dim})
		}
	}
}

// Resize updates the manager's screen dimension and regenerates the
// layout and every child's rectangle.
func (m *Manager) Resize(dim plot.Plot) {
	m.dim = dim
	m.layout.SetDim(dim)
	m.dispatchResizes()
}

// Event handles manager-level key bindings before falling through to
// the container's default popup/current-child distribution (spec
// §4.8).
func (m *Manager) Event(ev Event) {
	if in, ok := ev.(InputEvent); ok {
		if m.handleInput(in.Input) {
			return
		}
	}
	m.DistributeEvent(ev)
}

// handleInput processes the manager-only key bindings, returning true
// if it consumed the key. A popup or an input-bypassing current child
// still gets first refusal, same as TabWindow.
func (m *Manager) handleInput(k KeyInput) bool {
	if m.HasPopup() {
		return false
	}
	if w := m.Current(); w != nil && w.InputBypass() {
		return false
	}

	switch {
	case k.Key == KeyEsc, k.Key == KeyEnd && k.Mod.Has(ModControl):
		// spec.md §4.8/§5: both keys request self-removal of the root,
		// i.e. program exit — unlike the original, where Esc instead
		// triggered a TryQuit cascade and only Ctrl-End exited
		// immediately.
		m.quit = true
		return true
	case k.Key == KeyChar && k.Rune == 'l' && k.Mod.Has(ModControl):
		m.CycleCurrent()
		m.Post(RedrawRequest{})
		return true
	case k.Key == KeyChar && k.Rune == ':':
		m.AddPopup(NewCommandPopup())
		m.Post(RedrawRequest{})
		return true
	case k.Key == KeyChar && k.Rune == 'x' && k.Mod.Has(ModControl):
		if w := m.Current(); w != nil {
			w.Event(TryQuitEvent{})
		}
		return true
	}
	return false
}

// handleCommand is the Container.CommandHandler the manager installs on
// itself, intercepting the commands spec §4.8 says belong to the
// manager rather than the current child.
func (m *Manager) handleCommand(cmd string) {
	switch cmd {
	case "q", "qall":
		m.TryQuit()
	case "x":
		if m.NewExplorer != nil {
			m.AddWindow(m.NewExplorer(m.cwd))
		}
	default:
		if w := m.Current(); w != nil {
			w.Event(CommandEvent{Cmd: cmd})
		}
	}
}

// Tick advances the manager one step: ticks the container, which ticks
// every top-level tab and popup, drains their bubbled requests, and
// (since AddWindowRequest/RemoveSelfWindowRequest are handled generically
// by Container.ProcessRequests against its own window list) mutates the
// top-level window count directly. Any resulting count change still
// needs the layout regenerated and resized, which the embedded
// Container can't do on its own — hence the before/after check here.
// Pending() is drained and discarded: nothing the generic container
// leaves unhandled (Clear/Cursor/None) is meaningful at the root.
func (m *Manager) Tick() {
	before := m.Count()
	m.Container.Tick()
	m.Container.Pending()
	if m.Count() != before {
		m.syncLayout()
	}
}

// CollectRequests advances the manager and returns nothing further
// upward — it is the root, there is nothing above it.
func (m *Manager) CollectRequests() []Request {
	m.Tick()
	return nil
}

// Draw renders every top-level tab into its layout-assigned rectangle,
// draws the dividers between them, and overlays the manager's own
// popups (the command popup, any alert).
func (m *Manager) Draw(c *canvas.Canvas) {
	m.layout.Generate()
	for i, space := range m.layout.Windows() {
		w := m.WindowAt(i)
		if w == nil {
			continue
		}
		child := canvas.New(space.Dim)
		w.Draw(child)
		c.AddChild(child, space.Start)
	}
	for _, b := range m.layout.Borders() {
		drawBorder(c, b)
	}
	for _, p := range m.Popups() {
		origin, dim := p.Rect(c.Dim())
		pc := canvas.New(dim)
		p.Draw(pc)
		c.AddChild(pc, origin)
	}
}

func (m *Manager) Name() string      { return "manager" }
func (m *Manager) InputBypass() bool { return false }

// drawBorder paints a single-thickness divider line at b's location.
func drawBorder(c *canvas.Canvas, b BorderSpace) {
	if b.Vertical {
		for r := 0; r < b.Length; r++ {
			c.WriteAt(style.New("|"), plot.New(b.Start.Row+r, b.Start.Col))
		}
		return
	}
	c.WriteAt(style.New(strings.Repeat("-", b.Length)), b.Start)
}
