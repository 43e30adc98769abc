package window

import (
	"testing"

	"github.com/wnuspl/demys/canvas"
	"github.com/wnuspl/demys/event"
	"github.com/wnuspl/demys/plot"
)

// mockWindow is a minimal Window used to exercise container/tab/manager
// behavior without a real text or fs window.
type mockWindow struct {
	name    string
	poster  *event.Poster[Request]
	events  []Event
	bypass  bool
	pending []Request
}

func newMock(name string) *mockWindow { return &mockWindow{name: name} }

func (m *mockWindow) Init(p *event.Poster[Request])   { m.poster = p }
func (m *mockWindow) Event(ev Event)                  { m.events = append(m.events, ev) }
func (m *mockWindow) Draw(c *canvas.Canvas)           {}
func (m *mockWindow) Tick()                           {}
func (m *mockWindow) CollectRequests() []Request {
	p := m.pending
	m.pending = nil
	return p
}
func (m *mockWindow) InputBypass() bool { return m.bypass }
func (m *mockWindow) Name() string      { return m.name }

// Rect lets mockWindow double as a Popup in tests that need one.
func (m *mockWindow) Rect(screen plot.Plot) (plot.Plot, plot.Plot) {
	return plot.New(0, 0), screen
}

func (m *mockWindow) lastEvent() Event {
	if len(m.events) == 0 {
		return nil
	}
	return m.events[len(m.events)-1]
}

// wireOuter gives a TabWindow (or anything else with an Init(poster)
// method) a fresh outer receiver to bubble requests into, mirroring how
// a Manager wires a child TabWindow via Container.AddWindow.
func wireOuter(w interface{ Init(*event.Poster[Request]) }) (*event.Receiver[Request], *event.Poster[Request]) {
	recv := event.NewReceiver[Request]()
	poster := recv.NewPoster()
	w.Init(poster)
	return recv, poster
}

// TestContainerAddRemoveSymmetry is spec §8 property 7.
func TestContainerAddRemoveSymmetry(t *testing.T) {
	c := NewContainer()
	c.AddWindow(newMock("a"))

	if c.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", c.Count())
	}

	id, ok := c.CurrentID()
	if !ok {
		t.Fatalf("CurrentID() should report the one window added")
	}
	c.RemoveWindowID(id)
	if c.Count() != 0 {
		t.Fatalf("Count() after remove = %d, want 0", c.Count())
	}
	if c.Current() != nil {
		t.Fatalf("Current() after removing the only window should be nil")
	}
}

func TestContainerCycleCurrentSendsFocusUnfocus(t *testing.T) {
	c := NewContainer()
	c.AddWindow(newMock("a"))
	c.AddWindow(newMock("b"))

	first := c.WindowAt(0).(*mockWindow)
	second := c.WindowAt(1).(*mockWindow)

	if c.Current() != first {
		t.Fatalf("current should start at the first added window")
	}

	c.CycleCurrent()
	if c.Current() != second {
		t.Fatalf("current after cycle should be the second window")
	}
	if first.lastEvent() != (UnfocusEvent{}) {
		t.Fatalf("previous current should have received Unfocus, got %#v", first.lastEvent())
	}
	if second.lastEvent() != (FocusEvent{}) {
		t.Fatalf("new current should have received Focus, got %#v", second.lastEvent())
	}

	c.CycleCurrent()
	if c.Current() != first {
		t.Fatalf("cycle should wrap back to the first window")
	}
	if second.lastEvent() != (UnfocusEvent{}) {
		t.Fatalf("previous current should have received Unfocus, got %#v", second.lastEvent())
	}
	if first.lastEvent() != (FocusEvent{}) {
		t.Fatalf("new current should have received Focus, got %#v", first.lastEvent())
	}
}

// TestRemoveWindowIDDecrementsCurrentAtOrBeforeIndex covers spec §4.6:
// "if the removed index was ≤ current, decrement current." Removing the
// current middle window of [A,B,C] should leave A (not C) current.
func TestRemoveWindowIDDecrementsCurrentAtOrBeforeIndex(t *testing.T) {
	c := NewContainer()
	a := newMock("a")
	b := newMock("b")
	cc := newMock("c")
	c.AddWindow(a)
	c.AddWindow(b)
	c.AddWindow(cc)

	// current is a (first added); point it at b, the middle window.
	c.current = 1
	if c.Current() != b {
		t.Fatalf("setup: current should be b")
	}

	bID := c.windows[1].id
	c.RemoveWindowID(bID)

	if c.Current() != a {
		t.Fatalf("removing the current middle window should leave the previous window (a) current, got %v", c.Current())
	}
}

func TestDistributeEventRoutesToTopPopup(t *testing.T) {
	c := NewContainer()
	c.AddWindow(newMock("child"))
	popup := newMock("popup")
	c.AddPopup(popup)

	c.DistributeEvent(InputEvent{Input: KeyInput{Key: KeyChar, Rune: 'x'}})

	if len(popup.events) != 1 {
		t.Fatalf("popup should have received the event")
	}
	child := c.WindowAt(0).(*mockWindow)
	if len(child.events) != 0 {
		t.Fatalf("child should not receive events while a popup is showing")
	}
}

func TestProcessRequestsAddWindowAndRemoveSelf(t *testing.T) {
	c := NewContainer()
	outerRecv := event.NewReceiver[Request]()
	c.SetOuter(outerRecv.NewPoster())

	child := newMock("child")
	c.AddWindow(child)

	child.poster.Post(AddWindowRequest{Window: newMock("added")})
	c.ProcessRequests()
	if c.Count() != 2 {
		t.Fatalf("Count() = %d, want 2 after AddWindow request", c.Count())
	}

	child.poster.Post(RemoveSelfWindowRequest{})
	c.ProcessRequests()
	if c.Count() != 1 {
		t.Fatalf("Count() = %d, want 1 after RemoveSelfWindow request", c.Count())
	}
}

func TestProcessRequestsRedrawBubblesUp(t *testing.T) {
	c := NewContainer()
	outerRecv := event.NewReceiver[Request]()
	outerPoster := outerRecv.NewPoster()
	c.SetOuter(outerPoster)

	child := newMock("child")
	c.AddWindow(child)
	child.poster.Post(RedrawRequest{})
	c.ProcessRequests()

	got := outerRecv.Poll()
	if len(got) != 1 {
		t.Fatalf("expected 1 bubbled request, got %d", len(got))
	}
	if _, ok := got[0].Payload.(RedrawRequest); !ok {
		t.Fatalf("expected a bubbled RedrawRequest, got %T", got[0].Payload)
	}
}

func TestTryQuitCascadesToEveryChild(t *testing.T) {
	c := NewContainer()
	c.AddWindow(newMock("a"))
	c.AddWindow(newMock("b"))

	c.TryQuit()

	for i := 0; i < c.Count(); i++ {
		m := c.WindowAt(i).(*mockWindow)
		if _, ok := m.lastEvent().(TryQuitEvent); !ok {
			t.Fatalf("window %d did not receive TryQuitEvent", i)
		}
	}
}
