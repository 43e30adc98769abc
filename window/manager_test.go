package window

import (
	"testing"

	"github.com/wnuspl/demys/plot"
)

func TestManagerAddWindowWrapsInTabAndSyncsLayout(t *testing.T) {
	m := NewManager(plot.New(24, 80), "/tmp")
	m.AddWindow(newMock("a"))

	if m.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", m.Count())
	}
	if _, ok := m.WindowAt(0).(*TabWindow); !ok {
		t.Fatalf("top-level window should be wrapped in a TabWindow, got %T", m.WindowAt(0))
	}

	m.AddWindow(newMock("b"))
	if m.Count() != 2 {
		t.Fatalf("Count() = %d, want 2 after second AddWindow", m.Count())
	}
}

// TestManagerCtrlLCyclesCurrent is spec §8 scenario 5.
func TestManagerCtrlLCyclesCurrent(t *testing.T) {
	m := NewManager(plot.New(24, 80), "/tmp")
	m.AddWindow(newMock("a"))
	m.AddWindow(newMock("b"))

	tabA := m.WindowAt(0).(*TabWindow)
	tabB := m.WindowAt(1).(*TabWindow)
	mockA := tabA.Current().(*mockWindow)
	mockB := tabB.Current().(*mockWindow)

	if m.CurrentIndex() != 0 {
		t.Fatalf("CurrentIndex() = %d, want 0", m.CurrentIndex())
	}
	m.Event(InputEvent{Input: KeyInput{Key: KeyChar, Rune: 'l', Mod: ModControl}})
	if m.CurrentIndex() != 1 {
		t.Fatalf("CurrentIndex() after Ctrl-L = %d, want 1", m.CurrentIndex())
	}
	if mockA.lastEvent() != (UnfocusEvent{}) {
		t.Fatalf("previously current window should have received Unfocus, got %#v", mockA.lastEvent())
	}
	if mockB.lastEvent() != (FocusEvent{}) {
		t.Fatalf("newly current window should have received Focus, got %#v", mockB.lastEvent())
	}
}

func TestManagerEscRequestsQuit(t *testing.T) {
	m := NewManager(plot.New(24, 80), "/tmp")
	if m.QuitRequested() {
		t.Fatalf("quit should not be requested initially")
	}
	m.Event(InputEvent{Input: KeyInput{Key: KeyEsc}})
	if !m.QuitRequested() {
		t.Fatalf("Esc should request quit")
	}
}

func TestManagerCtrlEndRequestsQuit(t *testing.T) {
	m := NewManager(plot.New(24, 80), "/tmp")
	m.Event(InputEvent{Input: KeyInput{Key: KeyEnd, Mod: ModControl}})
	if !m.QuitRequested() {
		t.Fatalf("Ctrl-End should request quit")
	}
}

func TestManagerCtrlXSendsTryQuitToCurrentTabOnly(t *testing.T) {
	m := NewManager(plot.New(24, 80), "/tmp")
	m.AddWindow(newMock("a"))
	m.AddWindow(newMock("b"))

	first := m.WindowAt(0).(*TabWindow).WindowAt(0).(*mockWindow)
	second := m.WindowAt(1).(*TabWindow).WindowAt(0).(*mockWindow)

	m.Event(InputEvent{Input: KeyInput{Key: KeyChar, Rune: 'x', Mod: ModControl}})

	if _, ok := first.lastEvent().(TryQuitEvent); !ok {
		t.Fatalf("current tab's child should have received TryQuitEvent")
	}
	if _, ok := second.lastEvent().(TryQuitEvent); ok {
		t.Fatalf("non-current tab's child should not have received TryQuitEvent")
	}
}

// TestManagerQCommandCascadesTryQuitToEveryTab covers the qall/q command
// dispatch half of spec §8 scenario 6 (the popup half lives in
// textwindow, which owns the unsaved-changes decision).
func TestManagerQCommandCascadesTryQuitToEveryTab(t *testing.T) {
	m := NewManager(plot.New(24, 80), "/tmp")
	m.AddWindow(newMock("a"))
	m.AddWindow(newMock("b"))

	m.handleCommand("qall")

	for i := 0; i < m.Count(); i++ {
		child := m.WindowAt(i).(*TabWindow).WindowAt(0).(*mockWindow)
		if _, ok := child.lastEvent().(TryQuitEvent); !ok {
			t.Fatalf("tab %d's child did not receive TryQuitEvent", i)
		}
	}
}

func TestManagerXCommandOpensExplorer(t *testing.T) {
	m := NewManager(plot.New(24, 80), "/tmp")
	m.NewExplorer = func(cwd string) Window { return newMock("explorer:" + cwd) }

	m.handleCommand("x")

	if m.Count() != 1 {
		t.Fatalf("Count() = %d, want 1 after x command", m.Count())
	}
	tab := m.WindowAt(0).(*TabWindow)
	if tab.Name() != "explorer:/tmp" {
		t.Fatalf("Name() = %q, want the injected explorer's name", tab.Name())
	}
}

func TestManagerResizeDispatchesToEveryChild(t *testing.T) {
	m := NewManager(plot.New(24, 80), "/tmp")
	m.AddWindow(newMock("a"))

	m.Resize(plot.New(40, 100))

	tab := m.WindowAt(0).(*TabWindow)
	child := tab.WindowAt(0).(*mockWindow)
	if _, ok := child.lastEvent().(ResizeEvent); !ok {
		t.Fatalf("child should have received a ResizeEvent on manager Resize")
	}
}
