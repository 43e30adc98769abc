package window

import (
	"testing"

	"github.com/wnuspl/demys/event"
)

func TestTabWindowCyclesWithCtrlTab(t *testing.T) {
	tab := NewTabWindow()
	tab.AddWindow(newMock("a"))
	tab.AddWindow(newMock("b"))

	if tab.Name() != "a" {
		t.Fatalf("Name() = %q, want %q", tab.Name(), "a")
	}

	tab.Event(InputEvent{Input: KeyInput{Key: KeyTab, Mod: ModControl}})
	if tab.Name() != "b" {
		t.Fatalf("Name() after Ctrl-Tab = %q, want %q", tab.Name(), "b")
	}
}

func TestTabWindowPopCurrentRequestsAddWindow(t *testing.T) {
	tab := NewTabWindow()
	tab.AddWindow(newMock("a"))
	tab.AddWindow(newMock("b"))

	recv, poster := wireOuter(tab)
	tab.Event(InputEvent{Input: KeyInput{Key: KeyRight, Mod: ModControl}})
	_ = poster

	// Event() bubbles both the pop's own request and a trailing
	// RedrawRequest (it consumed the key), so look across everything
	// posted rather than assuming a single entry.
	reqs := recv.Poll()
	if !containsAddWindow(reqs) {
		t.Fatalf("expected an AddWindowRequest among bubbled requests, got %+v", reqs)
	}
	if tab.Count() != 1 {
		t.Fatalf("Count() after pop = %d, want 1", tab.Count())
	}
}

func TestTabWindowPopLastChildRemovesSelf(t *testing.T) {
	tab := NewTabWindow()
	tab.AddWindow(newMock("only"))

	recv, _ := wireOuter(tab)
	tab.Event(InputEvent{Input: KeyInput{Key: KeyRight, Mod: ModControl}})

	reqs := recv.Poll()
	found := false
	for _, r := range reqs {
		if _, ok := r.Payload.(RemoveSelfWindowRequest); ok {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a RemoveSelfWindowRequest when popping the last child, got %+v", reqs)
	}
}

func containsAddWindow(reqs []event.Entry[Request]) bool {
	for _, r := range reqs {
		if _, ok := r.Payload.(AddWindowRequest); ok {
			return true
		}
	}
	return false
}

// TestTabWindowTryQuitReachesEveryChild covers spec §4.6/§5: TryQuit
// cascades to every child of a container, not just the current one, so
// a hidden sibling still gets to surface its own unsaved-changes prompt.
func TestTabWindowTryQuitReachesEveryChild(t *testing.T) {
	tab := NewTabWindow()
	a := newMock("a")
	b := newMock("b")
	tab.AddWindow(a)
	tab.AddWindow(b)

	if tab.Current() != a {
		t.Fatalf("setup: current should be the first-added window")
	}

	tab.Event(TryQuitEvent{})

	if a.lastEvent() != (TryQuitEvent{}) {
		t.Fatalf("current child should have received TryQuit, got %#v", a.lastEvent())
	}
	if b.lastEvent() != (TryQuitEvent{}) {
		t.Fatalf("non-current child should have received TryQuit, got %#v", b.lastEvent())
	}
}

func TestTabWindowToggleHeader(t *testing.T) {
	tab := NewTabWindow()
	tab.AddWindow(newMock("a"))

	before := tab.showHeader
	tab.Event(InputEvent{Input: KeyInput{Key: KeyChar, Rune: '\''}})
	if tab.showHeader == before {
		t.Fatalf("header visibility did not toggle")
	}
}
