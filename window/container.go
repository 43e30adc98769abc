package window

import (
	"github.com/wnuspl/demys/event"
)

// entry pairs a child window with the id its own poster was minted
// under, so a Container can find it again when draining its receiver.
type entry struct {
	id event.Id
	w  Window
}

// Container is the ordered-container mixin shared by TabWindow and
// Manager (spec §4.6): an id-addressed set of child windows in display
// order, an optional popup stack layered above them, and the event-bus
// plumbing that lets requests bubble up from arbitrary depth without any
// child holding a pointer to its parent.
//
// A child never talks to its container directly. Init hands it a
// *event.Poster[Request] minted from the container's own receiver; every
// request the child (or something nested under it) posts later shows up
// in that receiver tagged with the child's id, letting ProcessRequests
// dispatch AddWindow/RemoveSelfWindow/etc. against the right entry no
// matter how deep the original poster came from.
type Container struct {
	windows []entry
	current int

	popups []popupEntry

	recv *event.Receiver[Request]
	lie  *event.Poster[Request]
	outer *event.Poster[Request]

	pending []Request

	// CommandHandler, if set, replaces the default "route to current
	// child" behavior for a dispatched Command request. TabWindow leaves
	// it nil; Manager sets it to intercept q/qall/x itself.
	CommandHandler func(cmd string)

	// AddWindowHook, if set, replaces the default "add as a sibling of
	// the current child" behavior for a dispatched AddWindow request.
	// TabWindow leaves it nil (a window opened by a child, e.g. the
	// filesystem explorer's Enter-on-file, becomes a new tab alongside
	// it); Manager sets it so a bubbled-up window is wrapped in a fresh
	// top-level TabWindow and the layout resynced, rather than added
	// directly to the manager's own window list.
	AddWindowHook func(w Window)
}

type popupEntry struct {
	id event.Id
	p  Popup
}

// NewContainer returns an empty, ready-to-use Container.
func NewContainer() *Container {
	recv := event.NewReceiver[Request]()
	return &Container{
		recv: recv,
		lie:  recv.NewPoster(),
	}
}

// SetOuter wires the poster a Container re-emits Redraw requests (and
// anything else it doesn't own) through, once it is itself embedded in
// an outer container.
func (c *Container) SetOuter(p *event.Poster[Request]) { c.outer = p }

// Post re-emits a request upward through the outer poster, if any.
func (c *Container) Post(r Request) {
	if c.outer != nil {
		c.outer.Post(r)
	}
}

// AddWindow appends w in display order, initializing it with a freshly
// minted poster. The current index is left as it is, so the first window
// added stays current until CycleCurrent or a removal moves it; no Focus
// or Unfocus event is sent.
func (c *Container) AddWindow(w Window) {
	p := c.recv.NewPoster()
	w.Init(p)
	c.windows = append(c.windows, entry{id: p.ID(), w: w})
}

// RemoveWindowID removes the child addressed by id, if present. Per
// spec §4.6, "if the removed index was ≤ current, decrement current
// (wrap to zero if empty)": a removal at or before the current index
// shifts everything after it left by one, so current must move with it
// to keep pointing at the same window (or its predecessor, if it was
// the one removed).
func (c *Container) RemoveWindowID(id event.Id) {
	for i, e := range c.windows {
		if e.id == id {
			c.windows = append(c.windows[:i], c.windows[i+1:]...)
			if i <= c.current {
				c.current--
				if c.current < 0 {
					c.current = 0
				}
			}
			return
		}
	}
}

// RemoveCurrent removes the current child.
func (c *Container) RemoveCurrent() {
	if len(c.windows) == 0 {
		return
	}
	c.RemoveWindowID(c.windows[c.current].id)
}

// CycleCurrent advances the current child index by one, wrapping, and
// sends Unfocus to the old current child and Focus to the new one
// (spec §4.6 "send unfocus to the old current … send focus to the new
// current").
func (c *Container) CycleCurrent() {
	if len(c.windows) == 0 {
		return
	}
	old := c.Current()
	c.current = (c.current + 1) % len(c.windows)
	if old != nil {
		old.Event(UnfocusEvent{})
	}
	c.Current().Event(FocusEvent{})
}

// Count returns the number of child windows.
func (c *Container) Count() int { return len(c.windows) }

// CurrentID returns the id of the current child, and ok=false if there
// is none.
func (c *Container) CurrentID() (event.Id, bool) {
	if len(c.windows) == 0 {
		return 0, false
	}
	return c.windows[c.current].id, true
}

// CurrentIndex returns the index of the current child.
func (c *Container) CurrentIndex() int { return c.current }

// Current returns the current child window, or nil if there is none.
func (c *Container) Current() Window {
	if len(c.windows) == 0 {
		return nil
	}
	return c.windows[c.current].w
}

// WindowAt returns the i'th child window in display order.
func (c *Container) WindowAt(i int) Window {
	if i < 0 || i >= len(c.windows) {
		return nil
	}
	return c.windows[i].w
}

// Windows returns the child windows in display order.
func (c *Container) Windows() []Window {
	out := make([]Window, len(c.windows))
	for i, e := range c.windows {
		out[i] = e.w
	}
	return out
}

// AddPopup pushes p onto the popup stack, initializing it with a
// freshly minted poster. The topmost popup receives events and input
// bypass in preference to every child window.
func (c *Container) AddPopup(p Popup) {
	poster := c.recv.NewPoster()
	p.Init(poster)
	c.popups = append(c.popups, popupEntry{id: poster.ID(), p: p})
}

// RemovePopupID removes the popup addressed by id, if present.
func (c *Container) RemovePopupID(id event.Id) {
	for i, e := range c.popups {
		if e.id == id {
			c.popups = append(c.popups[:i], c.popups[i+1:]...)
			return
		}
	}
}

// RemoveTopPopup removes the topmost popup, if any.
func (c *Container) RemoveTopPopup() {
	if len(c.popups) == 0 {
		return
	}
	c.popups = c.popups[:len(c.popups)-1]
}

// TopPopup returns the topmost popup, or nil if the stack is empty.
func (c *Container) TopPopup() Popup {
	if len(c.popups) == 0 {
		return nil
	}
	return c.popups[len(c.popups)-1].p
}

// Popups returns the popup stack bottom to top.
func (c *Container) Popups() []Popup {
	out := make([]Popup, len(c.popups))
	for i, e := range c.popups {
		out[i] = e.p
	}
	return out
}

// HasPopup reports whether a popup is currently showing.
func (c *Container) HasPopup() bool { return len(c.popups) > 0 }

// DistributeEvent routes ev to the topmost popup if one is showing,
// else to the current child window (spec §4.6).
func (c *Container) DistributeEvent(ev Event) {
	if p := c.TopPopup(); p != nil {
		p.Event(ev)
		return
	}
	if w := c.Current(); w != nil {
		w.Event(ev)
	}
}

// TryQuit cascades a TryQuitEvent directly to every child window (not
// through the event bus), letting each decide locally whether to close
// (spec §4.6, §8 scenario for "qall"). Matches
// original_source/src/window/tab.rs's try_quit, which calls window.event
// on every child directly rather than posting anything.
func (c *Container) TryQuit() {
	for _, e := range c.windows {
		e.w.Event(TryQuitEvent{})
	}
}

// Pending drains and returns the requests this container has decided
// the caller should see (everything ProcessRequests didn't resolve
// itself or re-emit upward).
func (c *Container) Pending() []Request {
	p := c.pending
	c.pending = nil
	return p
}

// Tick advances every child and popup one step, collects what they
// report, re-attributes it under the reporting entity's own id via
// PostLie, and processes the resulting batch.
func (c *Container) Tick() {
	for _, e := range c.windows {
		e.w.Tick()
		for _, r := range e.w.CollectRequests() {
			c.lie.PostLie(r, e.id)
		}
	}
	for _, e := range c.popups {
		e.p.Tick()
		for _, r := range e.p.CollectRequests() {
			c.lie.PostLie(r, e.id)
		}
	}
	c.ProcessRequests()
}

// CollectRequests is the recursive variant of Tick: it advances the
// container and then returns (and clears) whatever it decided the
// caller should see (spec §4.5).
func (c *Container) CollectRequests() []Request {
	c.Tick()
	return c.Pending()
}

// ProcessRequests drains the bus and dispatches each entry by the rules
// in spec §4.6: AddWindow/AddPopup mutate this container directly;
// RemoveSelfWindow/RemoveSelfPopup remove the reporting entry by its
// tagged id; Command is routed to CommandHandler if set, else to the
// current child as a CommandEvent; Redraw is re-emitted upward
// immediately; anything else (Clear, Cursor, None) is appended to
// pending for the caller to read later.
func (c *Container) ProcessRequests() {
	for _, entry := range c.recv.Poll() {
		switch r := entry.Payload.(type) {
		case AddWindowRequest:
			if c.AddWindowHook != nil {
				c.AddWindowHook(r.Window)
			} else {
				c.AddWindow(r.Window)
			}
		case AddPopupRequest:
			c.AddPopup(r.Popup)
		case RemoveSelfWindowRequest:
			c.RemoveWindowID(entry.Id)
		case RemoveSelfPopupRequest:
			c.RemovePopupID(entry.Id)
		case CommandRequest:
			if c.CommandHandler != nil {
				c.CommandHandler(r.Cmd)
			} else if w := c.Current(); w != nil {
				w.Event(CommandEvent{Cmd: r.Cmd})
			}
		case RedrawRequest:
			c.Post(RedrawRequest{})
		default:
			c.pending = append(c.pending, r)
		}
	}
}
