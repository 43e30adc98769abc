// Package window implements the recursive window tree: the capability
// contract every drawable node exposes (spec §4.5), the ordered-container
// mixin that gives a node window-of-windows semantics (§4.6), the tab
// window and root window manager built on it (§4.7, §4.8), and the two
// built-in popups (§4.12).
package window

import (
	"github.com/wnuspl/demys/canvas"
	"github.com/wnuspl/demys/event"
	"github.com/wnuspl/demys/plot"
)

// Key names one of the recognized input keys (spec §6). Rune is only
// meaningful when Key is KeyChar.
type Key int

const (
	KeyNone Key = iota
	KeyChar
	KeyEnter
	KeyBackspace
	KeyEsc
	KeyTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnd
	KeyFunction
)

// Mod is a bit-set of held modifiers (spec §6: "at least CONTROL and
// SHIFT"). ModAlt is carried for completeness with the teacher's own key
// decoder, which recognizes Alt-prefixed escapes.
type Mod int

const (
	ModNone    Mod = 0
	ModControl Mod = 1 << iota
	ModShift
	ModAlt
)

// Has reports whether m has every bit set in o.
func (m Mod) Has(o Mod) bool { return m&o == o }

// KeyInput is one decoded keystroke.
type KeyInput struct {
	Key  Key
	Rune rune
	FN   int
	Mod  Mod
}

// Event is the internal boundary between the terminal driver and the
// window tree (spec §6).
type Event interface {
	isEvent()
}

type InputEvent struct{ Input KeyInput }
type ResizeEvent struct{ Dim plot.Plot }
type FocusEvent struct{}
type UnfocusEvent struct{}
type TryQuitEvent struct{}
type CommandEvent struct{ Cmd string }
type NoneEvent struct{}

func (InputEvent) isEvent()    {}
func (ResizeEvent) isEvent()   {}
func (FocusEvent) isEvent()    {}
func (UnfocusEvent) isEvent()  {}
func (TryQuitEvent) isEvent()  {}
func (CommandEvent) isEvent()  {}
func (NoneEvent) isEvent()     {}

// Request is the internal bus payload windows post to their owning
// container (spec §6).
type Request interface {
	isRequest()
}

type RedrawRequest struct{}
type ClearRequest struct{}
type CursorRequest struct{ Pos *plot.Plot }
type RemoveSelfWindowRequest struct{}
type RemoveSelfPopupRequest struct{}
type AddWindowRequest struct{ Window Window }
type AddPopupRequest struct{ Popup Popup }
type CommandRequest struct{ Cmd string }
type NoneRequest struct{}

func (RedrawRequest) isRequest()           {}
func (ClearRequest) isRequest()            {}
func (CursorRequest) isRequest()           {}
func (RemoveSelfWindowRequest) isRequest() {}
func (RemoveSelfPopupRequest) isRequest()  {}
func (AddWindowRequest) isRequest()        {}
func (AddPopupRequest) isRequest()         {}
func (CommandRequest) isRequest()          {}
func (NoneRequest) isRequest()             {}

// Window is the capability set every node of the tree exposes (spec §4.5).
// event.Id (minted when a container adds this window) serves as its
// address; nothing above a Window holds a pointer to it, only the id.
type Window interface {
	Init(poster *event.Poster[Request])
	Event(ev Event)
	Draw(c *canvas.Canvas)
	Tick()
	CollectRequests() []Request
	InputBypass() bool
	Name() string
}

// Popup refines Window with the placement queries a container needs to
// resolve a concrete on-screen rectangle each frame (spec §4.12, §9: "Popup
// is a refinement of Window adding position and dimension queries").
type Popup interface {
	Window
	Rect(screen plot.Plot) (origin, dim plot.Plot)
}
