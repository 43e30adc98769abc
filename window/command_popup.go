package window

import (
	"github.com/wnuspl/demys/canvas"
	"github.com/wnuspl/demys/event"
	"github.com/wnuspl/demys/plot"
	"github.com/wnuspl/demys/style"
)

// CommandPopup is the ":cmd" bar along the terminal's bottom row (spec
// §4.12). Ported from original_source/src/window/command.rs.
type CommandPopup struct {
	cmd    string
	poster *event.Poster[Request]
}

// NewCommandPopup returns an empty command popup.
func NewCommandPopup() *CommandPopup { return &CommandPopup{} }

func (c *CommandPopup) Init(poster *event.Poster[Request]) { c.poster = poster }
func (c *CommandPopup) Name() string                      { return "command" }
func (c *CommandPopup) InputBypass() bool                  { return true }
func (c *CommandPopup) Tick()                              {}
func (c *CommandPopup) CollectRequests() []Request         { return nil }

func (c *CommandPopup) Event(ev Event) {
	in, ok := ev.(InputEvent)
	if !ok {
		return
	}
	switch in.Input.Key {
	case KeyChar:
		c.cmd += string(in.Input.Rune)
	case KeyBackspace:
		if len(c.cmd) > 0 {
			c.cmd = c.cmd[:len(c.cmd)-1]
		}
	case KeyEnter:
		c.poster.Post(CommandRequest{Cmd: c.cmd})
		c.poster.Post(RemoveSelfPopupRequest{})
	case KeyEsc:
		c.poster.Post(RemoveSelfPopupRequest{})
	}
	// command.rs's event handler posts Redraw unconditionally on every
	// key, regardless of which branch ran.
	c.poster.Post(RedrawRequest{})
}

func (c *CommandPopup) Draw(canv *canvas.Canvas) {
	canv.Write(style.New(":" + c.cmd))
}

// Rect anchors the popup to the full-width bottom row.
func (c *CommandPopup) Rect(screen plot.Plot) (plot.Plot, plot.Plot) {
	return PopupRect(screen,
		Placement{Kind: PositiveBound, Offset: 1}, Placement{Kind: NegativeBound, Offset: 0},
		Size{Kind: Fixed, Value: 1}, Size{Kind: Percent, Value: 1.0})
}
