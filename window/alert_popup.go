package window

import (
	"github.com/wnuspl/demys/canvas"
	"github.com/wnuspl/demys/event"
	"github.com/wnuspl/demys/plot"
	"github.com/wnuspl/demys/style"
)

// alertMargin is the fixed border/content margin original_source's
// AlertSettings defaults to.
const alertMargin = 2

// AlertOption is one selectable choice in an AlertPopup: a label and the
// requests to post (in order) when it's chosen.
type AlertOption struct {
	Label    string
	Requests []Request
}

// AlertPopup is a small bordered, centered modal offering the user a
// choice among a handful of options, navigated with the arrow keys and
// confirmed with Enter (spec §8 scenario 6). Ported from
// original_source/src/textedit/alert.rs, with the original's "any
// character cycles the selection" input replaced by
// Left/Right-arrow-then-Enter per spec.md's own description of this
// interaction.
type AlertPopup struct {
	Message string
	Options []AlertOption
	current int
	poster  *event.Poster[Request]
}

// NewAlertPopup returns an alert showing message with the given options,
// the first one initially selected.
func NewAlertPopup(message string, options ...AlertOption) *AlertPopup {
	return &AlertPopup{Message: message, Options: options}
}

// NewUnsavedChangesAlert returns the alert a text window shows when a
// "q" command would discard unsaved changes (spec §4.9, §8 scenario 6):
// Save runs "wq", Discard force-closes with "q!", Go Back only dismisses
// the alert.
func NewUnsavedChangesAlert() *AlertPopup {
	return NewAlertPopup("Unsaved changes",
		AlertOption{Label: "Save", Requests: []Request{CommandRequest{Cmd: "wq"}}},
		AlertOption{Label: "Discard", Requests: []Request{CommandRequest{Cmd: "q!"}}},
		AlertOption{Label: "Go Back"},
	)
}

func (a *AlertPopup) Init(poster *event.Poster[Request]) { a.poster = poster }
func (a *AlertPopup) Name() string                       { return "alert" }
func (a *AlertPopup) InputBypass() bool                  { return true }
func (a *AlertPopup) Tick()                              {}
func (a *AlertPopup) CollectRequests() []Request         { return nil }

func (a *AlertPopup) Event(ev Event) {
	in, ok := ev.(InputEvent)
	if !ok || len(a.Options) == 0 {
		return
	}
	switch in.Input.Key {
	case KeyLeft:
		a.current = (a.current - 1 + len(a.Options)) % len(a.Options)
		a.poster.Post(RedrawRequest{})
	case KeyRight:
		a.current = (a.current + 1) % len(a.Options)
		a.poster.Post(RedrawRequest{})
	case KeyEnter:
		for _, r := range a.Options[a.current].Requests {
			a.poster.Post(r)
		}
		a.poster.Post(RemoveSelfPopupRequest{})
	case KeyEsc:
		a.poster.Post(RemoveSelfPopupRequest{})
	}
}

func (a *AlertPopup) Draw(c *canvas.Canvas) {
	dim := c.Dim()
	for r := 0; r < dim.Row; r++ {
		c.WriteAt(style.New(spaces(dim.Col)), plot.New(r, 0))
	}

	if dim.Row > 0 && dim.Col > 0 {
		c.WriteAt(style.New(corner(dim.Col)), plot.New(0, 0))
		c.WriteAt(style.New(corner(dim.Col)), plot.New(dim.Row-1, 0))
		for r := 1; r < dim.Row-1; r++ {
			c.WriteAt(style.New("|"), plot.New(r, 0))
			c.WriteAt(style.New("|"), plot.New(r, dim.Col-1))
		}
	}

	c.WriteAt(style.New(a.Message), plot.New(alertMargin, alertMargin))

	col := alertMargin
	row := alertMargin + 2
	for i, opt := range a.Options {
		text := style.New(opt.Label)
		if i == a.current {
			c.SetAttribute(style.Bg(style.ColorWhite), row*dim.Col+col, row*dim.Col+col+len(opt.Label))
		}
		c.WriteAt(text, plot.New(row, col))
		col += len(opt.Label) + 2
	}
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

func corner(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '-'
	}
	return string(b)
}

// Rect centers the alert, sized to fit its message plus the fixed
// border/content margin, matching alert.rs's term_pos/term_dim formulas
// exactly (dimension = 3+2*margin rows, len(message)+2*margin cols;
// position = Centered(-(margin + content/2)) on both axes, where content
// is 3 rows and len(message) cols, i.e. half the dimension).
func (a *AlertPopup) Rect(screen plot.Plot) (plot.Plot, plot.Plot) {
	rowDim := 3 + alertMargin*2
	colDim := len(a.Message) + alertMargin*2
	return PopupRect(screen,
		Placement{Kind: Centered, Offset: -(alertMargin + 3/2)},
		Placement{Kind: Centered, Offset: -(alertMargin + len(a.Message)/2)},
		Size{Kind: Fixed, Value: float64(rowDim)}, Size{Kind: Fixed, Value: float64(colDim)})
}
