package term

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/wnuspl/demys/plot"
	"github.com/wnuspl/demys/window"
)

// Driver owns the terminal's raw-mode/alternate-screen lifecycle and
// feeds decoded window.Events to the main loop through a single channel,
// matching the "single consumer" shape the rest of demys assumes (spec
// §5). Grounded on tui/screen.go's NewScreen/Close and its SIGWINCH
// handling, reworked around window.Event rather than tui's own Screen
// buffer (demys's Canvas owns compositing instead).
type Driver struct {
	in     *os.File
	out    *bufio.Writer
	state  *term.State
	events chan window.Event
	done   chan struct{}
	resize chan os.Signal
}

// Open enables raw mode, enters the alternate screen, and hides the
// cursor. The caller must call Close on every exit path, including
// panic, to avoid leaving the user's terminal in raw mode (spec §5:
// "a scoped guard ensures they are released on all exit paths").
func Open() (*Driver, error) {
	state, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("term: enable raw mode: %w", err)
	}

	d := &Driver{
		in:     os.Stdin,
		out:    bufio.NewWriterSize(os.Stdout, 64*1024),
		state:  state,
		events: make(chan window.Event, 16),
		done:   make(chan struct{}),
	}

	d.out.WriteString("\x1b[?1049h") // enter alternate screen
	d.out.WriteString("\x1b[?25l")   // hide cursor
	d.out.Flush()

	rawCh := make(chan byte, 128)
	go readBytes(d.in, rawCh)
	go d.decodeLoop(rawCh)

	d.resize = make(chan os.Signal, 1)
	signal.Notify(d.resize, syscall.SIGWINCH)
	go d.resizeLoop()

	return d, nil
}

// readBytes is the sole goroutine that touches stdin, matching
// tui/input.go's rationale: a single reader eliminates data races on the
// underlying file descriptor.
func readBytes(f *os.File, out chan<- byte) {
	buf := make([]byte, 1)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			out <- buf[0]
		}
		if err != nil {
			close(out)
			return
		}
	}
}

func (d *Driver) decodeLoop(raw <-chan byte) {
	dec := newDecoder(raw)
	for {
		k, ok := dec.next()
		if !ok {
			close(d.events)
			return
		}
		select {
		case d.events <- window.InputEvent{Input: k}:
		case <-d.done:
			return
		}
	}
}

func (d *Driver) resizeLoop() {
	for {
		select {
		case <-d.done:
			return
		case <-d.resize:
			dim, err := d.Size()
			if err != nil {
				continue
			}
			select {
			case d.events <- window.ResizeEvent{Dim: dim}:
			case <-d.done:
				return
			}
		}
	}
}

// Events returns the channel the main loop reads from: one window.Event
// per keystroke or resize (spec §5: "the blocking read... yields to the
// OS" — consuming from this channel is demys's equivalent poll).
func (d *Driver) Events() <-chan window.Event { return d.events }

// Size returns the terminal's current (rows, cols).
func (d *Driver) Size() (plot.Plot, error) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return plot.Plot{}, err
	}
	return plot.New(h, w), nil
}

// Flusher returns the buffered writer backing the canvas.Writer
// implementation in writer.go.
func (d *Driver) Flusher() *bufio.Writer { return d.out }

// Close restores cosmetic terminal state (cursor visible, normal screen
// buffer) and disables raw mode. Safe to call more than once.
func (d *Driver) Close() {
	select {
	case <-d.done:
		return
	default:
		close(d.done)
	}
	signal.Stop(d.resize)

	d.out.WriteString("\x1b[?25h")
	d.out.WriteString("\x1b[?1049l")
	d.out.Flush()

	if d.state != nil {
		term.Restore(int(d.in.Fd()), d.state)
	}
}
