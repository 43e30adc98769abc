// Package term is demys's concrete implementation of the raw terminal
// I/O driver and style-to-escape-sequence translator that spec §1/§6
// declare out of scope for the core: a keystroke source, a writer sink,
// alternate-screen/raw-mode control, and a canvas.Writer that turns a
// flattened Command stream into ANSI bytes. Grounded on the teacher's
// tui/term.go (raw mode via golang.org/x/term) and tui/input.go (the
// byte-at-a-time ANSI decoder), adapted to emit window.KeyInput instead
// of tui.KeyEvent.
package term

import (
	"time"

	"github.com/wnuspl/demys/window"
)

// escTimeout is how long the decoder waits for follow-up bytes before
// treating a lone 0x1b as a bare Esc, matching tui/input.go's 10ms wait.
const escTimeout = 10 * time.Millisecond

// csiTimeout bounds how long a CSI sequence's parameter bytes may trickle
// in before the decoder gives up on it.
const csiTimeout = 50 * time.Millisecond

// decoder turns a stream of raw stdin bytes into window.KeyInput values.
// One decoder owns exactly one reader goroutine's output channel; it is
// not safe to share across goroutines, matching the "single consumer"
// shape the rest of the input path assumes.
type decoder struct {
	raw <-chan byte
}

func newDecoder(raw <-chan byte) *decoder { return &decoder{raw: raw} }

// next blocks for the next decoded key, or returns ok=false once raw is
// closed (stdin hit EOF or the driver is shutting down).
func (d *decoder) next() (window.KeyInput, bool) {
	b, ok := <-d.raw
	if !ok {
		return window.KeyInput{}, false
	}
	if b == 0x1b {
		return d.decodeEscape()
	}
	return decodeByte(b), true
}

func (d *decoder) decodeEscape() (window.KeyInput, bool) {
	select {
	case next, ok := <-d.raw:
		if !ok {
			return window.KeyInput{Key: window.KeyEsc}, true
		}
		switch next {
		case '[':
			return d.decodeCSI()
		case 'O':
			return d.decodeSS3()
		default:
			return window.KeyInput{Key: window.KeyChar, Rune: rune(next), Mod: window.ModAlt}, true
		}
	case <-time.After(escTimeout):
		return window.KeyInput{Key: window.KeyEsc}, true
	}
}

func (d *decoder) readWithTimeout(timeout time.Duration) (byte, bool) {
	select {
	case b, ok := <-d.raw:
		return b, ok
	case <-time.After(timeout):
		return 0, false
	}
}

func (d *decoder) decodeCSI() (window.KeyInput, bool) {
	var params []byte
	for {
		b, ok := d.readWithTimeout(csiTimeout)
		if !ok {
			return window.KeyInput{}, false
		}
		if b >= 0x40 && b <= 0x7e {
			return dispatchCSI(params, b), true
		}
		params = append(params, b)
	}
}

func (d *decoder) decodeSS3() (window.KeyInput, bool) {
	b, ok := d.readWithTimeout(csiTimeout)
	if !ok {
		return window.KeyInput{}, false
	}
	switch b {
	case 'A':
		return window.KeyInput{Key: window.KeyUp}, true
	case 'B':
		return window.KeyInput{Key: window.KeyDown}, true
	case 'C':
		return window.KeyInput{Key: window.KeyRight}, true
	case 'D':
		return window.KeyInput{Key: window.KeyLeft}, true
	case 'F':
		return window.KeyInput{Key: window.KeyEnd}, true
	case 'P', 'Q', 'R', 'S':
		return window.KeyInput{Key: window.KeyFunction, FN: int(b-'P') + 1}, true
	}
	return window.KeyInput{Key: window.KeyNone}, true
}

// dispatchCSI interprets a completed "ESC [ <params> <final>" sequence.
// modFromParams recovers the xterm modifier encoding ("...;5~" == Ctrl)
// that terminals append to cursor/function-key sequences.
func dispatchCSI(params []byte, final byte) window.KeyInput {
	p := string(params)
	mod := modFromParams(p)

	switch final {
	case 'A':
		return window.KeyInput{Key: window.KeyUp, Mod: mod}
	case 'B':
		return window.KeyInput{Key: window.KeyDown, Mod: mod}
	case 'C':
		return window.KeyInput{Key: window.KeyRight, Mod: mod}
	case 'D':
		return window.KeyInput{Key: window.KeyLeft, Mod: mod}
	case 'H':
		return window.KeyInput{Key: window.KeyNone, Mod: mod}
	case 'F':
		return window.KeyInput{Key: window.KeyEnd, Mod: mod}
	case '~':
		key := p
		if i := indexOfByte(p, ';'); i >= 0 {
			key = p[:i]
		}
		switch key {
		case "4":
			return window.KeyInput{Key: window.KeyEnd, Mod: mod}
		case "15":
			return window.KeyInput{Key: window.KeyFunction, FN: 5, Mod: mod}
		case "17":
			return window.KeyInput{Key: window.KeyFunction, FN: 6, Mod: mod}
		case "18":
			return window.KeyInput{Key: window.KeyFunction, FN: 7, Mod: mod}
		case "19":
			return window.KeyInput{Key: window.KeyFunction, FN: 8, Mod: mod}
		}
	}
	return window.KeyInput{Key: window.KeyNone, Mod: mod}
}

// modFromParams extracts the trailing ";N" xterm modifier code, mapping
// it to the bit-set spec §6 requires ("at least CONTROL and SHIFT").
func modFromParams(p string) window.Mod {
	i := indexOfByte(p, ';')
	if i < 0 {
		return window.ModNone
	}
	switch p[i+1:] {
	case "2":
		return window.ModShift
	case "3":
		return window.ModAlt
	case "5":
		return window.ModControl
	case "6":
		return window.ModControl | window.ModShift
	}
	return window.ModNone
}

func indexOfByte(s string, sep byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			return i
		}
	}
	return -1
}

// decodeByte handles a single non-ESC byte: control characters, DEL, and
// plain printable runes.
func decodeByte(b byte) window.KeyInput {
	switch {
	case b == 0x0d:
		return window.KeyInput{Key: window.KeyEnter}
	case b == 0x09:
		return window.KeyInput{Key: window.KeyTab}
	case b == 0x08, b == 0x7f:
		return window.KeyInput{Key: window.KeyBackspace}
	case b <= 0x1f:
		// Ctrl+<letter>: the low 5 bits of the control byte recover the
		// letter (Ctrl-A == 0x01 .. Ctrl-Z == 0x1a).
		return window.KeyInput{Key: window.KeyChar, Rune: rune(b + 0x60), Mod: window.ModControl}
	default:
		return window.KeyInput{Key: window.KeyChar, Rune: rune(b)}
	}
}
