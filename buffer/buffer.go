// Package buffer implements the gap-buffer text storage at the heart of
// the text window: a byte slab split into a pre-gap prefix and post-gap
// suffix, a linebreak index for O(log n) line lookup, and an operation
// log that makes every edit reversible (spec §4.3, §4.4).
package buffer

import (
	"os"
	"sort"
)

// DefaultGapSize is both the buffer's initial gap and the minimum amount
// any single regrow adds, per spec §4.3.
const DefaultGapSize = 200

// TextBuffer is a gap buffer: logical text is content[:cursor] followed by
// content[gapEnd:]. newLines holds the *logical* byte offset (position in
// the string String() returns, not a raw index into content) of every '\n'
// in the buffer, kept sorted. Tracking linebreaks by logical position
// rather than raw gap-relative index is what makes cursor moves a
// no-op for the linebreak index (the position of an untouched character
// never changes just because the gap slides past it).
type TextBuffer struct {
	content []byte
	cursor  int
	gapEnd  int
	length  int

	newLines []int

	operations []Operation

	path  string
	saved bool
}

// New returns an empty buffer with a freshly allocated default-size gap.
func New() *TextBuffer {
	content := make([]byte, DefaultGapSize)
	for i := range content {
		content[i] = ' '
	}
	return &TextBuffer{
		content: content,
		gapEnd:  DefaultGapSize,
		saved:   true,
	}
}

// NewFromFile reads path and returns a buffer preloaded with its contents,
// marked saved. The initial load bypasses the operation log — it isn't a
// user edit and shouldn't be undoable.
func NewFromFile(path string) (*TextBuffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	b := New()
	b.loadInitialContent(string(data))
	b.path = path
	b.saved = true
	return b, nil
}

func (b *TextBuffer) loadInitialContent(text string) {
	n := len(text)
	if b.gapEnd-b.cursor < n {
		b.reallocGap(n)
	}
	pos := b.cursor
	copy(b.content[pos:pos+n], text)
	for i := 0; i < n; i++ {
		if text[i] == '\n' {
			b.registerLinebreak(pos + i)
		}
	}
	b.length += n
	b.cursor += n
}

// Apply invokes op.Apply. On ErrGapTooSmall it grows the gap by at least
// DefaultGapSize (or the requested size, whichever is larger) and retries
// exactly once. On ErrMovesOutOfBounds it discards the operation silently.
// On ErrLogic it panics — that error class means an invariant was already
// violated before this call. On success the operation is pushed onto the
// undo log and the buffer is marked unsaved.
func (b *TextBuffer) Apply(op Operation) {
	err := op.Apply(b)
	if err == nil {
		b.operations = append(b.operations, op)
		b.saved = false
		return
	}

	switch e := err.(type) {
	case *ErrGapTooSmall:
		need := e.Required
		if need < DefaultGapSize {
			need = DefaultGapSize
		}
		b.reallocGap(b.gapEnd - b.cursor + need)
		b.Apply(op)
	case *ErrLogic:
		panic(e.Error())
	default:
		// ErrMovesOutOfBounds and anything else: silent no-op.
	}
}

// Undo pops the most recent operation and reverses it. An error here means
// a buffer invariant was already broken, so it panics rather than leaving
// the buffer in an inconsistent state.
func (b *TextBuffer) Undo() {
	if len(b.operations) == 0 {
		return
	}
	op := b.operations[len(b.operations)-1]
	b.operations = b.operations[:len(b.operations)-1]
	if err := op.Undo(b); err != nil {
		panic("buffer: undo violated an invariant: " + err.Error())
	}
}

// String returns the logical text: the pre-gap prefix followed by the
// post-gap suffix.
func (b *TextBuffer) String() string {
	return string(b.content[:b.cursor]) + string(b.content[b.gapEnd:])
}

// Cursor returns the logical cursor position (length of the prefix).
func (b *TextBuffer) Cursor() int { return b.cursor }

// Length returns the number of logical bytes in the buffer.
func (b *TextBuffer) Length() int { return b.length }

// GapEnd returns the raw index of the first post-gap byte.
func (b *TextBuffer) GapEnd() int { return b.gapEnd }

// Total returns the raw length of the underlying content slab.
func (b *TextBuffer) Total() int { return len(b.content) }

// NewLines returns a copy of the sorted logical positions of every '\n'.
func (b *TextBuffer) NewLines() []int {
	out := make([]int, len(b.newLines))
	copy(out, b.newLines)
	return out
}

// Path returns the backing file path, or "" if the buffer has none.
func (b *TextBuffer) Path() string { return b.path }

// SetPath sets the backing file path (used when "save as"-style naming is
// needed for a buffer created without one).
func (b *TextBuffer) SetPath(path string) { b.path = path }

// Saved reports whether the buffer matches what's on disk.
func (b *TextBuffer) Saved() bool { return b.saved }

// MarkUnsaved flags the buffer as having changes not reflected on disk,
// without any edit having gone through Apply — used when opening a
// buffer for a file that doesn't exist yet (spec §6: "creating empty
// buffers for missing files, marked unsaved").
func (b *TextBuffer) MarkUnsaved() { b.saved = false }

// Save overwrites the backing file with the buffer's logical content: a
// single truncating write, no temp-file swap, no lock file (spec §6).
func (b *TextBuffer) Save() error {
	if b.path == "" {
		return &ErrLogic{Message: "save requested with no backing path"}
	}
	if err := os.WriteFile(b.path, []byte(b.String()), 0o644); err != nil {
		return err
	}
	b.saved = true
	return nil
}

// reallocGap grows the gap to at least size bytes by splicing blank bytes
// at the cursor. Logical text, cursor, and the linebreak index (which
// tracks logical positions, untouched by where the gap physically sits)
// are all unaffected; only gapEnd increases.
func (b *TextBuffer) reallocGap(size int) {
	if b.gapEnd-b.cursor >= size {
		return
	}
	diff := size - (b.gapEnd - b.cursor)
	grown := make([]byte, 0, len(b.content)+diff)
	grown = append(grown, b.content[:b.cursor]...)
	for i := 0; i < diff; i++ {
		grown = append(grown, ' ')
	}
	grown = append(grown, b.content[b.cursor:]...)
	b.content = grown
	b.gapEnd += diff
}

// lineAt returns the 0-based line number containing logical position pos:
// the count of linebreaks strictly before it.
func (b *TextBuffer) lineAt(pos int) int {
	return sort.Search(len(b.newLines), func(i int) bool {
		return b.newLines[i] >= pos
	})
}

// lineBounds returns the logical [start, end) span of line, where end is
// the position of the line's own trailing '\n' (or buffer length for the
// last line) — i.e. "the cell immediately before the next linebreak."
func (b *TextBuffer) lineBounds(line int) (start, end int) {
	if line == 0 {
		start = 0
	} else {
		start = b.newLines[line-1] + 1
	}
	if line < len(b.newLines) {
		end = b.newLines[line]
	} else {
		end = b.length
	}
	return start, end
}

// lineCount returns the number of logical lines (linebreaks + 1).
func (b *TextBuffer) lineCount() int { return len(b.newLines) + 1 }

func (b *TextBuffer) registerLinebreak(pos int) {
	i := sort.SearchInts(b.newLines, pos)
	b.newLines = append(b.newLines, 0)
	copy(b.newLines[i+1:], b.newLines[i:])
	b.newLines[i] = pos
}

func (b *TextBuffer) unregisterLinebreak(pos int) {
	i := sort.SearchInts(b.newLines, pos)
	if i < len(b.newLines) && b.newLines[i] == pos {
		b.newLines = append(b.newLines[:i], b.newLines[i+1:]...)
	}
}

// shiftNewLines adds delta to every linebreak position at or past pos,
// used when an insert or delete at pos changes everything logically after
// it. Order is preserved since the shift is monotonic.
func (b *TextBuffer) shiftNewLines(pos, delta int) {
	for i, v := range b.newLines {
		if v >= pos {
			b.newLines[i] = v + delta
		}
	}
}
