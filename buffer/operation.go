package buffer

// Operation is a reversible edit: TextBuffer.Apply/Undo own the retry and
// panic policy around these two methods (spec §4.4).
type Operation interface {
	Apply(b *TextBuffer) error
	Undo(b *TextBuffer) error
}

// InsertChar writes a single byte at the cursor. It does not special-case
// '\n' — a caller inserting a newline should use InsertLinebreak instead,
// which is what registers it in the linebreak index.
type InsertChar struct {
	Char byte
}

func (op *InsertChar) Apply(b *TextBuffer) error {
	if b.gapEnd-b.cursor < 1 {
		return &ErrGapTooSmall{Required: 1}
	}
	pos := b.cursor
	b.shiftNewLines(pos, 1)
	b.content[pos] = op.Char
	b.length++
	b.cursor++
	return nil
}

func (op *InsertChar) Undo(b *TextBuffer) error {
	if b.cursor == 0 {
		return ErrMovesOutOfBounds
	}
	b.cursor--
	b.length--
	b.shiftNewLines(b.cursor, -1)
	return nil
}

// InsertLinebreak inserts a '\n' at the cursor and registers it in the
// linebreak index.
type InsertLinebreak struct{}

func (op *InsertLinebreak) Apply(b *TextBuffer) error {
	if b.gapEnd-b.cursor < 1 {
		return &ErrGapTooSmall{Required: 1}
	}
	pos := b.cursor
	b.shiftNewLines(pos, 1)
	b.content[pos] = '\n'
	b.length++
	b.cursor++
	b.registerLinebreak(pos)
	return nil
}

func (op *InsertLinebreak) Undo(b *TextBuffer) error {
	if b.cursor == 0 {
		return ErrMovesOutOfBounds
	}
	pos := b.cursor - 1
	b.unregisterLinebreak(pos)
	b.cursor--
	b.length--
	b.shiftNewLines(pos, -1)
	return nil
}

// InsertString writes a run of bytes at the cursor, registering any '\n'
// bytes it contains.
type InsertString struct {
	Text string
}

func (op *InsertString) Apply(b *TextBuffer) error {
	n := len(op.Text)
	if b.gapEnd-b.cursor < n {
		return &ErrGapTooSmall{Required: n}
	}
	pos := b.cursor
	b.shiftNewLines(pos, n)
	copy(b.content[pos:pos+n], op.Text)
	for i := 0; i < n; i++ {
		if op.Text[i] == '\n' {
			b.registerLinebreak(pos + i)
		}
	}
	b.length += n
	b.cursor += n
	return nil
}

func (op *InsertString) Undo(b *TextBuffer) error {
	n := len(op.Text)
	if b.cursor < n {
		return ErrMovesOutOfBounds
	}
	pos := b.cursor - n
	for i := 0; i < n; i++ {
		if op.Text[i] == '\n' {
			b.unregisterLinebreak(pos + i)
		}
	}
	b.cursor -= n
	b.length -= n
	b.shiftNewLines(pos, -n)
	return nil
}

// DeleteBack removes the n bytes immediately before the cursor, capturing
// them so Undo can restore them verbatim. The captured bytes are not
// zeroed in content — they simply become part of the gap.
type DeleteBack struct {
	Count   int
	removed []byte
}

func NewDeleteBack(count int) *DeleteBack {
	return &DeleteBack{Count: count}
}

func (op *DeleteBack) Apply(b *TextBuffer) error {
	n := op.Count
	if b.cursor < n {
		return ErrMovesOutOfBounds
	}
	start := b.cursor - n
	removed := make([]byte, n)
	copy(removed, b.content[start:b.cursor])
	op.removed = removed

	for i := 0; i < n; i++ {
		if removed[i] == '\n' {
			b.unregisterLinebreak(start + i)
		}
	}

	b.cursor -= n
	b.length -= n
	b.shiftNewLines(start, -n)
	return nil
}

func (op *DeleteBack) Undo(b *TextBuffer) error {
	n := op.Count
	if b.gapEnd-b.cursor < n {
		return &ErrGapTooSmall{Required: n}
	}
	if op.removed == nil {
		return &ErrLogic{Message: "delete-back undo without a prior apply"}
	}

	pos := b.cursor
	b.shiftNewLines(pos, n)
	copy(b.content[pos:pos+n], op.removed)
	for i := 0; i < n; i++ {
		if op.removed[i] == '\n' {
			b.registerLinebreak(pos + i)
		}
	}

	b.cursor += n
	b.length += n
	return nil
}

// CursorRight relocates n bytes from the front of the suffix to the end
// of the prefix — the central gap-buffer move: logical text is unchanged,
// only the gap slides right. The linebreak index needs no adjustment: a
// linebreak's logical position is invariant under a pure cursor move.
type CursorRight struct {
	Count int
}

func (op *CursorRight) Apply(b *TextBuffer) error {
	n := op.Count
	if b.cursor+n > b.length {
		return ErrMovesOutOfBounds
	}
	copy(b.content[b.cursor:b.cursor+n], b.content[b.gapEnd:b.gapEnd+n])
	b.cursor += n
	b.gapEnd += n
	return nil
}

func (op *CursorRight) Undo(b *TextBuffer) error {
	return (&CursorLeft{Count: op.Count}).Apply(b)
}

// CursorLeft is the mirror image of CursorRight.
type CursorLeft struct {
	Count int
}

func (op *CursorLeft) Apply(b *TextBuffer) error {
	n := op.Count
	if b.cursor < n {
		return ErrMovesOutOfBounds
	}
	copy(b.content[b.gapEnd-n:b.gapEnd], b.content[b.cursor-n:b.cursor])
	b.cursor -= n
	b.gapEnd -= n
	return nil
}

func (op *CursorLeft) Undo(b *TextBuffer) error {
	return (&CursorRight{Count: op.Count}).Apply(b)
}

// applyDelta moves the cursor by delta logical bytes, right for positive,
// left for negative, reusing CursorRight/CursorLeft's bounds checks.
func applyDelta(b *TextBuffer, delta int) error {
	if delta > 0 {
		return (&CursorRight{Count: delta}).Apply(b)
	}
	if delta < 0 {
		return (&CursorLeft{Count: -delta}).Apply(b)
	}
	return nil
}

// lineMoveDelta resolves a k-line move (k>0 down, k<0 up) from the current
// cursor into a concrete signed byte delta, preserving column (clamped to
// the target line's length) the way spec §4.4 describes.
func lineMoveDelta(b *TextBuffer, k int) (int, error) {
	curLine := b.lineAt(b.cursor)
	target := curLine + k
	if target < 0 || target >= b.lineCount() {
		return 0, ErrMovesOutOfBounds
	}

	curStart, _ := b.lineBounds(curLine)
	col := b.cursor - curStart

	tStart, tEnd := b.lineBounds(target)
	lineLen := tEnd - tStart
	if col > lineLen {
		col = lineLen
	}

	return (tStart + col) - b.cursor, nil
}

// LineDown moves the cursor down Count lines, preserving column where
// possible. The concrete move is resolved at apply time and the resulting
// delta is cached so Undo can reverse exactly what Apply did.
type LineDown struct {
	Count int
	delta int
}

func (op *LineDown) Apply(b *TextBuffer) error {
	d, err := lineMoveDelta(b, op.Count)
	if err != nil {
		return err
	}
	op.delta = d
	return applyDelta(b, d)
}

func (op *LineDown) Undo(b *TextBuffer) error {
	return applyDelta(b, -op.delta)
}

// LineUp is the mirror image of LineDown.
type LineUp struct {
	Count int
	delta int
}

func (op *LineUp) Apply(b *TextBuffer) error {
	d, err := lineMoveDelta(b, -op.Count)
	if err != nil {
		return err
	}
	op.delta = d
	return applyDelta(b, d)
}

func (op *LineUp) Undo(b *TextBuffer) error {
	return applyDelta(b, -op.delta)
}

// EndOfLine moves the cursor to the cell immediately before the current
// line's next linebreak (or buffer end for the last line).
type EndOfLine struct {
	delta int
}

func (op *EndOfLine) Apply(b *TextBuffer) error {
	line := b.lineAt(b.cursor)
	_, end := b.lineBounds(line)
	op.delta = end - b.cursor
	return applyDelta(b, op.delta)
}

func (op *EndOfLine) Undo(b *TextBuffer) error {
	return applyDelta(b, -op.delta)
}

// StartOfLine moves the cursor to column 0 of the current line. Used by
// the text window's "I" (insert at start of line) binding.
type StartOfLine struct {
	delta int
}

func (op *StartOfLine) Apply(b *TextBuffer) error {
	line := b.lineAt(b.cursor)
	start, _ := b.lineBounds(line)
	op.delta = start - b.cursor
	return applyDelta(b, op.delta)
}

func (op *StartOfLine) Undo(b *TextBuffer) error {
	return applyDelta(b, -op.delta)
}
