package buffer

import (
	"reflect"
	"testing"
)

func TestLineDownPreservesColumnClampedToShorterLine(t *testing.T) {
	b := New()
	b.Apply(&InsertString{Text: "abcdef\nxy\nghijkl"})
	// Put the cursor at column 4 of line 0 ("abcd|ef").
	b.Apply(&CursorLeft{Count: b.Length() - 4})
	if b.Cursor() != 4 {
		t.Fatalf("setup: cursor = %d, want 4", b.Cursor())
	}

	b.Apply(&LineDown{Count: 1})
	// Line 1 is "xy" (length 2): column clamps to its end, position 7+2=9.
	if want := 7 + 2; b.Cursor() != want {
		t.Fatalf("cursor after LineDown = %d, want %d", b.Cursor(), want)
	}

	b.Apply(&LineDown{Count: 1})
	// Column tracking is against the line just left, not the original
	// line: line 1 ("xy") clamped the column to 2, so line 2 ("ghijkl")
	// lands at 10+2, not back at the original column 4.
	if want := 10 + 2; b.Cursor() != want {
		t.Fatalf("cursor after second LineDown = %d, want %d", b.Cursor(), want)
	}
}

func TestLineUpAndDownUndoReversesDelta(t *testing.T) {
	b := New()
	b.Apply(&InsertString{Text: "one\ntwo\nthree"})
	b.Apply(&CursorLeft{Count: 2})
	before := b.Cursor()

	b.Apply(&LineUp{Count: 1})
	b.Undo()
	if b.Cursor() != before {
		t.Fatalf("cursor after undo = %d, want %d", b.Cursor(), before)
	}
}

func TestLineUpPastTopIsRejected(t *testing.T) {
	b := New()
	b.Apply(&InsertString{Text: "only line"})
	before := take(b)

	b.Apply(&LineUp{Count: 1})

	if after := take(b); !reflect.DeepEqual(after, before) {
		t.Fatalf("LineUp past top mutated buffer: got %+v, want %+v", after, before)
	}
}

func TestEndOfLineAndStartOfLine(t *testing.T) {
	b := New()
	b.Apply(&InsertString{Text: "hello\nworld"})
	b.Apply(&CursorLeft{Count: 8}) // cursor inside "hello"

	b.Apply(&EndOfLine{})
	if b.Cursor() != 5 {
		t.Fatalf("cursor after EndOfLine = %d, want 5", b.Cursor())
	}

	b.Apply(&StartOfLine{})
	if b.Cursor() != 0 {
		t.Fatalf("cursor after StartOfLine = %d, want 0", b.Cursor())
	}
}

func TestDeleteBackAtStartIsRejected(t *testing.T) {
	b := New()
	b.Apply(&InsertChar{Char: 'a'})
	b.Apply(&CursorLeft{Count: 1})
	before := take(b)

	b.Apply(NewDeleteBack(1))

	if after := take(b); !reflect.DeepEqual(after, before) {
		t.Fatalf("DeleteBack at (0,0) mutated buffer: got %+v, want %+v", after, before)
	}
}

func TestCursorRightUndoIsCursorLeft(t *testing.T) {
	b := New()
	b.Apply(&InsertString{Text: "abcdef"})
	b.Apply(&CursorLeft{Count: 6})

	b.Apply(&CursorRight{Count: 3})
	if b.Cursor() != 3 {
		t.Fatalf("cursor = %d, want 3", b.Cursor())
	}
	b.Undo()
	if b.Cursor() != 0 {
		t.Fatalf("cursor after undo = %d, want 0", b.Cursor())
	}
}
