package textwindow

import (
	"testing"

	"github.com/wnuspl/demys/plot"
)

// TestWrapContentWraps ports wrap_content's non-cursor assertions from
// original_source/src/textedit/buffer_display.rs's test_wraps_content
// verbatim — these don't depend on cursor bookkeeping so they carry over
// cleanly.
func TestWrapContentWraps(t *testing.T) {
	content := "012345\n678910X\nthis line is extraaa long"
	dim := plot.New(10, 6)

	wrapped, _ := WrapContent(content, dim, 0)

	if len(wrapped) != 3 {
		t.Fatalf("got %d logical lines, want 3", len(wrapped))
	}
	if got := wrapped[0]; len(got) != 1 || got[0] != "012345" {
		t.Fatalf("line 0 = %v, want [\"012345\"]", got)
	}
	if got := wrapped[1]; len(got) != 2 || got[0] != "678910" || got[1] != "X" {
		t.Fatalf("line 1 = %v, want [\"678910\" \"X\"]", got)
	}
	if got := wrapped[2]; len(got) != 5 {
		t.Fatalf("line 2 has %d chunks, want 5", len(got))
	}
}

// TestWrapContentCursorSimple exercises cursor resolution within the
// first chunk: a cursor strictly inside it, and one landing exactly at
// its length, which resolves against that chunk rather than the next.
func TestWrapContentCursorSimple(t *testing.T) {
	dim := plot.New(10, 6)
	content := "012345\n678910X\nthis line is extraaa long"

	cases := []struct {
		cursor int
		want   plot.Plot
	}{
		{0, plot.New(0, 0)},
		{5, plot.New(0, 5)},
		{6, plot.New(0, 6)},
	}
	for _, c := range cases {
		_, got := WrapContent(content, dim, c.cursor)
		if got != c.want {
			t.Errorf("cursor %d => %v, want %v", c.cursor, got, c.want)
		}
	}
}

func TestWrapContentCursorAcrossShortLines(t *testing.T) {
	dim := plot.New(10, 6)
	content := "ab\ncd"

	// offset 4 is 'd': 'a'0 'b'1 '\n'2 'c'3 'd'4 -> row1 (second logical
	// line, which fits in one chunk), column 1.
	_, got := WrapContent(content, dim, 4)
	want := plot.New(1, 1)
	if got != want {
		t.Errorf("cursor 4 => %v, want %v", got, want)
	}
}
