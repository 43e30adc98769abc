// Package textwindow implements the modal text editor window (spec
// §4.9) and its pure wrap-content helper (spec §4.10).
package textwindow

import (
	"strings"

	"github.com/wnuspl/demys/plot"
)

// WrapContent splits content on '\n' and, within each logical line,
// drains it into successive dim.Col-wide chunks. Once dim.Row chunks have
// been produced in total, no logical line is split further: each later
// line contributes only its first chunk and the rest of it is dropped.
// It also resolves cursor (a byte
// offset into content) into the Plot of the wrapped row/column it lands
// in. Ported verbatim from
// original_source/src/textedit/buffer_display.rs's wrap_content,
// including its exact boundary behavior: a cursor offset landing exactly
// at a chunk's length is reported against *that* chunk, not the next
// one, and crossing a real '\n' (but not a wrap-induced line break)
// consumes one extra unit of cursor for the separator byte that isn't
// present in any individual chunk.
func WrapContent(content string, dim plot.Plot, cursor int) ([][]string, plot.Plot) {
	var out [][]string
	cursorPlot := plot.New(0, 0)
	found := false

	n := 0
	for _, line := range strings.Split(content, "\n") {
		var subout []string
		for {
			take := dim.Col
			if take > len(line) {
				take = len(line)
			}
			partial := line[:take]
			line = line[take:]

			if !found {
				if cursor <= len(partial) {
					cursorPlot = plot.New(n, cursor)
					found = true
				} else if len(partial) <= cursor {
					cursor -= len(partial)
				}
			}

			subout = append(subout, partial)
			n++
			if len(line) == 0 || n >= dim.Row {
				break
			}
		}
		if cursor > 0 {
			cursor--
		}
		out = append(out, subout)
	}

	return out, cursorPlot
}
