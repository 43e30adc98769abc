// Package canvas implements the off-screen compositing grid: an
// immutable-dimension cell slab with styled region bookmarks that
// flattens an arbitrarily nested tree of child canvases into a minimal
// stream of Commands (spec §4.2).
package canvas

import (
	"errors"
	"sort"

	"github.com/wnuspl/demys/plot"
	"github.com/wnuspl/demys/style"
)

var (
	// ErrOutOfBounds is returned by MoveTo and ToNextLine for positions
	// outside the canvas's dimension.
	ErrOutOfBounds = errors.New("canvas: position out of bounds")
	// ErrRange is returned by SetAttribute for a region outside the
	// canvas's cell range. The region is ignored rather than applied.
	ErrRange = errors.New("canvas: attribute region out of range")
)

// Canvas is a row-major grid of bytes with two ordered bookmark maps
// recording where styled regions begin and end. Its dimension is fixed at
// construction; only the content plus bookmarks since may change.
type Canvas struct {
	dim   plot.Plot
	text  []byte
	start map[int][]style.Attribute
	end   map[int][]style.Attribute

	cursor  int
	sticky  bool
	isEmpty bool
}

// New builds a canvas of the given dimension, every cell pre-filled with a
// space and no styles registered.
func New(dim plot.Plot) *Canvas {
	text := make([]byte, dim.Row*dim.Col)
	for i := range text {
		text[i] = ' '
	}
	return &Canvas{
		dim:     dim,
		text:    text,
		start:   make(map[int][]style.Attribute),
		end:     make(map[int][]style.Attribute),
		isEmpty: true,
	}
}

// Dim returns the canvas's fixed dimension.
func (c *Canvas) Dim() plot.Plot { return c.dim }

// IsEmpty reports whether the canvas has never been written to, which lets
// callers like AddChild short-circuit a wholesale overwrite.
func (c *Canvas) IsEmpty() bool { return c.isEmpty }

func (c *Canvas) totalCells() int { return c.dim.Row * c.dim.Col }

// Cursor returns the write-cursor as a Plot.
func (c *Canvas) Cursor() plot.Plot {
	if c.dim.Col == 0 {
		return plot.New(0, 0)
	}
	return plot.New(c.cursor/c.dim.Col, c.cursor%c.dim.Col)
}

// MoveTo repositions the write-cursor. It fails if pos is out of bounds.
func (c *Canvas) MoveTo(pos plot.Plot) error {
	if pos.Row < 0 || pos.Row >= c.dim.Row || pos.Col < 0 || pos.Col >= c.dim.Col {
		return ErrOutOfBounds
	}
	c.cursor = pos.Row*c.dim.Col + pos.Col
	c.sticky = false
	return nil
}

// ToNextLine moves to column 0 of the next row. If the previous write
// ended flush against the right edge (the sticky flag is set), it instead
// clears the flag and stays on the current row, since that write already
// consumed the "overflow" onto the next cell. Fails on the last row when
// not sticky.
func (c *Canvas) ToNextLine() error {
	cur := c.Cursor()
	if c.sticky {
		c.sticky = false
		return nil
	}
	if cur.Row+1 >= c.dim.Row {
		return ErrOutOfBounds
	}
	return c.MoveTo(plot.New(cur.Row+1, 0))
}

// Write copies text from the current cursor, stopping at the end of the
// current row (clipping silently on overrun) and registering attribute
// bookmarks for exactly the written range. It sets the sticky flag when it
// stops because it ran into the row boundary.
func (c *Canvas) Write(t style.StyledText) error {
	return c.writeImpl(t, false)
}

// WriteWrap is like Write but continues writing onto subsequent rows
// instead of stopping at the row boundary.
func (c *Canvas) WriteWrap(t style.StyledText) error {
	return c.writeImpl(t, true)
}

func (c *Canvas) writeImpl(t style.StyledText, wrap bool) error {
	c.isEmpty = false

	start := c.cursor
	rowEnd := ((start / c.dim.Col) + 1) * c.dim.Col
	limit := c.totalCells()

	var stop int
	if wrap {
		stop = limit
	} else {
		stop = rowEnd
		if stop > limit {
			stop = limit
		}
	}

	n := len(t.Text())
	end := start + n
	if end > stop {
		end = stop
	}
	if end < start {
		end = start
	}

	copy(c.text[start:end], t.Text())

	for _, attr := range t.Attributes() {
		c.SetAttribute(attr, start, end)
	}

	c.cursor = end
	// Sticky only applies when a non-wrapping write was clipped exactly
	// at the row boundary (ran out of room on the current row).
	c.sticky = !wrap && end == rowEnd && end < limit
	return nil
}

// WriteAt saves the cursor, moves to pos, writes, then restores the saved
// cursor.
func (c *Canvas) WriteAt(t style.StyledText, pos plot.Plot) error {
	saved := c.cursor
	if err := c.MoveTo(pos); err != nil {
		return err
	}
	err := c.Write(t)
	c.cursor = saved
	return err
}

// WriteAtWrap is WriteAt using the wrapping write.
func (c *Canvas) WriteAtWrap(t style.StyledText, pos plot.Plot) error {
	saved := c.cursor
	if err := c.MoveTo(pos); err != nil {
		return err
	}
	err := c.WriteWrap(t)
	c.cursor = saved
	return err
}

// SetAttribute registers a half-open attribute region [start, end) in
// flattened row-major coordinates. Out-of-range regions are ignored and
// report ErrRange.
func (c *Canvas) SetAttribute(attr style.Attribute, start, end int) error {
	if start < 0 || end > c.totalCells() || start > end {
		return ErrRange
	}
	c.start[start] = append(c.start[start], attr)
	c.end[end] = append(c.end[end], attr)
	return nil
}

// AddChild overlays a child canvas at origin: cells are copied verbatim
// with clipping against the parent's bounds, and the child's bookmarks are
// translated into parent coordinates.
func (c *Canvas) AddChild(child *Canvas, origin plot.Plot) {
	// Wholesale overwrite: this canvas has never been written to and the
	// child exactly covers it, so skip cell-by-cell copying.
	if c.isEmpty && origin == (plot.Plot{}) && child.dim == c.dim {
		copy(c.text, child.text)
		c.start = translateBookmarks(child.start, child, c, origin)
		c.end = translateBookmarks(child.end, child, c, origin)
		c.isEmpty = false
		return
	}

	for r := 0; r < child.dim.Row; r++ {
		pr := origin.Row + r
		if pr < 0 || pr >= c.dim.Row {
			continue
		}
		for col := 0; col < child.dim.Col; col++ {
			pc := origin.Col + col
			if pc < 0 || pc >= c.dim.Col {
				continue
			}
			c.text[pr*c.dim.Col+pc] = child.text[r*child.dim.Col+col]
		}
	}

	for idx, attrs := range translateBookmarks(child.start, child, c, origin) {
		c.start[idx] = append(c.start[idx], attrs...)
	}
	for idx, attrs := range translateBookmarks(child.end, child, c, origin) {
		c.end[idx] = append(c.end[idx], attrs...)
	}

	c.isEmpty = false
}

// translateBookmarks remaps a child's flattened bookmark indices into the
// parent's coordinate space, dropping any that land outside the parent.
func translateBookmarks(marks map[int][]style.Attribute, child, parent *Canvas, origin plot.Plot) map[int][]style.Attribute {
	out := make(map[int][]style.Attribute, len(marks))
	for idx, attrs := range marks {
		r := idx / child.dim.Col
		cCol := idx % child.dim.Col
		pr := origin.Row + r
		pc := origin.Col + cCol
		if pr < 0 || pr > parent.dim.Row || pc < 0 || pc >= parent.dim.Col {
			continue
		}
		pIdx := pr*parent.dim.Col + pc
		out[pIdx] = append(out[pIdx], attrs...)
	}
	return out
}

// QueueWrite flattens the canvas and writes a minimal Command stream to w,
// translating every MoveTo by origin. See the flattening algorithm in
// spec §4.2: sort+dedup all start/end bookmark indices into breakpoints,
// then between each consecutive pair apply/undo styles with a per-kind
// restore stack before emitting the text run for that span.
func (c *Canvas) QueueWrite(w Writer, origin plot.Plot) {
	breakpoints := c.breakpoints()
	if len(breakpoints) < 2 {
		return
	}

	stacks := make([][]style.Attribute, style.KindCount)

	for i := 0; i+1 < len(breakpoints); i++ {
		left := breakpoints[i]
		right := breakpoints[i+1]

		for _, attr := range c.end[left] {
			undoAttribute(w, attr.Kind, stacks)
		}
		for _, attr := range c.start[left] {
			applyAttribute(w, attr)
			stacks[attr.Kind] = append(stacks[attr.Kind], attr)
		}

		c.queueChunk(w, left, right, origin)
	}

	// Reset every attribute still outstanding so styling never bleeds
	// into whatever the writer emits next.
	for kind, stack := range stacks {
		if len(stack) > 0 {
			w.Queue(ResetAttribute{Kind: style.AttributeKind(kind)})
		}
	}
}

// breakpoints returns {0, end} ∪ keys(start) ∪ keys(end), sorted and
// deduplicated (testable property #5).
func (c *Canvas) breakpoints() []int {
	set := map[int]struct{}{0: {}, c.totalCells(): {}}
	for idx := range c.start {
		set[idx] = struct{}{}
	}
	for idx := range c.end {
		set[idx] = struct{}{}
	}
	out := make([]int, 0, len(set))
	for idx := range set {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

func applyAttribute(w Writer, attr style.Attribute) {
	w.Queue(ApplyAttribute{Attr: attr})
}

// undoAttribute pops the given kind's stack; if another attribute of that
// kind remains underneath, reapplies it, else emits a reset.
func undoAttribute(w Writer, kind style.AttributeKind, stacks [][]style.Attribute) {
	stack := stacks[kind]
	if len(stack) == 0 {
		return
	}
	stacks[kind] = stack[:len(stack)-1]
	if len(stacks[kind]) > 0 {
		applyAttribute(w, stacks[kind][len(stacks[kind])-1])
	} else {
		w.Queue(ResetAttribute{Kind: kind})
	}
}

// queueChunk emits the text slice [start, end) as one or more MoveTo+
// WriteText pairs, one per row it spans.
func (c *Canvas) queueChunk(w Writer, start, end int, origin plot.Plot) {
	if start >= end {
		return
	}
	col := c.dim.Col
	for pos := start; pos < end; {
		row := pos / col
		rowEnd := (row + 1) * col
		chunkEnd := end
		if chunkEnd > rowEnd {
			chunkEnd = rowEnd
		}

		w.Queue(MoveTo{Pos: plot.New(row+origin.Row, pos%col+origin.Col)})
		w.Queue(WriteText{Text: string(c.text[pos:chunkEnd])})

		pos = chunkEnd
	}
}
