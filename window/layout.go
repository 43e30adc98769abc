package window

import "github.com/wnuspl/demys/plot"

// WindowSpace is one generated cell's rectangle.
type WindowSpace struct {
	Dim   plot.Plot
	Start plot.Plot
}

// BorderSpace is one generated divider between cells.
type BorderSpace struct {
	Vertical  bool
	Start     plot.Plot
	Length    int
	Thickness int
}

// Grid is a major/minor proportional-split tree: one axis (major) is
// split into scaled bands, and each band is independently split again
// along the other (minor) axis. Ported from
// original_source/src/window/layout.rs.
type Grid struct {
	verticalMajor bool
	majorScales   []float64
	minorScales   [][]float64
}

// NewGrid returns a single-cell grid (one major band, one minor band).
func NewGrid() *Grid {
	return &Grid{
		verticalMajor: false,
		majorScales:   []float64{1.0},
		minorScales:   [][]float64{{1.0}},
	}
}

func toDistributionVec(v []float64) []float64 {
	sum := 0.0
	for _, x := range v {
		sum += x
	}
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / sum
	}
	return out
}

// SplitMajor adds another evenly-sized band along the major axis.
func (g *Grid) SplitMajor() {
	n := len(g.majorScales)
	g.majorScales = append(g.majorScales, 1.0/float64(n))
	g.majorScales = toDistributionVec(g.majorScales)
	g.minorScales = append(g.minorScales, []float64{1.0})
}

// SplitMinor adds another evenly-sized band along the minor axis within
// major band index.
func (g *Grid) SplitMinor(index int) error {
	if index < 0 || index >= len(g.minorScales) {
		return &ErrBadIndex{Index: index}
	}
	minor := g.minorScales[index]
	n := len(minor)
	minor = append(minor, 1.0/float64(n))
	g.minorScales[index] = toDistributionVec(minor)
	return nil
}

// RemoveMinor drops the last band along the minor axis within major band
// index, renormalizing what remains. This has no counterpart in
// layout.rs, whose equivalent shrink path is a commented-out stub.
func (g *Grid) RemoveMinor(index int) error {
	if index < 0 || index >= len(g.minorScales) {
		return &ErrBadIndex{Index: index}
	}
	minor := g.minorScales[index]
	if len(minor) <= 1 {
		return nil
	}
	minor = minor[:len(minor)-1]
	g.minorScales[index] = toDistributionVec(minor)
	return nil
}

// MinorCount returns the number of minor bands within major band index.
func (g *Grid) MinorCount(index int) int {
	if index < 0 || index >= len(g.minorScales) {
		return 0
	}
	return len(g.minorScales[index])
}

// Generate lays the grid out against a concrete screen dimension,
// returning the resolved cell rectangles in major-then-minor order and
// the single-thickness dividers between them.
func (g *Grid) Generate(dim plot.Plot) ([]WindowSpace, []BorderSpace) {
	var windowOut []WindowSpace
	var borderOut []BorderSpace

	majorTotal := dim.Row
	if g.verticalMajor {
		majorTotal = dim.Col
	}
	majorAvailable := majorTotal - (len(g.majorScales)-1)*1

	majorOffset := 0
	for mi, majorScale := range g.majorScales {
		minor := g.minorScales[mi]
		majorSize := int(float64(majorAvailable) * majorScale)

		minorTotal := dim.Col
		if g.verticalMajor {
			minorTotal = dim.Row
		}
		minorAvailable := minorTotal - (len(minor)-1)*1

		minorOffset := 0
		for ni, minorScale := range minor {
			minorSize := int(float64(minorAvailable) * minorScale)

			var start, cellDim plot.Plot
			if g.verticalMajor {
				start = plot.New(minorOffset, majorOffset)
				cellDim = plot.New(minorSize, majorSize)
			} else {
				start = plot.New(majorOffset, minorOffset)
				cellDim = plot.New(majorSize, minorSize)
			}
			windowOut = append(windowOut, WindowSpace{Dim: cellDim, Start: start})

			if ni < len(minor)-1 {
				minorOffset += minorSize
				var bstart plot.Plot
				if g.verticalMajor {
					bstart = plot.New(minorOffset, majorOffset)
				} else {
					bstart = plot.New(majorOffset, minorOffset)
				}
				borderOut = append(borderOut, BorderSpace{
					Start:     bstart,
					Vertical:  !g.verticalMajor,
					Length:    majorSize,
					Thickness: 1,
				})
				minorOffset++
			}
		}

		if mi < len(g.majorScales)-1 {
			majorOffset += majorSize
			var bstart plot.Plot
			length := dim.Col
			if g.verticalMajor {
				bstart = plot.New(0, majorOffset)
				length = dim.Row
			} else {
				bstart = plot.New(majorOffset, 0)
			}
			borderOut = append(borderOut, BorderSpace{
				Start:     bstart,
				Vertical:  g.verticalMajor,
				Length:    length,
				Thickness: 1,
			})
			majorOffset++
		}
	}

	return windowOut, borderOut
}

// Layout caches a Grid's generated cells against the last dimension they
// were generated for. Generate recomputes them only when the cache is
// stale: after SetDim, or after Invalidate (which SplitMinor and
// RemoveMinor call).
type Layout struct {
	windowSpace []WindowSpace
	borderSpace []BorderSpace
	Grid        *Grid
	generated   bool
	dim         plot.Plot
}

// NewLayout returns a single-cell layout for the given screen dimension.
func NewLayout(dim plot.Plot) *Layout {
	return &Layout{Grid: NewGrid(), dim: dim}
}

// SetDim updates the target dimension and regenerates the cell
// rectangles for it.
func (l *Layout) SetDim(dim plot.Plot) {
	l.dim = dim
	l.generated = false
	l.Generate()
}

// Generate recomputes the cell rectangles if they're stale.
func (l *Layout) Generate() {
	if l.generated {
		return
	}
	l.windowSpace, l.borderSpace = l.Grid.Generate(l.dim)
	l.generated = true
}

// Invalidate forces the next Generate call to recompute even if the
// dimension hasn't changed — used after SplitMinor/RemoveMinor.
func (l *Layout) Invalidate() { l.generated = false }

// Windows returns the last-generated cell rectangles.
func (l *Layout) Windows() []WindowSpace { return l.windowSpace }

// Borders returns the last-generated dividers.
func (l *Layout) Borders() []BorderSpace { return l.borderSpace }

// SplitMinor grows the layout's minor axis by one band at index,
// invalidating the cached generation.
func (l *Layout) SplitMinor(index int) error {
	if err := l.Grid.SplitMinor(index); err != nil {
		return err
	}
	l.Invalidate()
	return nil
}

// RemoveMinor shrinks the layout's minor axis by one band at index,
// invalidating the cached generation.
func (l *Layout) RemoveMinor(index int) error {
	if err := l.Grid.RemoveMinor(index); err != nil {
		return err
	}
	l.Invalidate()
	return nil
}
