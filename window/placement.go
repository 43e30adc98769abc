package window

import "github.com/wnuspl/demys/plot"

// PlacementKind selects how a popup's origin is anchored along one axis
// (spec §4.12).
type PlacementKind int

const (
	Centered PlacementKind = iota
	NegativeBound
	PositiveBound
)

// Placement resolves to a concrete coordinate given the available extent
// along that axis. It deliberately does not take the popup's own size into
// account — matching original_source/src/popup.rs's to_term_pos, which
// computes position independent of dimension.
type Placement struct {
	Kind   PlacementKind
	Offset int
}

func (p Placement) resolve(avail int) int {
	switch p.Kind {
	case Centered:
		return avail/2 + p.Offset
	case NegativeBound:
		return p.Offset
	case PositiveBound:
		return avail - p.Offset
	}
	return 0
}

// SizeKind selects how a popup's extent along one axis is computed.
type SizeKind int

const (
	Fixed SizeKind = iota
	Percent
)

// Size resolves to a concrete extent given the available extent along
// that axis.
type Size struct {
	Kind  SizeKind
	Value float64
}

func (s Size) resolve(avail int) int {
	switch s.Kind {
	case Fixed:
		return int(s.Value)
	case Percent:
		return int(float64(avail) * s.Value)
	}
	return 0
}

// PopupRect resolves a popup's on-screen rectangle against a screen of
// dimension screen, given independent row/col placement and size rules
// (spec §4.12).
func PopupRect(screen plot.Plot, rowPlace, colPlace Placement, rowSize, colSize Size) (origin, dim plot.Plot) {
	dim = plot.New(rowSize.resolve(screen.Row), colSize.resolve(screen.Col))
	origin = plot.New(rowPlace.resolve(screen.Row), colPlace.resolve(screen.Col))
	return origin, dim
}
