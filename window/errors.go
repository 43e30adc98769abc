package window

import "fmt"

// ErrBadIndex is returned by Grid.SplitMinor/RemoveMinor for an
// out-of-range major band index.
type ErrBadIndex struct{ Index int }

func (e *ErrBadIndex) Error() string {
	return fmt.Sprintf("window: grid index %d out of range", e.Index)
}
