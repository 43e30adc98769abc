package event

import "sync/atomic"

// Id is a process-wide unique identifier minted for every poster. It is
// never reused and supports only equality and hashing (it is a plain
// comparable value, so it works as a map key out of the box).
type Id uint64

// counter backs Id minting. It is an atomic counter rather than a bare
// uint64 so the id space stays safe to mint from multiple goroutines later
// without changing the Id API, even though demys itself runs single
// threaded cooperative scheduling (see spec §5).
var counter uint64

// nextId mints the next globally unique Id.
func nextId() Id {
	return Id(atomic.AddUint64(&counter, 1))
}
