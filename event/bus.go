// Package event implements the single-consumer, many-producer mailbox that
// the window tree uses to bubble requests up without parent/child
// back-pointers (spec §4.1, §9 "Cyclic ownership avoidance").
package event

import "sync"

// Entry pairs a posted payload with the Id of the poster that sent it.
type Entry[T any] struct {
	Id      Id
	Payload T
}

// mailbox is the shared, interior-mutable queue a Receiver and all of its
// Posters point at. Guarded by a mutex so a Receiver and any Poster could
// safely run on different goroutines in the future; today every post and
// poll happens within the same single-threaded tick (spec §5).
type mailbox[T any] struct {
	mu       sync.Mutex
	received []Entry[T]
}

func (m *mailbox[T]) receive(e Entry[T]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.received = append(m.received, e)
}

func (m *mailbox[T]) drain() []Entry[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	drained := m.received
	m.received = nil
	return drained
}

// Receiver is the sole consumer of a typed event stream. The zero value is
// not usable; construct with NewReceiver.
type Receiver[T any] struct {
	box *mailbox[T]
}

// NewReceiver creates an empty queue.
func NewReceiver[T any]() *Receiver[T] {
	return &Receiver[T]{box: &mailbox[T]{}}
}

// NewPoster returns a handle bound to a freshly minted unique Id that
// captures a shared reference to this receiver's queue.
func (r *Receiver[T]) NewPoster() *Poster[T] {
	return &Poster[T]{box: r.box, id: nextId()}
}

// Poll atomically drains the queue and returns everything posted since the
// last Poll, in FIFO post order.
func (r *Receiver[T]) Poll() []Entry[T] {
	return r.box.drain()
}

// Poster lets a single window post payloads to its owning Receiver under a
// stable Id.
type Poster[T any] struct {
	box *mailbox[T]
	id  Id
}

// Post appends (id, payload) to the receiver's queue.
func (p *Poster[T]) Post(payload T) {
	p.box.receive(Entry[T]{Id: p.id, Payload: payload})
}

// PostLie appends payload under a caller-supplied id, used when a
// container wants to re-emit a child's request under the child's own Id
// rather than the container's.
func (p *Poster[T]) PostLie(payload T, id Id) {
	p.box.receive(Entry[T]{Id: id, Payload: payload})
}

// ID returns this poster's stable identity.
func (p *Poster[T]) ID() Id {
	return p.id
}
