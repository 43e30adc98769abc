package event

import "testing"

func TestUniqueIds(t *testing.T) {
	r := NewReceiver[string]()
	a := r.NewPoster()
	b := r.NewPoster()
	if a.ID() == b.ID() {
		t.Fatalf("expected distinct ids, got %v and %v", a.ID(), b.ID())
	}
}

func TestSinglePostReceive(t *testing.T) {
	r := NewReceiver[string]()
	p := r.NewPoster()

	p.Post("hello world")

	got := r.Poll()
	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	if got[0].Id != p.ID() {
		t.Fatalf("wrong id: got %v want %v", got[0].Id, p.ID())
	}
	if got[0].Payload != "hello world" {
		t.Fatalf("wrong payload: %q", got[0].Payload)
	}

	if len(r.Poll()) != 0 {
		t.Fatalf("expected queue to be drained")
	}
}

func TestMultiplePostReceiveFIFO(t *testing.T) {
	r := NewReceiver[int]()
	posters := make([]*Poster[int], 10)
	for i := range posters {
		posters[i] = r.NewPoster()
	}

	for i, p := range posters[:5] {
		p.Post(i)
	}
	first := r.Poll()
	if len(first) != 5 {
		t.Fatalf("expected 5 events, got %d", len(first))
	}
	for i, e := range first {
		if e.Payload != i {
			t.Fatalf("out of order: index %d got payload %d", i, e.Payload)
		}
	}
	if len(r.Poll()) != 0 {
		t.Fatalf("expected queue to be drained")
	}

	for i, p := range posters[5:] {
		p.Post(i)
	}
	second := r.Poll()
	if len(second) != 5 {
		t.Fatalf("expected 5 events, got %d", len(second))
	}
}

func TestPostLie(t *testing.T) {
	r := NewReceiver[string]()
	a := r.NewPoster()
	b := r.NewPoster()

	a.PostLie("borrowed", b.ID())

	got := r.Poll()
	if len(got) != 1 || got[0].Id != b.ID() {
		t.Fatalf("expected payload attributed to b's id, got %+v", got)
	}
}
