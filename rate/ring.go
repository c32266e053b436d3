package rate

import (
	"sync"
	"time"
)

// Ring is a fixed-capacity buffer of press timestamps. When full, the
// oldest entry is overwritten.
type Ring struct {
	mu    sync.RWMutex
	buf   []time.Time
	next  int
	count int
}

func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{buf: make([]time.Time, capacity)}
}

func (r *Ring) Add(t time.Time) {
	r.mu.Lock()
	r.buf[r.next] = t
	r.next++
	if r.next >= len(r.buf) {
		r.next = 0
	}
	if r.count < len(r.buf) {
		r.count++
	}
	r.mu.Unlock()
}

// CountWithin returns how many stored timestamps fall in (from, to].
func (r *Ring) CountWithin(from, to time.Time) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for i := 0; i < r.count; i++ {
		t := r.buf[i]
		if t.After(from) && !t.After(to) {
			n++
		}
	}
	return n
}

func (r *Ring) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.count
}

func (r *Ring) Cap() int {
	return len(r.buf)
}
