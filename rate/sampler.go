// Package rate turns a stream of key-press timestamps into a rolling
// presses-per-window frequency.
package rate

import (
	"context"
	"sync/atomic"
	"time"
)

const (
	DefaultCapacity = 100
	DefaultWindow   = time.Second
	DefaultInterval = 100 * time.Millisecond
)

type Sampler struct {
	ring   *Ring
	window time.Duration
	now    func() time.Time

	freq  atomic.Int64
	peak  atomic.Int64
	total atomic.Uint64
}

type Option func(*Sampler)

func WithWindow(d time.Duration) Option {
	return func(s *Sampler) {
		if d > 0 {
			s.window = d
		}
	}
}

func WithCapacity(n int) Option {
	return func(s *Sampler) { s.ring = NewRing(n) }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Sampler) { s.now = now }
}

func NewSampler(opts ...Option) *Sampler {
	s := &Sampler{
		ring:   NewRing(DefaultCapacity),
		window: DefaultWindow,
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Sampler) Record(t time.Time) {
	s.ring.Add(t)
	s.total.Add(1)
}

// Count returns the number of recorded presses in (now-window, now].
func (s *Sampler) Count(now time.Time) int {
	return s.ring.CountWithin(now.Add(-s.window), now)
}

// Update recomputes the frequency against the sampler clock and stores it.
func (s *Sampler) Update() int {
	n := s.Count(s.now())
	s.freq.Store(int64(n))
	if int64(n) > s.peak.Load() {
		s.peak.Store(int64(n))
	}
	return n
}

// Frequency returns the value computed by the last Update.
func (s *Sampler) Frequency() int {
	return int(s.freq.Load())
}

func (s *Sampler) Peak() int {
	return int(s.peak.Load())
}

func (s *Sampler) Total() uint64 {
	return s.total.Load()
}

func (s *Sampler) Window() time.Duration {
	return s.window
}

// Run calls Update every interval until ctx is done.
func (s *Sampler) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Update()
		}
	}
}

// Feed records every timestamp received on presses until ctx is done or
// the channel is closed.
func (s *Sampler) Feed(ctx context.Context, presses <-chan time.Time) {
	for {
		select {
		case <-ctx.Done():
			return
		case t, ok := <-presses:
			if !ok {
				return
			}
			s.Record(t)
		}
	}
}
