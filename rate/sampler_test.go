package rate

import (
	"context"
	"math/rand"
	"testing"
	"time"
)

func TestCountMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		s := NewSampler(WithCapacity(1000))
		var stamps []time.Time
		for i := 0; i < 200; i++ {
			ts := at(rng.Intn(5000))
			stamps = append(stamps, ts)
			s.Record(ts)
		}
		now := at(rng.Intn(5000))
		want := 0
		for _, ts := range stamps {
			if ts.After(now.Add(-time.Second)) && !ts.After(now) {
				want++
			}
		}
		if got := s.Count(now); got != want {
			t.Fatalf("trial %d: Count = %d, want %d", trial, got, want)
		}
	}
}

func TestCountIdleIsZero(t *testing.T) {
	s := NewSampler()
	s.Record(at(0))
	s.Record(at(100))
	if got := s.Count(at(1200)); got != 0 {
		t.Errorf("Count after idle second = %d, want 0", got)
	}
}

func TestUpdateUsesClock(t *testing.T) {
	now := at(1000)
	s := NewSampler(WithClock(func() time.Time { return now }))
	for ms := 0; ms <= 1000; ms += 100 {
		s.Record(at(ms))
	}
	// (0, 1000] holds 100..1000
	if got := s.Update(); got != 10 {
		t.Fatalf("Update = %d, want 10", got)
	}
	if s.Frequency() != 10 {
		t.Errorf("Frequency = %d, want 10", s.Frequency())
	}
	if s.Total() != 11 {
		t.Errorf("Total = %d, want 11", s.Total())
	}

	now = at(5000)
	if got := s.Update(); got != 0 {
		t.Errorf("Update after idle = %d, want 0", got)
	}
	if s.Peak() != 10 {
		t.Errorf("Peak = %d, want 10", s.Peak())
	}
}

func TestWithWindow(t *testing.T) {
	s := NewSampler(WithWindow(500 * time.Millisecond))
	s.Record(at(400))
	s.Record(at(600))
	if got := s.Count(at(1000)); got != 1 {
		t.Errorf("Count = %d, want 1", got)
	}
	if s.Window() != 500*time.Millisecond {
		t.Errorf("Window = %v", s.Window())
	}

	s = NewSampler(WithWindow(-time.Second))
	if s.Window() != DefaultWindow {
		t.Errorf("negative window not ignored: %v", s.Window())
	}
}

func TestFeedAndRun(t *testing.T) {
	s := NewSampler()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	presses := make(chan time.Time)
	fed := make(chan struct{})
	go func() {
		s.Feed(ctx, presses)
		close(fed)
	}()
	go s.Run(ctx, 10*time.Millisecond)

	for i := 0; i < 5; i++ {
		presses <- time.Now()
	}
	close(presses)

	select {
	case <-fed:
	case <-time.After(time.Second):
		t.Fatal("Feed did not return after channel close")
	}

	deadline := time.After(time.Second)
	for s.Frequency() != 5 {
		select {
		case <-deadline:
			t.Fatalf("Frequency = %d, want 5", s.Frequency())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestFeedStopsOnCancel(t *testing.T) {
	s := NewSampler()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Feed(ctx, make(chan time.Time))
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Feed did not return after cancel")
	}
}
