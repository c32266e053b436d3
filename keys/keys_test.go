package keys

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewlyPressed(t *testing.T) {
	cases := []struct {
		name      string
		prev, cur []byte
		want      int
	}{
		{"idle", []byte{0, 0}, []byte{0, 0}, 0},
		{"one down", []byte{0, 0}, []byte{0x01, 0}, 1},
		{"held", []byte{0x01, 0}, []byte{0x01, 0}, 0},
		{"release", []byte{0x03, 0}, []byte{0x01, 0}, 0},
		{"chord", []byte{0, 0}, []byte{0x81, 0x10}, 3},
		{"swap", []byte{0x01, 0}, []byte{0x02, 0}, 1},
		{"short prev", nil, []byte{0xff}, 8},
	}
	for _, c := range cases {
		if got := newlyPressed(c.prev, c.cur); got != c.want {
			t.Errorf("%s: newlyPressed = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestEmitDropsWhenFull(t *testing.T) {
	ch := make(chan time.Time, 1)
	if !emit(ch, time.Now()) {
		t.Fatal("first emit dropped")
	}
	if emit(ch, time.Now()) {
		t.Fatal("emit on full channel should drop")
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open("telepathy")
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
	if !strings.Contains(err.Error(), "telepathy") {
		t.Errorf("error should name the backend: %v", err)
	}
}

func TestFake(t *testing.T) {
	f := NewFake()
	var l Listener = f
	if err := l.Start(); err != nil {
		t.Fatal(err)
	}
	if l.Backend() != BackendFake {
		t.Errorf("Backend = %q", l.Backend())
	}

	ts := time.Unix(100, 0)
	f.SimPress(ts)
	select {
	case got := <-l.Presses():
		if !got.Equal(ts) {
			t.Errorf("got %v, want %v", got, ts)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for press")
	}

	l.Stop()
	l.Stop() // idempotent
	if _, ok := <-l.Presses(); ok {
		t.Error("Presses not closed after Stop")
	}
}

func TestOpenFakeBackend(t *testing.T) {
	l, err := Open(BackendFake)
	if err != nil {
		t.Fatal(err)
	}
	defer l.Stop()
	if l.Backend() != BackendFake {
		t.Errorf("Backend = %q, want %q", l.Backend(), BackendFake)
	}
	if _, ok := l.(*Fake); !ok {
		t.Errorf("Open(fake) returned %T", l)
	}
}

type failingBackend struct{ name string }

func (f failingBackend) Start() error              { return errors.New(f.name + " refused") }
func (f failingBackend) Stop()                     {}
func (f failingBackend) Presses() <-chan time.Time { return nil }
func (f failingBackend) Backend() string           { return f.name }

func TestOpenAutoJoinsErrors(t *testing.T) {
	orig := newBackend
	t.Cleanup(func() { newBackend = orig })

	var tried []string
	newBackend = func(name string) Listener {
		tried = append(tried, name)
		return failingBackend{name}
	}

	l, err := Open(BackendAuto)
	if err == nil || l != nil {
		t.Fatalf("Open(auto) = %v, %v; want failure", l, err)
	}
	if len(tried) != len(autoOrder) {
		t.Errorf("tried %v, want every backend in %v", tried, autoOrder)
	}
	for _, name := range autoOrder {
		if !strings.Contains(err.Error(), name+": "+name+" refused") {
			t.Errorf("error missing %s failure: %v", name, err)
		}
	}
}

func TestOpenAutoStopsAtFirstWorking(t *testing.T) {
	orig := newBackend
	t.Cleanup(func() { newBackend = orig })

	var tried []string
	newBackend = func(name string) Listener {
		tried = append(tried, name)
		return NewFake()
	}

	l, err := Open(BackendAuto)
	if err != nil {
		t.Fatal(err)
	}
	l.Stop()
	if len(tried) != 1 || tried[0] != autoOrder[0] {
		t.Errorf("tried %v, want only %q", tried, autoOrder[0])
	}
}

func TestHeldKeysIgnoresRepeat(t *testing.T) {
	h := heldKeys{}
	if !h.down(30) {
		t.Error("first down should count")
	}
	if h.down(30) {
		t.Error("autorepeat should not count")
	}
	if !h.down(31) {
		t.Error("second key should count while first is held")
	}
	h.up(30)
	if !h.down(30) {
		t.Error("down after release should count")
	}
	h.up(99) // never pressed
}
