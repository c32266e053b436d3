// Package keys delivers a timestamp for every key press made anywhere on
// the desktop, independent of which window has focus.
package keys

import (
	"errors"
	"fmt"
	"time"
)

const (
	BackendAuto  = "auto"
	BackendEvdev = "evdev"
	BackendX11   = "x11"
	BackendHook  = "hook"
	BackendFake  = "fake"
)

// pressBuffer bounds how far a slow consumer may lag before presses drop.
const pressBuffer = 256

// Listener reports global key presses.
type Listener interface {
	Start() error
	Stop()
	Presses() <-chan time.Time
	Backend() string
}

var errUnsupported = errors.New("not supported on this platform")

// Open starts the first backend that works. backend is BackendAuto or the
// name of a single backend to force.
func Open(backend string) (Listener, error) {
	var candidates []string
	switch backend {
	case "", BackendAuto:
		candidates = autoOrder
	case BackendEvdev, BackendX11, BackendHook, BackendFake:
		candidates = []string{backend}
	default:
		return nil, fmt.Errorf("unknown key backend %q (use auto, evdev, x11, hook or fake)", backend)
	}

	var errs []error
	for _, name := range candidates {
		l := newBackend(name)
		if err := l.Start(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		return l, nil
	}
	return nil, fmt.Errorf("no key listener available: %w", errors.Join(errs...))
}

// newBackend is a variable so tests can substitute failing backends.
var newBackend = func(name string) Listener {
	switch name {
	case BackendEvdev:
		return newEvdev()
	case BackendHook:
		return newHook()
	case BackendFake:
		return NewFake()
	default:
		return newX11()
	}
}

// emit hands t to ch without blocking; a full buffer drops the press.
func emit(ch chan<- time.Time, t time.Time) bool {
	select {
	case ch <- t:
		return true
	default:
		return false
	}
}
