//go:build darwin || windows

package keys

import (
	"sync"
	"time"

	hook "github.com/robotn/gohook"
)

var autoOrder = []string{BackendHook, BackendX11}

// hookListener uses the OS event hook (CGEventTap on macOS, a low-level
// keyboard hook on Windows). macOS asks for Accessibility permission the
// first time it starts.
type hookListener struct {
	presses chan time.Time
	events  chan hook.Event
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
}

func newHook() Listener {
	return &hookListener{presses: make(chan time.Time, pressBuffer)}
}

func (l *hookListener) Backend() string           { return BackendHook }
func (l *hookListener) Presses() <-chan time.Time { return l.presses }

func (l *hookListener) Start() error {
	l.events = hook.Start()
	l.stop = make(chan struct{})
	l.done = make(chan struct{})
	go l.pump()
	return nil
}

func (l *hookListener) pump() {
	defer close(l.done)
	held := heldKeys{}
	for {
		select {
		case <-l.stop:
			return
		case ev, ok := <-l.events:
			if !ok {
				return
			}
			switch ev.Kind {
			case hook.KeyHold:
				if held.down(ev.Rawcode) {
					emit(l.presses, time.Now())
				}
			case hook.KeyUp:
				held.up(ev.Rawcode)
			}
		}
	}
}

func (l *hookListener) Stop() {
	l.once.Do(func() {
		if l.stop != nil {
			close(l.stop)
			<-l.done
			hook.End()
		}
		close(l.presses)
	})
}

func diagnoseHook() (string, error) {
	return "global keyboard hook available (macOS: grant Accessibility to the terminal or app)", nil
}
