package keys

import (
	"fmt"
	"math/bits"
	"strings"
	"sync"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/pkg/errors"
)

// keymapPoll is how often the X server keymap is sampled. Presses shorter
// than this can be missed.
const keymapPoll = 10 * time.Millisecond

type x11Listener struct {
	conn    *xgb.Conn
	presses chan time.Time
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
}

// newX11 polls the core keymap of the X display named by $DISPLAY. It needs
// no extra privileges but only sees keys while an X11 session is running.
func newX11() Listener {
	return &x11Listener{presses: make(chan time.Time, pressBuffer)}
}

func (l *x11Listener) Backend() string           { return BackendX11 }
func (l *x11Listener) Presses() <-chan time.Time { return l.presses }

func (l *x11Listener) Start() error {
	conn, err := xgb.NewConn()
	if err != nil {
		return errors.Wrap(err, "connecting to X server")
	}
	first, err := xproto.QueryKeymap(conn).Reply()
	if err != nil {
		conn.Close()
		return errors.Wrap(err, "querying keymap")
	}

	l.conn = conn
	l.stop = make(chan struct{})
	l.done = make(chan struct{})
	go l.poll(first.Keys)
	return nil
}

func (l *x11Listener) poll(prev []byte) {
	defer close(l.done)
	ticker := time.NewTicker(keymapPoll)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
		}
		reply, err := xproto.QueryKeymap(l.conn).Reply()
		if err != nil {
			return
		}
		now := time.Now()
		for i := newlyPressed(prev, reply.Keys); i > 0; i-- {
			emit(l.presses, now)
		}
		prev = reply.Keys
	}
}

// newlyPressed counts keycodes whose bit is set in cur but not in prev.
func newlyPressed(prev, cur []byte) int {
	n := 0
	for i := range cur {
		var p byte
		if i < len(prev) {
			p = prev[i]
		}
		n += bits.OnesCount8(cur[i] &^ p)
	}
	return n
}

func (l *x11Listener) Stop() {
	l.once.Do(func() {
		if l.stop != nil {
			close(l.stop)
			<-l.done
			l.conn.Close()
		}
		close(l.presses)
	})
}

func diagnoseX11() (string, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return "", errors.Wrap(err, "connecting to X server")
	}
	defer conn.Close()
	screen := xproto.Setup(conn).DefaultScreen(conn)
	if screen == nil {
		return "", errors.New("X server reported no screens")
	}
	return fmt.Sprintf("X11 display %dx%d, keymap polling every %v",
		screen.WidthInPixels, screen.HeightInPixels, keymapPoll), nil
}

// Diagnose reports which backends can be opened on this host.
func Diagnose() (string, error) {
	var lines []string
	var firstErr error
	for _, name := range autoOrder {
		var msg string
		var err error
		switch name {
		case BackendEvdev:
			msg, err = diagnoseEvdev()
		case BackendX11:
			msg, err = diagnoseX11()
		case BackendHook:
			msg, err = diagnoseHook()
		}
		if err != nil {
			lines = append(lines, fmt.Sprintf("%s: unavailable (%v)", name, err))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		return strings.Join(append(lines, fmt.Sprintf("%s: %s", name, msg)), "\n"), nil
	}
	return strings.Join(lines, "\n"), firstErr
}
