//go:build linux

package keys

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var autoOrder = []string{BackendEvdev, BackendX11}

const (
	evKey    = 1
	keyPress = 1
)

// input_event is 24 bytes on 64-bit Linux:
// timeval (16 bytes) + type (2) + code (2) + value (4)
const inputEventSize = 24

type evdevListener struct {
	presses chan time.Time
	files   []*os.File
	stop    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// newEvdev reads /dev/input directly. Requires the user to be in the
// 'input' group.
func newEvdev() Listener {
	return &evdevListener{presses: make(chan time.Time, pressBuffer)}
}

func (l *evdevListener) Backend() string           { return BackendEvdev }
func (l *evdevListener) Presses() <-chan time.Time { return l.presses }

func (l *evdevListener) Start() error {
	keyboards, err := findKeyboards()
	if err != nil {
		return fmt.Errorf("finding keyboards: %w", err)
	}
	if len(keyboards) == 0 {
		return fmt.Errorf("no keyboard devices found (is user in 'input' group?)")
	}

	l.stop = make(chan struct{})

	for _, path := range keyboards {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		l.files = append(l.files, f)
	}
	if len(l.files) == 0 {
		return fmt.Errorf("could not open any keyboard device (run: sudo usermod -aG input $USER, then re-login)")
	}

	for _, f := range l.files {
		l.wg.Add(1)
		go l.readEvents(f)
	}
	return nil
}

func (l *evdevListener) readEvents(f *os.File) {
	defer l.wg.Done()
	buf := make([]byte, inputEventSize*16)

	for {
		n, err := f.Read(buf)
		if err != nil {
			return
		}
		presses := countPresses(buf[:n])
		if presses == 0 {
			continue
		}
		now := time.Now()
		for i := 0; i < presses; i++ {
			select {
			case <-l.stop:
				return
			default:
			}
			emit(l.presses, now)
		}
	}
}

// countPresses returns the number of key-down events in a batch of raw
// input_event records. Autorepeat (value 2) and releases are not counted.
func countPresses(buf []byte) int {
	n := 0
	for i := 0; i+inputEventSize <= len(buf); i += inputEventSize {
		evType := binary.LittleEndian.Uint16(buf[i+16:])
		evValue := int32(binary.LittleEndian.Uint32(buf[i+20:]))
		if evType == evKey && evValue == keyPress {
			n++
		}
	}
	return n
}

func (l *evdevListener) Stop() {
	l.once.Do(func() {
		if l.stop != nil {
			close(l.stop)
		}
		for _, f := range l.files {
			f.Close()
		}
		l.wg.Wait()
		close(l.presses)
	})
}

func findKeyboards() ([]string, error) {
	entries, err := os.ReadDir("/dev/input")
	if err != nil {
		return nil, err
	}

	var keyboards []string
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "event") {
			continue
		}
		if isKeyboard(e.Name()) {
			keyboards = append(keyboards, filepath.Join("/dev/input", e.Name()))
		}
	}
	return keyboards, nil
}

func isKeyboard(eventName string) bool {
	capsPath := filepath.Join("/sys/class/input", eventName, "device", "capabilities", "key")
	data, err := os.ReadFile(capsPath)
	if err != nil {
		return false
	}
	// Real keyboards have long key capability bitmaps
	caps := strings.TrimSpace(string(data))
	return len(caps) > 10
}

func diagnoseEvdev() (string, error) {
	keyboards, err := findKeyboards()
	if err != nil {
		return "", fmt.Errorf("cannot scan input devices: %w", err)
	}
	if len(keyboards) == 0 {
		return "", fmt.Errorf("no keyboard devices found (is user in 'input' group?)")
	}

	for _, path := range keyboards {
		f, err := os.Open(path)
		if err == nil {
			f.Close()
			return fmt.Sprintf("%d keyboard(s) found, opened %s", len(keyboards), path), nil
		}
	}
	return "", fmt.Errorf("found %d keyboard(s) but cannot open any (run: sudo usermod -aG input $USER)", len(keyboards))
}
