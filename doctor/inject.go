package doctor

import (
	"runtime"
	"time"

	"github.com/micmonay/keybd_event"
)

type injector interface {
	Press() error
}

type keyInjector struct {
	kb keybd_event.KeyBonding
}

// Press taps the space bar through the OS input-injection API.
func (k *keyInjector) Press() error {
	k.kb.SetKeys(keybd_event.VK_SPACE)
	return k.kb.Launching()
}

// newInjector creates the virtual keyboard. On Linux this adds a uinput
// device under /dev/input, so it must exist before the evdev listener scans
// for keyboards.
var newInjector = func() (injector, error) {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return nil, err
	}
	// The uinput device needs a moment before the desktop picks it up.
	if runtime.GOOS == "linux" {
		time.Sleep(2 * time.Second)
	}
	return &keyInjector{kb: kb}, nil
}
