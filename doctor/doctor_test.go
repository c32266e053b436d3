package doctor

import (
	"context"
	"errors"
	"testing"
	"time"

	"keyglow/keys"
	"keyglow/rate"
)

func TestConsoleWithoutTerminal(t *testing.T) {
	c := &console{fd: -1}
	c.restore() // no state, no panic
	c.println("plain %d", 1)
}

func TestCheckTypingFailsWithoutPresses(t *testing.T) {
	s := rate.NewSampler()
	if checkTyping(&console{fd: -1}, s) {
		t.Error("expected failure with no presses")
	}
}

func TestCheckTypingPassesWithPresses(t *testing.T) {
	s := rate.NewSampler()
	go func() {
		for i := 0; i < 30; i++ {
			s.Record(time.Now())
			time.Sleep(50 * time.Millisecond)
		}
	}()
	if !checkTyping(&console{fd: -1}, s) {
		t.Error("expected pass when presses arrive")
	}
}

func TestCheckListenerUnknownBackend(t *testing.T) {
	l, ok := checkListener("bogus")
	if ok || l != nil {
		t.Error("unknown backend should fail")
	}
}

type fakeInjector struct {
	fake *keys.Fake
	err  error
}

func (f *fakeInjector) Press() error {
	if f.err != nil {
		return f.err
	}
	f.fake.SimPress(time.Now())
	return nil
}

func feedFake(t *testing.T) (*keys.Fake, *rate.Sampler) {
	t.Helper()
	fake := keys.NewFake()
	s := rate.NewSampler()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go s.Feed(ctx, fake.Presses())
	return fake, s
}

func TestCheckInjectedPressObserved(t *testing.T) {
	fake, s := feedFake(t)
	if !checkInjectedPress(&console{fd: -1}, s, &fakeInjector{fake: fake}, nil) {
		t.Error("injected press should be observed")
	}
}

func TestCheckInjectedPressSkips(t *testing.T) {
	fake, s := feedFake(t)
	if checkInjectedPress(&console{fd: -1}, s, nil, errors.New("no uinput")) {
		t.Error("missing injector should not pass")
	}
	inj := &fakeInjector{fake: fake, err: errors.New("denied")}
	if checkInjectedPress(&console{fd: -1}, s, inj, nil) {
		t.Error("failed press should not pass")
	}
}

// The virtual keyboard must exist before the listener enumerates devices,
// otherwise evdev never opens it.
func TestRunCreatesInjectorBeforeListener(t *testing.T) {
	origInj, origOpen := newInjector, openListener
	t.Cleanup(func() { newInjector, openListener = origInj, origOpen })

	var order []string
	inj := &fakeInjector{}
	newInjector = func() (injector, error) {
		order = append(order, "injector")
		return inj, nil
	}
	openListener = func(string) (keys.Listener, error) {
		order = append(order, "listener")
		inj.fake = keys.NewFake()
		return inj.fake, nil
	}

	// The injected press also counts as typing, so every check passes.
	if code := Run(keys.BackendFake); code != 0 {
		t.Errorf("Run = %d, want 0", code)
	}
	if len(order) != 2 || order[0] != "injector" || order[1] != "listener" {
		t.Errorf("call order = %v, want [injector listener]", order)
	}
}
