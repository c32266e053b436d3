package keys

import (
	"sync"
	"time"
)

type Fake struct {
	presses chan time.Time
	once    sync.Once
}

func NewFake() *Fake {
	return &Fake{presses: make(chan time.Time, pressBuffer)}
}

func (f *Fake) Start() error              { return nil }
func (f *Fake) Presses() <-chan time.Time { return f.presses }
func (f *Fake) Backend() string           { return BackendFake }

func (f *Fake) Stop() {
	f.once.Do(func() { close(f.presses) })
}

func (f *Fake) SimPress(t time.Time) { f.presses <- t }
