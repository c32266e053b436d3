//go:build !linux

package keys

import "time"

type evdevListener struct{}

func newEvdev() Listener { return evdevListener{} }

func (evdevListener) Start() error              { return errUnsupported }
func (evdevListener) Stop()                     {}
func (evdevListener) Presses() <-chan time.Time { return nil }
func (evdevListener) Backend() string           { return BackendEvdev }

func diagnoseEvdev() (string, error) { return "", errUnsupported }
