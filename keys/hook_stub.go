//go:build !darwin && !windows

package keys

import "time"

type hookListener struct{}

func newHook() Listener { return hookListener{} }

func (hookListener) Start() error              { return errUnsupported }
func (hookListener) Stop()                     {}
func (hookListener) Presses() <-chan time.Time { return nil }
func (hookListener) Backend() string           { return BackendHook }

func diagnoseHook() (string, error) { return "", errUnsupported }
