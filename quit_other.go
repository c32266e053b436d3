//go:build !linux

package main

import (
	"golang.design/x/hotkey"

	"keyglow/log"
)

// registerQuitHotkey binds Ctrl+Shift+Q as a global quit shortcut. A failed
// registration is logged and leaves the other quit paths in place.
func registerQuitHotkey() <-chan struct{} {
	hk := hotkey.New([]hotkey.Modifier{hotkey.ModCtrl, hotkey.ModShift}, hotkey.KeyQ)
	if err := hk.Register(); err != nil {
		log.Warnf("quit hotkey register error: %v", err)
		return nil
	}
	quit := make(chan struct{})
	go func() {
		<-hk.Keydown()
		hk.Unregister()
		close(quit)
	}()
	return quit
}
