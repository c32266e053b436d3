//go:build linux

package main

// registerQuitHotkey is a no-op on Linux: the evdev reader has no exclusive
// grab, and X11 grabs would swallow the combination from other windows.
func registerQuitHotkey() <-chan struct{} {
	return nil
}
