//go:build !linux

package main

import (
	"runtime"

	"golang.design/x/hotkey/mainthread"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	o := parseFlags()
	if o.gui {
		initGUI(o) // takes main thread, calls run() in goroutine
		return
	}
	mainthread.Init(func() { run(o) })
}
