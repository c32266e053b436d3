//go:build gui

package main

import (
	"runtime"

	"github.com/ncruces/zenity"

	"keyglow/glow"
	"keyglow/gui"
)

var guiApp *gui.App

func initGUI(o options) {
	guiMode = true

	// Lock this goroutine to OS thread for Fyne/GLFW
	runtime.LockOSThread()

	animator = glow.NewAnimator(glow.Options{})
	guiApp = gui.NewApp(gui.Config{
		Animator: animator,
		Frame:    o.frame,
		OnLevel:  onLevelChange,
		OnReady:  func() { run(o) },
	})
	if err := gui.Run(guiApp); err != nil {
		fatal("gui: %v", err)
	}
	// Window closed from the tray menu or with Esc.
	gracefulShutdown()
}

func attachGUI(src gui.FrequencySource) {
	guiApp.Attach(src)
}

func quitFrontend() {
	if guiApp != nil {
		guiApp.Quit()
	}
	quitTUI()
}

func showFatalDialog(msg string) {
	zenity.Error(msg,
		zenity.Title("keyglow"),
		zenity.ErrorIcon,
	)
}
