//go:build !gui

package main

import (
	"fmt"
	"os"

	"keyglow/rate"
)

func initGUI(options) {
	fmt.Fprintln(os.Stderr, "keyglow: built without GUI support (rebuild with -tags gui)")
	os.Exit(2)
}

func attachGUI(*rate.Sampler) {}

func quitFrontend() {
	quitTUI()
}

func showFatalDialog(string) {}
