//go:build linux

package main

func main() {
	o := parseFlags()
	if o.gui {
		initGUI(o)
		return
	}
	run(o)
}
