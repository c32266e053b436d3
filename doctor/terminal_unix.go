//go:build !windows

package doctor

import "os/exec"

// resetTerminal undoes a raw mode left behind by a previous crashed run.
func resetTerminal() {
	exec.Command("stty", "sane").Run()
}
