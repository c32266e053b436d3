package doctor

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"keyglow/glow"
	"keyglow/keys"
	"keyglow/rate"
	"keyglow/shutdown"
)

const typingWindow = 3 * time.Second

var openListener = keys.Open

// Run executes interactive diagnostic checks and returns an exit code (0=all pass, 1=any fail).
func Run(backend string) int {
	resetTerminal()

	fmt.Println("keyglow doctor - interactive system diagnostics")
	fmt.Println("===============================================")

	inj, injErr := newInjector()

	l, ok := checkListener(backend)
	if !ok {
		fmt.Println()
		fmt.Println("Some checks failed. See details above.")
		return 1
	}
	defer l.Stop()

	s := rate.NewSampler()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Feed(ctx, l.Presses())

	con := newConsole()
	defer con.restore()

	sig, stopSignals := shutdown.Context(context.Background())
	defer stopSignals()
	finished := make(chan struct{})
	defer close(finished)
	go func() {
		<-sig.Done()
		select {
		case <-finished:
		default:
			con.restore()
			fmt.Println("\nInterrupted")
			os.Exit(130)
		}
	}()

	allPass := true
	checkInjectedPress(con, s, inj, injErr)
	if !checkTyping(con, s) {
		allPass = false
	}

	con.println("")
	if allPass {
		con.println("All checks passed!")
		return 0
	}
	con.println("Some checks failed. See details above.")
	return 1
}

func checkListener(backend string) (keys.Listener, bool) {
	fmt.Println()
	fmt.Println("[1/3] Global key listener")

	if report, err := keys.Diagnose(); report != "" {
		for _, line := range strings.Split(report, "\n") {
			fmt.Printf("  %s\n", line)
		}
	} else if err != nil {
		fmt.Printf("  %v\n", err)
	}

	l, err := openListener(backend)
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		return nil, false
	}
	fmt.Printf("  PASS: listening via %s\n", l.Backend())
	return l, true
}

// checkInjectedPress never fails the run: synthetic input needs its own
// permissions (uinput on Linux, accessibility on macOS). It reports whether
// the injected press reached the sampler.
func checkInjectedPress(con *console, s *rate.Sampler, inj injector, injErr error) bool {
	con.println("")
	con.println("[2/3] Synthetic key press")

	if injErr != nil {
		con.println("  SKIP: cannot inject key events: %v", injErr)
		return false
	}
	before := s.Total()
	if err := inj.Press(); err != nil {
		con.println("  SKIP: cannot inject key events: %v", err)
		return false
	}
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s.Total() > before {
			con.println("  PASS: injected press observed")
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	con.println("  WARN: injected press not observed (listener may ignore virtual devices)")
	return false
}

func checkTyping(con *console, s *rate.Sampler) bool {
	con.println("")
	con.println("[3/3] Typing frequency")
	con.println("Type as fast as you can for %v...", typingWindow)

	peak := 0
	end := time.Now().Add(typingWindow)
	for time.Now().Before(end) {
		time.Sleep(rate.DefaultInterval)
		if n := s.Update(); n > peak {
			peak = n
		}
	}

	if peak == 0 {
		con.println("  FAIL: no key presses seen")
		return false
	}
	level := glow.TargetLevel(peak)
	colors := glow.DotColors(level)
	con.println("  PASS: peak %d keys/%v, level %d, dots %s %s %s",
		peak, s.Window(), level, glow.Hex(colors[0]), glow.Hex(colors[1]), glow.Hex(colors[2]))
	return true
}

// console puts stdin in raw mode, when it is a terminal, so typed keys
// neither echo nor wait for Enter. Ctrl+C still exits.
type console struct {
	fd    int
	state *term.State
}

func newConsole() *console {
	c := &console{fd: int(os.Stdin.Fd())}
	if !term.IsTerminal(c.fd) {
		return c
	}
	state, err := term.MakeRaw(c.fd)
	if err != nil {
		return c
	}
	c.state = state
	go c.drain()
	return c
}

func (c *console) drain() {
	buf := make([]byte, 64)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return
		}
		for _, b := range buf[:n] {
			if b == 3 { // Ctrl+C
				c.restore()
				fmt.Println("\nInterrupted")
				os.Exit(130)
			}
		}
	}
}

func (c *console) restore() {
	if c.state != nil {
		term.Restore(c.fd, c.state)
		c.state = nil
	}
}

func (c *console) println(format string, args ...any) {
	eol := "\n"
	if c.state != nil {
		eol = "\r\n"
	}
	fmt.Printf(format+eol, args...)
}
