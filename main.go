package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	"keyglow/doctor"
	"keyglow/glow"
	"keyglow/keys"
	"keyglow/log"
	"keyglow/rate"
	"keyglow/shutdown"
)

var version = "dev"

var (
	listener  keys.Listener
	sampler   *rate.Sampler
	animator  *glow.Animator
	startedAt time.Time
	guiMode   bool
)

var shutdownOnce sync.Once

func gracefulShutdown() {
	shutdownOnce.Do(func() {
		if sampler != nil {
			log.SessionEnd(sampler.Total(), sampler.Peak(), time.Since(startedAt))
		}
		if listener != nil {
			listener.Stop()
		}
		log.Close()
		quitFrontend()
		os.Exit(0)
	})
}

// fatal reports a startup failure and exits. In GUI mode there is usually no
// terminal, so the message also goes to a native dialog.
func fatal(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Error(msg)
	log.Close()
	fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	if guiMode {
		showFatalDialog(msg)
	}
	os.Exit(1)
}

func initCrashLog(dir string) {
	crashPath := filepath.Join(dir, "crash_log.txt")
	crashFile, err := os.OpenFile(crashPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	fmt.Fprintf(crashFile, "\n=== Session %s [pid=%d] ===\n", time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
	debug.SetCrashOutput(crashFile, debug.CrashOptions{})
}

type options struct {
	version bool
	doctor  bool
	test    bool
	gui     bool
	debug   bool
	backend string
	logPath string
	window  time.Duration
	sample  time.Duration
	frame   time.Duration
}

func parseFlags() options {
	var o options
	flag.BoolVar(&o.version, "version", false, "Print version and exit")
	flag.BoolVar(&o.doctor, "doctor", false, "Run system diagnostics and exit")
	flag.BoolVar(&o.test, "test", false, "Test mode (headless, stdin-driven)")
	flag.BoolVar(&o.gui, "gui", false, "Show the desktop widget instead of the terminal view")
	flag.BoolVar(&o.debug, "debug", false, "Log every level change")
	flag.StringVar(&o.backend, "backend", keys.BackendAuto, "Key listener: auto, evdev, x11, hook or fake")
	flag.StringVar(&o.logPath, "logpath", "", "log directory path (default: OS-specific location, use ./ for current dir)")
	flag.DurationVar(&o.window, "window", rate.DefaultWindow, "Length of the rolling frequency window")
	flag.DurationVar(&o.sample, "sample", rate.DefaultInterval, "How often the frequency is recomputed")
	flag.DurationVar(&o.frame, "frame", 50*time.Millisecond, "Animation frame interval")
	flag.Parse()
	return o
}

func run(o options) {
	if o.version {
		fmt.Printf("keyglow %s\n", version)
		os.Exit(0)
	}

	// Resolve log directory early
	logPath, err := log.ResolveDir(o.logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		os.Exit(1)
	}
	log.SetDir(logPath)
	if err := log.EnsureDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
	} else {
		initCrashLog(logPath)
	}

	if o.doctor {
		os.Exit(doctor.Run(o.backend))
	}

	if err := log.Init(o.debug); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	}

	sampler = rate.NewSampler(rate.WithWindow(o.window))
	if animator == nil {
		animator = glow.NewAnimator(glow.Options{})
	}
	startedAt = time.Now()

	if o.test {
		runTestMode()
		return
	}

	listener, err = keys.Open(o.backend)
	if err != nil {
		log.ListenerError(o.backend, err)
		fatal("installing key listener: %v", err)
	}

	ctx, stop := shutdown.Context(context.Background())
	defer stop()

	go sampler.Feed(ctx, listener.Presses())
	go sampler.Run(ctx, o.sample)

	quitKey := registerQuitHotkey()

	mode := "terminal"
	if guiMode {
		mode = "gui"
	}
	log.SessionStart(listener.Backend(), mode, sampler.Window())

	go func() {
		select {
		case <-ctx.Done():
		case <-quitKey:
			log.Info("quit_hotkey")
		}
		gracefulShutdown()
	}()

	if guiMode {
		attachGUI(sampler)
		<-ctx.Done()
		return
	}

	if err := runTUI(sampler, animator, o.frame); err != nil {
		log.Errorf("TUI error: %v", err)
	}
	gracefulShutdown()
}

func onLevelChange(from, to, freq int) {
	log.LevelChange(from, to, freq)
}
