package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"keyglow/glow"
	"keyglow/keys"
	"keyglow/log"
	"keyglow/rate"
)

func runTestMode() {
	fake := keys.NewFake()
	listener = fake

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sampler.Feed(ctx, fake.Presses())

	log.SessionStart(fake.Backend(), "test", sampler.Window())
	driveTest(os.Stdin, os.Stdout, fake, sampler, animator)
	log.SessionEnd(sampler.Total(), sampler.Peak(), time.Since(startedAt))
	log.Close()
}

// driveTest executes one command per input line:
//
//	PRESS n    n key presses now
//	SLEEP ms   wait
//	TICK n     recompute the frequency and advance n animation frames
//	STATE      print "freq level top,mid,bottom"
//	QUIT       stop
func driveTest(in io.Reader, out io.Writer, fake *keys.Fake, s *rate.Sampler, anim *glow.Animator) {
	var pressed uint64
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		arg := 1
		if len(fields) > 1 {
			if n, err := strconv.Atoi(fields[1]); err == nil {
				arg = n
			}
		}

		switch fields[0] {
		case "PRESS":
			if arg <= 0 {
				fmt.Fprintf(out, "PRESS needs a positive count, got %d\n", arg)
				continue
			}
			for i := 0; i < arg; i++ {
				fake.SimPress(time.Now())
			}
			pressed += uint64(arg)
			waitRecorded(s, pressed)
		case "SLEEP":
			time.Sleep(time.Duration(arg) * time.Millisecond)
		case "TICK":
			freq := s.Update()
			for i := 0; i < arg; i++ {
				anim.Step(freq)
			}
		case "STATE":
			lvl := anim.Level()
			idx := glow.DotIndices(lvl)
			fmt.Fprintf(out, "%d %d %d,%d,%d\n", s.Frequency(), lvl, idx[0], idx[1], idx[2])
		case "QUIT":
			return
		default:
			fmt.Fprintf(out, "unknown command %q\n", fields[0])
		}
	}
}

func waitRecorded(s *rate.Sampler, n uint64) {
	deadline := time.Now().Add(time.Second)
	for s.Total() < n && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
}
