package main

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"keyglow/glow"
)

type fixedFreq int

func (f fixedFreq) Frequency() int        { return int(f) }
func (f fixedFreq) Window() time.Duration { return time.Second }

func TestTUITickStepsAnimator(t *testing.T) {
	m := newTUIModel(fixedFreq(9), glow.NewAnimator(glow.Options{}), 50*time.Millisecond)

	next, cmd := m.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("tick should schedule the next tick")
	}
	got := next.(tuiModel)
	if got.level != 3 || got.freq != 9 || got.peakFreq != 9 {
		t.Errorf("after tick: level=%d freq=%d peak=%d", got.level, got.freq, got.peakFreq)
	}
	if !strings.Contains(got.View(), "9 keys/1s") {
		t.Errorf("view missing status line:\n%s", got.View())
	}
}

func TestTUIDecaysWhenIdle(t *testing.T) {
	anim := glow.NewAnimator(glow.Options{})
	anim.Step(12)
	m := newTUIModel(fixedFreq(0), anim, 50*time.Millisecond)
	var model tea.Model = m
	for i := 0; i < 21; i++ {
		model, _ = model.Update(tickMsg(time.Now()))
	}
	if lvl := model.(tuiModel).level; lvl != 2 {
		t.Errorf("level after 21 idle ticks = %d, want 2", lvl)
	}
}

func TestTUIQuitKeys(t *testing.T) {
	m := newTUIModel(fixedFreq(0), glow.NewAnimator(glow.Options{}), time.Second)
	for _, k := range []tea.KeyMsg{
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
	} {
		_, cmd := m.Update(k)
		if cmd == nil {
			t.Errorf("%q: expected quit command", k.String())
			continue
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%q: command did not quit", k.String())
		}
	}
}

func TestRenderDotsHasThreeRows(t *testing.T) {
	for lvl := 0; lvl < glow.Levels; lvl++ {
		out := strings.TrimRight(renderDots(lvl), "\n")
		if n := len(strings.Split(out, "\n")); n != 3 {
			t.Errorf("level %d rendered %d rows", lvl, n)
		}
	}
}
