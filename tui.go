package main

import (
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"keyglow/glow"
)

type tickMsg time.Time

// frequencySource is satisfied by *rate.Sampler.
type frequencySource interface {
	Frequency() int
	Window() time.Duration
}

type tuiModel struct {
	src      frequencySource
	anim     *glow.Animator
	frame    time.Duration
	freq     int
	level    int
	peakFreq int
	width    int
	height   int
}

var (
	tuiProgram *tea.Program
	tuiMu      sync.Mutex
)

// Pre-computed dot styles, one per palette entry
var (
	dotStyles [len(glow.Palette)]lipgloss.Style
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
	boldStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("239")).Bold(true)
)

func init() {
	for i, c := range glow.Palette {
		dotStyles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(glow.Hex(c)))
	}
}

func newTUIModel(src frequencySource, anim *glow.Animator, frame time.Duration) tuiModel {
	return tuiModel{src: src, anim: anim, frame: frame}
}

func runTUI(src frequencySource, anim *glow.Animator, frame time.Duration) error {
	tuiMu.Lock()
	tuiProgram = tea.NewProgram(newTUIModel(src, anim, frame), tea.WithAltScreen())
	p := tuiProgram
	tuiMu.Unlock()

	_, err := p.Run()
	return err
}

func quitTUI() {
	tuiMu.Lock()
	p := tuiProgram
	tuiMu.Unlock()
	if p != nil {
		p.Quit()
	}
}

func (m tuiModel) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m tuiModel) Init() tea.Cmd {
	return m.tick()
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		}

	case tickMsg:
		m.freq = m.src.Frequency()
		prev := m.level
		m.level = m.anim.Step(m.freq)
		if m.level != prev {
			onLevelChange(prev, m.level, m.freq)
		}
		if m.freq > m.peakFreq {
			m.peakFreq = m.freq
		}
		return m, m.tick()
	}
	return m, nil
}

func renderDots(level int) string {
	var b strings.Builder
	for _, idx := range glow.DotIndices(level) {
		b.WriteString(" ")
		b.WriteString(dotStyles[idx].Render("●"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m tuiModel) View() string {
	var lines []string
	lines = append(lines, strings.TrimRight(renderDots(m.level), "\n"))
	lines = append(lines, "")
	lines = append(lines, dimStyle.Render(fmt.Sprintf("%d keys/%v  level %d", m.freq, m.src.Window(), m.level)))
	lines = append(lines, dimStyle.Render(fmt.Sprintf("peak %d", m.peakFreq)))
	lines = append(lines, "")
	lines = append(lines, boldStyle.Render("q/esc")+helpStyle.Render(" to quit"))
	lines = append(lines, helpStyle.Render("keyglow "+version))
	return strings.Join(lines, "\n")
}
