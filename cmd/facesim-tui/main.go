package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/ajanata/movement"
	"github.com/ajanata/movement/internal/buzzer"
	"github.com/ajanata/movement/internal/config"
	"github.com/ajanata/movement/internal/logging"
	"github.com/ajanata/movement/internal/sim"
)

const frameTime = 32 * time.Millisecond

var (
	glassStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2)
	digitStyle     = lipgloss.NewStyle().Bold(true)
	indicatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	ledStyle       = lipgloss.NewStyle().Background(lipgloss.Color("22"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	errStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type frameMsg time.Time

func frame() tea.Cmd {
	return tea.Tick(frameTime, func(t time.Time) tea.Msg { return frameMsg(t) })
}

type model struct {
	sim        *sim.Sim
	screenshot string
	last       time.Time
	notes      []buzzer.Tone
	status     string
	err        error
}

func (m *model) Init() tea.Cmd {
	m.last = time.Now()
	return frame()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		now := time.Time(msg)
		m.check(m.sim.Movement.Advance(now.Sub(m.last)))
		m.last = now
		m.collectNotes()
		return m, frame()

	case tea.KeyMsg:
		mv := m.sim.Movement
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "l", "a", "m":
			b := keyButton(msg.String())
			m.check(mv.Press(b))
			m.check(mv.Release(b))
		case "L", "A", "M":
			b := keyButton(strings.ToLower(msg.String()))
			if mv.ButtonLevel(b) {
				m.check(mv.Release(b))
			} else {
				m.check(mv.Press(b))
			}
		case "s":
			mv.SetButtonSound(!mv.ButtonShouldSound())
		case "p":
			if err := m.sim.Screenshot(m.screenshot); err != nil {
				m.err = err
			} else {
				m.status = "saved " + m.screenshot
			}
		}
		m.collectNotes()
	}
	return m, nil
}

func (m *model) check(err error) {
	if err != nil {
		m.err = err
	}
}

func (m *model) collectNotes() {
	if tones := m.sim.Buzzer.Drain(); len(tones) > 0 {
		m.notes = tones
	}
}

func keyButton(k string) movement.Button {
	switch k {
	case "a":
		return movement.ButtonAlarm
	case "m":
		return movement.ButtonMode
	default:
		return movement.ButtonLight
	}
}

func (m *model) View() string {
	mv := m.sim.Movement
	l := m.sim.LCD

	ind := l.IndicatorLine()
	if ind == "" {
		ind = " "
	}
	glass := glassStyle
	if mv.LEDOn() {
		glass = glass.Inherit(ledStyle)
	}
	screen := glass.Render(lipgloss.JoinVertical(lipgloss.Left,
		indicatorStyle.Render(ind),
		digitStyle.Render(l.Field(movement.PositionTop)),
		digitStyle.Render(l.Field(movement.PositionBottom)),
	))

	var held []string
	for _, b := range movement.Buttons {
		if mv.ButtonLevel(b) {
			held = append(held, b.String())
		}
	}
	sound := "off"
	if mv.ButtonShouldSound() {
		sound = "on"
	}
	status := fmt.Sprintf("face %d/%d  %d Hz  sound %s  held [%s]  %s",
		mv.CurrentFace(), mv.FaceCount(), mv.TickFrequency(), sound, strings.Join(held, " "), mv.Now().Round(time.Second))

	lines := []string{screen, status}
	if len(m.notes) > 0 {
		lines = append(lines, "♪ "+buzzer.Format(m.notes))
	}
	if m.status != "" {
		lines = append(lines, m.status)
	}
	if m.err != nil {
		lines = append(lines, errStyle.Render(m.err.Error()))
	}
	lines = append(lines, dimStyle.Render("l/a/m click  L/A/M hold/release  s sound  p screenshot  q quit"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Screenshot == "" {
		cfg.Screenshot = "facesim.bmp"
	}

	// the terminal belongs to the UI, so only log when a file is configured
	logger := zap.NewNop()
	if cfg.Log.File != "" {
		logger, err = logging.New(cfg.Log)
		if err != nil {
			log.Fatal(err)
		}
	}
	defer logger.Sync()

	s, err := sim.New(cfg, logging.Adapt(logger))
	if err != nil {
		log.Fatal(err)
	}

	if _, err := tea.NewProgram(&model{sim: s, screenshot: cfg.Screenshot}).Run(); err != nil {
		log.Fatal(err)
	}
}
