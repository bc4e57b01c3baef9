// Package terminal is a bubbletea front-end for the break scheduler, for
// hosts without a system tray.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"eyebreak/internal/core/scheduler"
)

const refreshInterval = 500 * time.Millisecond

// ErrNotTerminal is returned when output is not attached to a TTY.
var ErrNotTerminal = errors.New("stdout is not a TTY")

// Controller is the part of the scheduler the terminal UI drives.
type Controller interface {
	Status() scheduler.Status
	Start()
	TakeBreakNow()
	EndBreakNow()
	SkipNextBreak()
	Extend(by time.Duration)
	PauseFor(duration time.Duration)
	PauseUntilResume()
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	countStyle   = lipgloss.NewStyle().Bold(true).Padding(1, 0)
	breakStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	pausedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	frameStyle   = lipgloss.NewStyle().Padding(1, 2)
	messageStyle = lipgloss.NewStyle().Bold(true)
)

type refreshMsg struct{}

type eventMsg struct {
	event scheduler.Event
	ok    bool
}

// Model is the bubbletea model for the terminal UI.
type Model struct {
	controller Controller
	events     <-chan scheduler.Event
	message    string
	keys       keyMap
	help       help.Model
	progress   progress.Model
	status     scheduler.Status
	notice     string
}

// New creates a terminal model fed by controller snapshots and scheduler events.
func New(controller Controller, events <-chan scheduler.Event, message string) Model {
	return Model{
		controller: controller,
		events:     events,
		message:    message,
		keys:       defaultKeyMap(),
		help:       help.New(),
		progress:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		status:     controller.Status(),
	}
}

// Run starts the terminal UI and blocks until the user quits or ctx ends.
func Run(ctx context.Context, model Model, in io.Reader, out io.Writer) error {
	if f, ok := out.(*os.File); ok {
		if !term.IsTerminal(int(f.Fd())) {
			return ErrNotTerminal
		}
	}

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithContext(ctx),
	)
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(refreshCmd(), waitEventCmd(m.events))
}

func refreshCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg { return refreshMsg{} })
}

func waitEventCmd(ch <-chan scheduler.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		return eventMsg{event: event, ok: ok}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		m.status = m.controller.Status()
		return m, refreshCmd()
	case eventMsg:
		if !msg.ok {
			return m, tea.Quit
		}
		m.status = m.controller.Status()
		if notice := eventNotice(msg.event); notice != "" {
			m.notice = notice
		}
		return m, waitEventCmd(m.events)
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.progress.Width = max(10, min(msg.Width-8, 60))
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.BreakNow):
		m.controller.TakeBreakNow()
	case key.Matches(msg, m.keys.Skip):
		if m.status.Phase == scheduler.PhaseOnBreak {
			m.controller.EndBreakNow()
		} else {
			m.controller.SkipNextBreak()
		}
	case key.Matches(msg, m.keys.AddOne):
		m.controller.Extend(time.Minute)
	case key.Matches(msg, m.keys.AddFive):
		m.controller.Extend(5 * time.Minute)
	case key.Matches(msg, m.keys.PauseHour):
		m.controller.PauseFor(time.Hour)
	case key.Matches(msg, m.keys.PauseAll):
		m.controller.PauseUntilResume()
	case key.Matches(msg, m.keys.Resume):
		m.controller.Start()
	default:
		return m, nil
	}
	m.status = m.controller.Status()
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("EyeBreak"))
	b.WriteString("\n")

	remaining := scheduler.Seconds(m.status.Remaining)
	switch {
	case m.status.Phase == scheduler.PhaseOnBreak:
		b.WriteString(breakStyle.Render(m.message))
		b.WriteString("\n")
		b.WriteString(countStyle.Render(scheduler.FormatBreakClock(remaining)))
		b.WriteString("\n")
		b.WriteString(m.progress.ViewAs(breakProgress(m.status)))
	case m.status.Paused:
		b.WriteString(pausedStyle.Render("Breaks paused until you resume"))
	case m.status.Phase == scheduler.PhaseCountingDown:
		b.WriteString(messageStyle.Render("Your break begins in "))
		b.WriteString(countStyle.Render(scheduler.FormatRemaining(remaining)))
	default:
		b.WriteString("Starting...")
	}
	b.WriteString("\n")

	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return frameStyle.Render(b.String())
}

func breakProgress(status scheduler.Status) float64 {
	if status.BreakDuration <= 0 {
		return 1
	}
	done := float64(status.BreakDuration-status.Remaining) / float64(status.BreakDuration)
	if done < 0 {
		return 0
	}
	if done > 1 {
		return 1
	}
	return done
}

func eventNotice(event scheduler.Event) string {
	at := event.At.Local().Format("15:04")
	switch event.Type {
	case scheduler.EventBreakStarted:
		return fmt.Sprintf("%s break started (%s)", at, event.Duration)
	case scheduler.EventBreakEnded:
		return at + " break ended"
	case scheduler.EventPaused:
		return at + " paused"
	default:
		return ""
	}
}
