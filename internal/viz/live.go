package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/frical/internal/calib"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type trialMsg calib.Trial

type doneMsg struct {
	result    float64
	converged bool
	err       error
}

type liveModel struct {
	target string
	trials []calib.Trial
	result float64
	done   bool
	conv   bool
	err    error
}

func (m liveModel) Init() tea.Cmd { return nil }

func (m liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case trialMsg:
		m.trials = append(m.trials, calib.Trial(msg))
	case doneMsg:
		m.done = true
		m.result = msg.result
		m.conv = msg.converged
		m.err = msg.err
	}
	return m, nil
}

func (m liveModel) View() string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render("calibration — live"))
	sb.WriteString("\n")

	row := func(label, value string) {
		sb.WriteString(labelStyle.Render(label))
		sb.WriteString(valueStyle.Render(value))
		sb.WriteString("\n")
	}

	row("target x", m.target)
	if len(m.trials) > 0 {
		last := m.trials[len(m.trials)-1]
		row("iteration", fmt.Sprintf("%d", last.Iteration))
		row("guess", fmt.Sprintf("%.4f", last.Guess))
		row("error", fmt.Sprintf("%.2f", last.Error))
	}

	if m.done {
		if m.err != nil {
			sb.WriteString(warnStyle.Render(fmt.Sprintf("aborted: %v", m.err)))
		} else if m.conv {
			sb.WriteString(okStyle.Render(fmt.Sprintf("converged: friction %.4f", m.result)))
		} else {
			sb.WriteString(warnStyle.Render(fmt.Sprintf("budget exhausted: best guess %.4f", m.result)))
		}
		sb.WriteString("\n")
	}

	if len(m.trials) > 1 {
		errs := make([]float64, len(m.trials))
		for i, t := range m.trials {
			errs[i] = t.Error
		}
		graph := asciigraph.Plot(errs,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("error"),
		)
		sb.WriteString(graphStyle.Render(graph))
		sb.WriteString("\n")
	}

	sb.WriteString(helpStyle.Render("q: quit"))
	sb.WriteString("\n")
	return sb.String()
}

// RunLive drives one calibration inside a terminal UI, one iteration
// per pace interval. Blocks until the user quits.
func RunLive(engine *calib.Engine, targetX float64, pace time.Duration) error {
	p := tea.NewProgram(liveModel{target: fmt.Sprintf("%.2f", targetX)})

	// The observer runs on the calibration goroutine; the sleep slows
	// the loop down enough to watch.
	engine.AddObserver(func(t calib.Trial) {
		p.Send(trialMsg(t))
		time.Sleep(pace)
	})

	go func() {
		result, err := engine.Calibrate(context.Background(), targetX)
		p.Send(doneMsg{result: result, converged: engine.Converged(), err: err})
	}()

	_, err := p.Run()
	return err
}
