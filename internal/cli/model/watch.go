// Package model contains Bubble Tea models for interactive commands.
package model

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/grammeal/prefsync/internal/application/port"
	"github.com/grammeal/prefsync/internal/cli/styles"
	"github.com/grammeal/prefsync/internal/infrastructure/surface"
)

// PreferenceMsg carries one engine's updated resolution into the model.
type PreferenceMsg struct {
	Row styles.ResolutionRow
}

// ScenarioDoneMsg is sent when a scripted scenario finishes.
type ScenarioDoneMsg struct {
	Err error
}

// WatchModel renders live preference state while the engines run.
type WatchModel struct {
	spinner  spinner.Model
	theme    *styles.Theme
	renderer *styles.ResolutionRenderer
	surface  *surface.Memory
	errors   func() []port.EngineError

	order   []string
	rows    map[string]styles.ResolutionRow
	updates int

	scenarioDone bool
	scenarioErr  error
	quitting     bool
}

// NewWatch creates the watch model seeded with the initial resolutions.
func NewWatch(
	theme *styles.Theme,
	surf *surface.Memory,
	errs func() []port.EngineError,
	initial []styles.ResolutionRow,
) WatchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.Accent)

	rows := make(map[string]styles.ResolutionRow, len(initial))
	order := make([]string, 0, len(initial))
	for _, row := range initial {
		rows[row.Kind] = row
		order = append(order, row.Kind)
	}

	return WatchModel{
		spinner:  s,
		theme:    theme,
		renderer: styles.NewResolutionRenderer(theme),
		surface:  surf,
		errors:   errs,
		order:    order,
		rows:     rows,
	}
}

// Init implements tea.Model.
func (m WatchModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case PreferenceMsg:
		if _, known := m.rows[msg.Row.Kind]; !known {
			m.order = append(m.order, msg.Row.Kind)
		}
		m.rows[msg.Row.Kind] = msg.Row
		m.updates++
		return m, nil

	case ScenarioDoneMsg:
		m.scenarioDone = true
		m.scenarioErr = msg.Err
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m WatchModel) View() string {
	if m.quitting {
		return ""
	}

	rows := make([]styles.ResolutionRow, 0, len(m.order))
	for _, kind := range m.order {
		rows = append(rows, m.rows[kind])
	}

	status := m.spinner.View() + " watching for preference changes"
	if m.updates > 0 {
		status += fmt.Sprintf(" (%d update(s))", m.updates)
	}
	if m.scenarioDone {
		if m.scenarioErr != nil {
			status = m.theme.ErrorStyle.Render("scenario failed: " + m.scenarioErr.Error())
		} else {
			status = m.theme.SuccessStyle.Render("scenario finished") + "  press q to quit"
		}
	}

	return styles.Join(
		m.renderer.RenderTitle("prefsync watch"),
		m.renderer.RenderRows(rows),
		m.renderer.RenderSurface(m.surface.Attributes(), m.surface.CSSProperties()),
		m.renderer.RenderErrors(m.errors()),
		m.theme.Subtle.Render(status),
	) + "\n"
}
