// Package tui shows progress while long-running external calls (terraform,
// the LLM endpoint) are in flight.
package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

// DoneMsg ends the spinner, carrying the result of the wrapped call.
type DoneMsg struct {
	Err error
}

// Model is the Bubbletea state for the wait spinner.
type Model struct {
	spinner spinner.Model
	message string
	err     error
}

// NewModel constructs a spinner model with the given status message.
func NewModel(message string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle
	return Model{spinner: s, message: message}
}

// Err returns the error delivered by the DoneMsg, if any.
func (m Model) Err() error {
	return m.err
}

// Init starts the spinner animation.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles animation ticks and the completion message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case DoneMsg:
		m.err = msg.Err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the spinner and its status message.
func (m Model) View() string {
	return fmt.Sprintf("%s %s", m.spinner.View(), m.message)
}

// Run executes fn while an animated status message is displayed on stderr.
// When interactive is false fn runs directly with no UI.
func Run(message string, interactive bool, fn func() error) error {
	if !interactive {
		return fn()
	}

	program := tea.NewProgram(NewModel(message), tea.WithOutput(os.Stderr))

	go func() {
		program.Send(DoneMsg{Err: fn()})
	}()

	final, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
