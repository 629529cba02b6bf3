package report

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	section  lipgloss.Style
	meta     lipgloss.Style
	high     lipgloss.Style
	medium   lipgloss.Style
	low      lipgloss.Style
	resource lipgloss.Style
	removed  lipgloss.Style
	added    lipgloss.Style
}

func coloredStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		section:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1),
		meta:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		high:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		medium:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		low:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		resource: lipgloss.NewStyle().Bold(true),
		removed:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		added:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
}

func plainStyles() styles {
	plain := lipgloss.NewStyle()
	return styles{
		title:    plain,
		section:  plain,
		meta:     plain,
		high:     plain,
		medium:   plain,
		low:      plain,
		resource: plain,
		removed:  plain,
		added:    plain,
	}
}

func (s styles) severity(level string) lipgloss.Style {
	switch level {
	case "HIGH":
		return s.high
	case "MEDIUM":
		return s.medium
	default:
		return s.low
	}
}
