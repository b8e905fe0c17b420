package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/josephgoksu/TaskGraph/internal/task"
)

var (
	// Colors
	ColorPrimary   = lipgloss.Color("205") // Pink
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange/Yellow
	ColorText      = lipgloss.Color("252") // White/Gray
	ColorBlue      = lipgloss.Color("75")  // Blue

	// Base Styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)

	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	statusStyles = map[task.TaskStatus]lipgloss.Style{
		task.StatusPending:    lipgloss.NewStyle().Foreground(ColorBlue),
		task.StatusInProgress: lipgloss.NewStyle().Foreground(ColorWarning),
		task.StatusCompleted:  lipgloss.NewStyle().Foreground(ColorSuccess),
		task.StatusBlocked:    lipgloss.NewStyle().Foreground(ColorError),
	}
)

// StatusBadge renders a status in its semantic color.
func StatusBadge(status task.TaskStatus) string {
	if style, ok := statusStyles[status]; ok {
		return style.Render(string(status))
	}
	return string(status)
}
