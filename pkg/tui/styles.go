package tui

import "github.com/charmbracelet/lipgloss"

var (
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#e8c84d")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7de2ff"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4d5e")).Bold(true)
	placeholderSty = lipgloss.NewStyle().Foreground(lipgloss.Color("#5a5f68")).Italic(true)
	captionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#b07aff")).Italic(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8a8f98"))
	spinnerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#69d98a"))
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4d5e"))
)
