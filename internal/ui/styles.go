package ui

import "github.com/charmbracelet/lipgloss"

var (
	PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	NoticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")) // Dim gray
	BannerStyle = lipgloss.NewStyle().Bold(true)
)
