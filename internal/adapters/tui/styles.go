package tui

import (
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/ui/style"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Orange).
			Foreground(style.White)

	sectionStyle = lipgloss.NewStyle().
			Foreground(style.Orange).
			Bold(true)

	faintStyle = lipgloss.NewStyle().
			Foreground(style.Slate)

	runningStyle = lipgloss.NewStyle().
			Foreground(style.Orange).
			Bold(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(style.Yellow)

	errorStyle = lipgloss.NewStyle().
			Foreground(style.Red)

	companionOnStyle = lipgloss.NewStyle().
				Foreground(style.Green)
)

func classStyle(class domain.Classification) lipgloss.Style {
	switch class {
	case domain.Current:
		return lipgloss.NewStyle().Foreground(style.CurrentColor)
	case domain.Outdated:
		return lipgloss.NewStyle().Foreground(style.OutdatedColor)
	default:
		return lipgloss.NewStyle().Foreground(style.UnknownColor)
	}
}
