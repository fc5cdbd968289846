// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color (diesel amber).
	PrimaryColor = lipgloss.Color("#F6AD55")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#95E1D3")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	successStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	infoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	subtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)
)

// FormatTitle renders a section title.
func FormatTitle(s string) string { return titleStyle.Render(s) }

// FormatSuccess renders a success message.
func FormatSuccess(s string) string { return successStyle.Render(s) }

// FormatError renders an error message.
func FormatError(s string) string { return errorStyle.Render(s) }

// FormatInfo renders an informational message.
func FormatInfo(s string) string { return infoStyle.Render(s) }

// FormatSubtle renders de-emphasized text.
func FormatSubtle(s string) string { return subtleStyle.Render(s) }
