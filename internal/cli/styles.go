package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/watchfire-io/presence/internal/diagnose"
)

// Adaptive colors shared by all styled output.
var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorOrange = lipgloss.AdaptiveColor{Light: "166", Dark: "208"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
)

// Semantic styles for CLI output.
var (
	styleBrand   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleVersion = lipgloss.NewStyle().Foreground(colorGreen)
	styleLabel   = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	styleError   = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	styleHint    = lipgloss.NewStyle().Foreground(colorDim)
	styleCommand = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	styleUpdate  = lipgloss.NewStyle().Bold(true).Foreground(colorOrange)
)

// Asset kind badge styles.
var (
	badgeBundled = lipgloss.NewStyle().Foreground(colorCyan)
	badgeLocal   = lipgloss.NewStyle().Foreground(colorGreen)
	badgeWeb     = lipgloss.NewStyle().Foreground(colorOrange)
)

// severityStyle picks the style for a diagnosis severity.
func severityStyle(s diagnose.Severity) lipgloss.Style {
	switch s {
	case diagnose.SeverityError:
		return styleError
	case diagnose.SeverityWarning:
		return styleWarning
	case diagnose.SeverityInfo:
		return styleUpdate
	default:
		return styleSuccess
	}
}
