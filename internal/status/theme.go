package status

import "github.com/charmbracelet/lipgloss"

// Colors used for status lines.
var (
	colorInfo    = lipgloss.Color("#A78BFA") // violet-400
	colorMuted   = lipgloss.Color("#6B7280") // gray-500
	colorSuccess = lipgloss.Color("#10B981") // emerald-500
	colorWarning = lipgloss.Color("#F59E0B") // amber-500
	colorError   = lipgloss.Color("#EF4444") // red-500
)

type styles struct {
	info    lipgloss.Style
	detail  lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		info:    r.NewStyle().Foreground(colorInfo),
		detail:  r.NewStyle().Foreground(colorMuted),
		success: r.NewStyle().Foreground(colorSuccess),
		warning: r.NewStyle().Foreground(colorWarning).Bold(true),
		err:     r.NewStyle().Foreground(colorError).Bold(true),
	}
}
