package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("#8BC34A")
	colorMuted  = lipgloss.Color("#6B7280")
	colorDanger = lipgloss.Color("#EF4444")
	colorTabBg  = lipgloss.Color("#E5E7EB")
	colorTabFg  = lipgloss.Color("#374151")
	colorActive = lipgloss.Color("#374151")
	colorLight  = lipgloss.Color("#FFFFFF")
)

// Styles never add padding or borders: the tab row is hit-tested by the
// plain width of each segment.
type styles struct {
	title       lipgloss.Style
	button      lipgloss.Style
	tab         lipgloss.Style
	activeTab   lipgloss.Style
	newTab      lipgloss.Style
	stamp       lipgloss.Style
	divider     lipgloss.Style
	placeholder lipgloss.Style
	help        lipgloss.Style
	prompt      lipgloss.Style
	notice      lipgloss.Style
	err         lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:       lipgloss.NewStyle().Bold(true),
		button:      lipgloss.NewStyle().Foreground(colorLight).Background(colorDanger),
		tab:         lipgloss.NewStyle().Foreground(colorTabFg).Background(colorTabBg),
		activeTab:   lipgloss.NewStyle().Foreground(colorLight).Background(colorActive).Bold(true),
		newTab:      lipgloss.NewStyle().Foreground(colorTabFg).Background(colorTabBg),
		stamp:       lipgloss.NewStyle().Foreground(colorMuted),
		divider:     lipgloss.NewStyle().Foreground(colorMuted),
		placeholder: lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
		help:        lipgloss.NewStyle().Foreground(colorMuted),
		prompt:      lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
		notice:      lipgloss.NewStyle().Foreground(colorDanger).Bold(true),
		err:         lipgloss.NewStyle().Foreground(colorDanger),
	}
}
