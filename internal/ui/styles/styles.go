// Package styles contains Lip Gloss style definitions and the text helpers
// the operator console renders with.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#DDDDDD"}
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#57606A", Dark: "#AAAAAA"}
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#8C959F", Dark: "#696969"} // hints, verse numbers

	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D0D7DE", Dark: "#555555"}
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#0969DA", Dark: "#54A0FF"}

	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#9A6700", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#FF8787"}

	// Live slide: the one currently on the projector
	LiveColor = lipgloss.AdaptiveColor{Light: "#8250DF", Dark: "#CBA6F7"}

	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(LiveColor)

	TitleStyle      = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)
	ReferenceStyle  = lipgloss.NewStyle().Bold(true).Foreground(BorderFocusColor)
	VerseNumStyle   = lipgloss.NewStyle().Foreground(TextMutedColor)
	SlideStyle      = lipgloss.NewStyle().Foreground(TextSecondaryColor)
	LiveSlideStyle  = lipgloss.NewStyle().Foreground(TextPrimaryColor).Bold(true)
	SuggestionStyle = lipgloss.NewStyle().Foreground(TextMutedColor).Italic(true)
	HintStyle       = lipgloss.NewStyle().Foreground(TextMutedColor)
	ErrorStyle      = lipgloss.NewStyle().Foreground(StatusErrorColor)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().Foreground(TextSecondaryColor).Padding(0, 1)
	VersionBadge   = lipgloss.NewStyle().Bold(true).Padding(0, 1).
			Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}).
			Background(LiveColor)
	ModeBadge = lipgloss.NewStyle().Bold(true).Padding(0, 1).
			Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}).
			Background(StatusSuccessColor)

	OverlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderFocusColor).
			Padding(0, 1)
)
