package contactform

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "2", Dark: "10"}).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "2", Dark: "10"}).
			Padding(0, 1)

	alertStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"}).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"}).
			Padding(1, 3)

	buttonStyle = lipgloss.NewStyle().Padding(0, 2).
			Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "15"}).
			Background(lipgloss.AdaptiveColor{Light: "250", Dark: "238"})

	activeButtonStyle = buttonStyle.
				Background(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})

	pendingStyle = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})
)
