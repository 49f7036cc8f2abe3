package display

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Accent    = lipgloss.Color("#F59E0B") // Amber

	Success = lipgloss.Color("#10B981") // Green
	Warning = lipgloss.Color("#F59E0B") // Amber
	Error   = lipgloss.Color("#EF4444") // Red
	Info    = lipgloss.Color("#3B82F6") // Blue

	Border    = lipgloss.Color("#4B5563") // Light gray
	TextMuted = lipgloss.Color("#9CA3AF") // Gray
	TextDim   = lipgloss.Color("#6B7280") // Darker gray

	YouTubeRed = lipgloss.Color("#FF0033")
)

// Text styles
var (
	Title = lipgloss.NewStyle().
		Bold(true)

	Label = lipgloss.NewStyle().
		Foreground(Secondary)

	Heading = lipgloss.NewStyle().
		Bold(true).
		Foreground(Info)

	Note = lipgloss.NewStyle().
		Foreground(Accent)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	Dim = lipgloss.NewStyle().
		Foreground(TextDim)

	Enabled = lipgloss.NewStyle().
		Foreground(Success)

	Disabled = lipgloss.NewStyle().
			Foreground(Error)

	Rule = lipgloss.NewStyle().
		Foreground(YouTubeRed)
)

// Panel is the bordered box around the now playing block.
var Panel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Border).
	Padding(0, 1)

// Toggle renders an on/off state as "Enabled" or "Disabled".
func Toggle(on bool) string {
	if on {
		return Enabled.Render("Enabled")
	}
	return Disabled.Render("Disabled")
}

// ErrorText renders an error line.
func ErrorText(s string) string {
	return lipgloss.NewStyle().Foreground(Error).Render(s)
}

// StatusIcon returns an icon for playback status.
func StatusIcon(playing bool) string {
	if playing {
		return Enabled.Render("▶")
	}
	return Note.Render("⏸")
}
