package display

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/tessro/ytplay/internal/core"
)

const defaultWidth = 80

// Prompt is printed where the command reader waits for input.
const Prompt = "> "

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Width returns the terminal width of w, or a default when w is not a
// terminal.
func Width(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultWidth
}

// ClearScreen clears w when it is a terminal. It does nothing otherwise,
// so piped output stays readable.
func ClearScreen(w io.Writer) {
	if IsTerminal(w) {
		_, _ = io.WriteString(w, "\033[H\033[2J")
	}
}

// NowPlaying renders the information panel for item.
func NowPlaying(item core.Item, width int, now time.Time) string {
	inner := width - 4
	if inner < 20 {
		inner = 20
	}

	rows := []string{
		row("Title", Title.Render(Truncate(item.Title, inner-8))),
	}
	if item.Author != "" {
		rows = append(rows, row("Channel", Truncate(item.Author, inner-10)))
	}
	rows = append(rows,
		row("Length", FormatDuration(item.Duration)),
		row("Views", FormatViews(item.ViewCount)),
		row("Rating", FormatRating(item.Rating)),
	)
	if item.Published != "" {
		rows = append(rows, row("Published", FormatDate(item.Published, now)))
	}

	return Panel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func row(label, value string) string {
	return Label.Render(label+":") + " " + value
}

// HelpEntry describes one command family for the help screen.
type HelpEntry struct {
	Aliases     []string
	Description string
}

// Help renders the command list followed by the current settings.
func Help(entries []HelpEntry, loop, shuffle bool) string {
	var b strings.Builder

	b.WriteString(Rule.Render(strings.Repeat("=", 38)))
	b.WriteString("\n")
	b.WriteString(Note.Render("NOTE: Most commands have multiple aliases separated by commas, use whichever you prefer."))
	b.WriteString("\n\n")
	b.WriteString(Heading.Render("ytplay commands:"))
	b.WriteString("\n")

	for _, e := range entries {
		b.WriteString("\n")
		b.WriteString(Label.Render(strings.Join(e.Aliases, ", ")))
		b.WriteString("\n")
		b.WriteString(e.Description)
		b.WriteString("\n")
	}

	b.WriteString(Rule.Render(strings.Repeat("=", 38)))
	b.WriteString("\n")
	b.WriteString(Heading.Render("---Settings---"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", Label.Render("Looping:"), Toggle(loop))
	fmt.Fprintf(&b, "%s %s\n", Label.Render("Shuffling:"), Toggle(shuffle))
	b.WriteString(Heading.Render("--------------"))

	return b.String()
}
