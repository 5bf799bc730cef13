package display

import (
	"strings"

	"simple-note/pkg/client"

	"github.com/charmbracelet/lipgloss"
)

const (
	LoadingText = "Loading…"
	NoNotesText = "No notes"
	dateLayout  = "2006-01-02 15:04:05"
)

var (
	dimStyle     = lipgloss.NewStyle().Faint(true)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	contentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dateStyle    = lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("244"))
	noteStyle    = lipgloss.NewStyle().MarginBottom(1)
)

// Render draws one frame. notes is expected to be already capped.
func Render(notes []client.Note, loaded, showTitle bool) string {
	if !loaded {
		return dimStyle.Render(LoadingText)
	}
	if len(notes) == 0 {
		return dimStyle.Render(NoNotesText)
	}

	blocks := make([]string, 0, len(notes))
	for _, note := range notes {
		var lines []string
		if showTitle && note.Title != nil && *note.Title != "" {
			lines = append(lines, titleStyle.Render(*note.Title))
		}
		lines = append(lines, contentStyle.Render(note.Content))
		if !note.CreatedAt.IsZero() {
			lines = append(lines, dateStyle.Render(note.CreatedAt.Local().Format(dateLayout)))
		}
		blocks = append(blocks, noteStyle.Render(strings.Join(lines, "\n")))
	}

	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}
