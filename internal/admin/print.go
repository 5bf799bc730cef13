package admin

import (
	"fmt"
	"io"

	"simple-note/pkg/client"
)

// PrintNotes writes a plain listing for the non-interactive commands.
func PrintNotes(w io.Writer, notes []client.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No notes"))
		return
	}
	for _, n := range notes {
		item := noteItem{note: n}
		fmt.Fprintf(w, "%s %s\n", accentStyle.Render(fmt.Sprintf("#%d", n.Id)), titleStyle.Render(item.Title()))
		fmt.Fprintf(w, "   %s\n", mutedStyle.Render(n.CreatedAt.Local().Format("2006-01-02 15:04:05")))
		fmt.Fprintf(w, "   %s\n", truncate(n.Content, 72))
	}
}
