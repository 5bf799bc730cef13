package main

import (
	"fmt"
	"os"

	"simple-note/internal/admin"
	"simple-note/pkg/client"

	"github.com/spf13/cobra"
)

var (
	editTitle      string
	editClearTitle bool
	editContent    string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update the title and/or content of a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		var in client.UpdateNoteInput
		if flags.Changed("title") {
			in.Title = &editTitle
		}
		if editClearTitle {
			in.Title = nil
			in.ClearTitle = true
		}
		if flags.Changed("content") {
			in.Content = &editContent
		}
		if in.Title == nil && !in.ClearTitle && in.Content == nil {
			return fmt.Errorf("nothing to update: pass --title, --clear-title or --content")
		}

		note, err := api.UpdateNote(cmd.Context(), id, in)
		if err != nil {
			return err
		}
		admin.Success(os.Stdout, fmt.Sprintf("updated note #%d", note.Id))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().BoolVar(&editClearTitle, "clear-title", false, "Remove the title")
	editCmd.Flags().StringVarP(&editContent, "content", "c", "", "New content")
	editCmd.MarkFlagsMutuallyExclusive("title", "clear-title")
}
