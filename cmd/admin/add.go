package main

import (
	"fmt"
	"os"
	"strings"

	"simple-note/internal/admin"
	"simple-note/pkg/client"

	"github.com/spf13/cobra"
)

var addTitle string

var addCmd = &cobra.Command{
	Use:   "add <content>...",
	Short: "Create a note",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content := strings.Join(args, " ")
		if strings.TrimSpace(content) == "" {
			return fmt.Errorf("content is required")
		}

		in := client.CreateNoteInput{Content: content}
		if cmd.Flags().Changed("title") {
			in.Title = &addTitle
		}

		note, err := api.CreateNote(cmd.Context(), in)
		if err != nil {
			return err
		}
		admin.Success(os.Stdout, fmt.Sprintf("created note #%d", note.Id))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "Note title")
}
