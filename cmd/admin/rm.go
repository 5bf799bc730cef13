package main

import (
	"fmt"
	"os"

	"simple-note/internal/admin"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a note",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := api.DeleteNote(cmd.Context(), id); err != nil {
			return err
		}
		admin.Success(os.Stdout, fmt.Sprintf("deleted note #%d", id))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
