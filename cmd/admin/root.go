package main

import (
	"fmt"
	"os"
	"strconv"

	"simple-note/internal/admin"
	"simple-note/internal/config"
	"simple-note/internal/pkg/logger"
	"simple-note/pkg/client"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	apiURL string

	appCfg *config.Config
	api    *client.Client
)

var rootCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage notes through the notes API",
	Long: `admin opens an interactive panel for creating, editing and deleting notes.
The list, add, edit and rm subcommands do the same without a terminal UI.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		appCfg = config.Load()
		if apiURL == "" {
			apiURL = appCfg.Client.BaseURL
		}
		api = client.NewClient(apiURL, appCfg.Client.Timeout)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// the terminal belongs to Bubble Tea, so logs only go to the file
		log := logger.NewIsolatedLogger(appCfg.App.LogFilePath)
		defer log.Sync()
		log.Info("Admin", "Admin panel started", map[string]interface{}{"api_url": api.URL})

		model := admin.New(api, admin.Options{
			RequestTimeout: appCfg.Client.Timeout,
			ToastDuration:  appCfg.Admin.ToastDuration,
		})
		_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
		return err
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		admin.Failure(os.Stderr, client.Message(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Notes API base URL (default from NOTES_API_URL)")
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid note id %q", arg)
	}
	return id, nil
}
