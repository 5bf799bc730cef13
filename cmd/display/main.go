package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"simple-note/internal/config"
	"simple-note/internal/display"
	"simple-note/internal/pkg/logger"
	"simple-note/pkg/client"
	"simple-note/pkg/events"

	"github.com/spf13/cobra"
)

var (
	configPath string
	apiURL     string
	interval   time.Duration
	maxNotes   int
	showTitle  bool
	live       bool
	once       bool
)

var rootCmd = &cobra.Command{
	Use:   "display",
	Short: "Read-only note widget that polls the notes API",
	Long: `display renders the most recent notes on the terminal and refreshes them
on a fixed interval. With --live it also refreshes as soon as the API
announces a change.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML file with apiUrl, updateInterval, maxNotes, showTitle")
	rootCmd.Flags().StringVar(&apiURL, "api-url", "", "Notes API base URL")
	rootCmd.Flags().DurationVar(&interval, "interval", 0, "Refresh interval")
	rootCmd.Flags().IntVar(&maxNotes, "max-notes", 0, "Maximum number of notes shown")
	rootCmd.Flags().BoolVar(&showTitle, "show-title", true, "Show note titles")
	rootCmd.Flags().BoolVar(&live, "live", false, "Refresh on note events from the API websocket")
	rootCmd.Flags().BoolVar(&once, "once", false, "Render a single frame and exit")
}

func run(cmd *cobra.Command, args []string) error {
	appCfg := config.Load()

	cfg := display.Config{
		APIURL:         appCfg.Client.BaseURL,
		UpdateInterval: appCfg.Display.UpdateInterval,
		MaxNotes:       appCfg.Display.MaxNotes,
		ShowTitle:      appCfg.Display.ShowTitle,
		Timeout:        appCfg.Client.Timeout,
	}

	if configPath != "" {
		loaded, err := display.LoadFile(configPath, cfg)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// explicit flags win over env and file
	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.APIURL = apiURL
	}
	if flags.Changed("interval") {
		cfg.UpdateInterval = interval
	}
	if flags.Changed("max-notes") {
		cfg.MaxNotes = maxNotes
	}
	if flags.Changed("show-title") {
		cfg.ShowTitle = showTitle
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.NewIsolatedLogger(appCfg.App.LogFilePath)
	defer log.Sync()

	api := client.NewClient(cfg.APIURL, cfg.Timeout)

	if once {
		w := display.NewWidget(cfg, api, os.Stdout, log)
		w.Refresh(context.Background())
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := display.NewWidget(cfg, api, os.Stdout, log, display.WithClearScreen())

	if live {
		wsURL, err := api.WebSocketURL()
		if err != nil {
			return err
		}
		go display.Listen(ctx, wsURL, log, func(events.Event) { w.Trigger() })
	}

	log.Info("Display", "Display started", map[string]interface{}{
		"api_url":  cfg.APIURL,
		"interval": cfg.UpdateInterval.String(),
		"live":     live,
	})
	return w.Run(ctx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
