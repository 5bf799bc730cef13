package main

import (
	"fmt"
	"os"

	"simple-note/internal/config"
	"simple-note/internal/model"
	"simple-note/pkg/database"

	"github.com/fatih/color"
)

func main() {
	if err := run(config.Load()); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
	color.Green("✅ Success: Database migration completed.")
}

func run(cfg *config.Config) error {
	color.Cyan("Connecting to %s database...", cfg.Database.Driver)
	db, err := database.NewGormDB(database.GormConfig{
		Driver:   cfg.Database.Driver,
		DSN:      cfg.Database.Connection,
		LogLevel: cfg.Database.LogLevel,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	color.Cyan("Running AutoMigrate for the notes table...")
	if err := model.Migrate(db); err != nil {
		return fmt.Errorf("AutoMigrate failed: %w", err)
	}
	return nil
}
