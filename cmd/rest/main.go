package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"simple-note/internal/bootstrap"
	"simple-note/internal/config"
	"simple-note/internal/model"
	"simple-note/internal/pkg/logger"
	"simple-note/internal/server"
	"simple-note/internal/tracer"
	"simple-note/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	// 2. Tracer
	shutdownTracer := tracer.InitTracer(cfg.Tracing, sysLogger)
	defer shutdownTracer(context.Background())

	// 3. Initialize Database
	gormDB, err := database.NewGormDB(database.GormConfig{
		Driver:   cfg.Database.Driver,
		DSN:      cfg.Database.Connection,
		LogLevel: cfg.Database.LogLevel,
	})
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}
	defer database.Close(gormDB)

	if cfg.Database.AutoMigrate {
		if err := model.Migrate(gormDB); err != nil {
			log.Panicf("AutoMigrate failed: %v", err)
		}
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg, sysLogger)
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Start Background Services
	if err := container.Start(ctx); err != nil {
		log.Panicf("Unable to start event consumer: %v", err)
	}

	// 6. Run Server until a signal arrives
	srv := server.New(cfg, container)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			sysLogger.Error("Server", "Server stopped", map[string]interface{}{"error": err})
		}
	case <-ctx.Done():
		sysLogger.Info("Server", "Shutting down", nil)
		if err := srv.Shutdown(10 * time.Second); err != nil {
			sysLogger.Error("Server", "Graceful shutdown failed", map[string]interface{}{"error": err})
		}
	}
}
