package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nyaysathi/core/internal/adapters/cache"
	"github.com/nyaysathi/core/internal/infrastructure/config"
	"github.com/nyaysathi/core/internal/infrastructure/database"
	"github.com/nyaysathi/core/internal/infrastructure/logger"
	"github.com/nyaysathi/core/internal/infrastructure/redis"
	"github.com/nyaysathi/core/internal/infrastructure/server"
	"github.com/nyaysathi/core/internal/ports"
)

const shutdownTimeout = 15 * time.Second

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the NyaySathi API server",
		Long:  "Start the NyaySathi API server with all configured routes and middleware",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	db, err := database.New(cfg.Database)
	if err != nil {
		appLogger.Fatalw("Failed to connect to database", "error", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		changed, err := db.MigrateUp()
		if err != nil {
			appLogger.Fatalw("Failed to migrate database", "error", err)
		}
		appLogger.Infow("Database schema checked", "driver", db.Driver(), "migrated", changed)
	}

	var translationCache ports.CacheRepository = cache.NewNoopCache()
	if cfg.Redis.Enabled {
		client, err := redis.NewClient(cfg.Redis)
		if err != nil {
			appLogger.Warnw("Redis unavailable, translation cache disabled", "addr", cfg.Redis.GetAddr(), "error", err)
		} else {
			defer client.Close()
			translationCache = cache.NewRedisCache(client)
		}
	}

	srv, err := server.New(cfg, db, translationCache, appLogger)
	if err != nil {
		appLogger.Fatalw("Failed to initialize server", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		appLogger.Infow("Starting NyaySathi API server",
			"port", cfg.Server.Port,
			"environment", cfg.App.Environment,
		)
		if err := srv.Start(fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Errorw("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorw("Graceful shutdown failed", "error", err)
	}
}
