package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"arcade-score-service/internal/app"
	"arcade-score-service/internal/config"
	"arcade-score-service/internal/infra/memory"
	pginfra "arcade-score-service/internal/infra/postgres"
	"arcade-score-service/internal/infra/questionfile"
	redisinfra "arcade-score-service/internal/infra/redis"
	transport "arcade-score-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the score service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var (
		ledger app.ScoreLedger
		creds  app.CredentialStore
	)

	switch cfg.Store.Driver {
	case "postgres":
		if cfg.Postgres.URL == "" {
			return fmt.Errorf("store driver postgres requires postgres.url")
		}
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		ledger = pginfra.NewScoreLedger(pool)
		creds = pginfra.NewCredentialStore(pool)
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		ledger = redisinfra.NewScoreLedger(client)
		creds = redisinfra.NewCredentialStore(client)
	case "", "memory":
		ledger = memory.NewScoreLedger()
		creds = memory.NewCredentialStore(envAdminCredentials())
	default:
		return fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	bank := questionfile.New(cfg.Questions.Path)
	cacheTTL := config.TTLDuration(cfg.Questions.CacheTTL, 5*time.Minute)
	questions := memory.NewQuestionCache(bank, cacheTTL)

	service := app.NewScoreService(ledger, creds, questions)
	handler := transport.NewHandler(service)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      handler.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting score service on :%s (store=%s)", finalPort, storeName(cfg.Store.Driver))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// envAdminCredentials seeds the in-memory credential store for demo runs;
// durable deployments provision admins via the seed-admin command instead.
func envAdminCredentials() map[string]string {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		return nil
	}
	return map[string]string{username: app.HashPassword(password)}
}

func storeName(driver string) string {
	if driver == "" {
		return "memory"
	}
	return driver
}
