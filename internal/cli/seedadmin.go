package cli

import (
	"context"
	"fmt"
	"log"

	"arcade-score-service/internal/app"
	"arcade-score-service/internal/config"
	redisinfra "arcade-score-service/internal/infra/redis"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewSeedAdminCmd provisions an admin credential out-of-band. The running
// service only ever reads credentials; this is the sole write path.
func NewSeedAdminCmd(configPath *string) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create or replace an admin credential in the configured store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return fmt.Errorf("--username and --password are required")
			}
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return seedAdmin(cmd.Context(), cfg, username, password)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "admin username")
	cmd.Flags().StringVar(&password, "password", "", "admin password (stored as a SHA-256 digest)")
	return cmd
}

func seedAdmin(ctx context.Context, cfg config.Config, username, password string) error {
	hash := app.HashPassword(password)

	switch cfg.Store.Driver {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		if err := redisinfra.NewCredentialStore(client).Seed(ctx, username, hash); err != nil {
			return err
		}
	case "postgres":
		if cfg.Postgres.URL == "" {
			return fmt.Errorf("postgres url not configured")
		}
		db := openBunDB(cfg.Postgres.URL)
		defer db.Close()
		if _, err := db.ExecContext(ctx, `
			INSERT INTO admin_users (username, password_hash) VALUES (?, ?)
			ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash`,
			username, hash,
		); err != nil {
			return err
		}
	default:
		return fmt.Errorf("store driver %q has no durable credential store; use redis or postgres", cfg.Store.Driver)
	}

	log.Printf("seeded admin credential for %s", username)
	return nil
}
