// Package cli implements the ttroster command line: a server command and
// a one-shot federation sync command.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/plebrun/ttroster/internal/factory"
	"github.com/plebrun/ttroster/internal/federation"
	"github.com/plebrun/ttroster/internal/notify"
	syncservice "github.com/plebrun/ttroster/internal/services/sync"
	redisstorage "github.com/plebrun/ttroster/internal/storage/redis"
)

// options are the global flags shared by the subcommands, with
// environment-variable fallbacks
type options struct {
	StorageType   string
	RedisURL      string
	FederationURL string
	ClubCode      string
	NotifyChannel string
}

func defaultOptions() options {
	return options{
		StorageType:   envOr("TTROSTER_STORAGE", factory.StorageTypeMemory),
		RedisURL:      envOr("TTROSTER_REDIS_URL", ""),
		FederationURL: envOr("TTROSTER_FEDERATION_URL", ""),
		ClubCode:      envOr("TTROSTER_CLUB", ""),
		NotifyChannel: envOr("TTROSTER_NOTIFY_CHANNEL", ""),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	// Local .env files are optional
	_ = godotenv.Load()

	opts := defaultOptions()

	rootCmd := &cobra.Command{
		Use:   "ttroster",
		Short: "Roster and eligibility engine for table-tennis team competitions",
		Long: `ttroster manages match-day rosters for a table-tennis club: it validates
player-to-team assignments against competition regulations (burn state,
nationality and gender quotas, rating floors), applies default rosters,
and syncs teams, players and matches from the federation.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.StorageType, "storage", opts.StorageType, "Storage backend: memory, redis (env: TTROSTER_STORAGE)")
	rootCmd.PersistentFlags().StringVar(&opts.RedisURL, "redis-url", opts.RedisURL, "Redis URL when --storage=redis (env: TTROSTER_REDIS_URL)")
	rootCmd.PersistentFlags().StringVar(&opts.FederationURL, "federation-url", opts.FederationURL, "Federation gateway base URL (env: TTROSTER_FEDERATION_URL)")
	rootCmd.PersistentFlags().StringVar(&opts.ClubCode, "club", opts.ClubCode, "Federation club code (env: TTROSTER_CLUB)")
	rootCmd.PersistentFlags().StringVar(&opts.NotifyChannel, "notify-channel", opts.NotifyChannel, "Chat channel for sync summaries (env: TTROSTER_NOTIFY_CHANNEL)")

	rootCmd.AddCommand(newServeCmd(&opts))
	rootCmd.AddCommand(newSyncCmd(&opts))

	return rootCmd
}

// buildApp wires the application from the global options
func buildApp(opts *options, logger *slog.Logger) (*factory.App, error) {
	cfg := factory.Config{
		Logger:      logger,
		StorageType: opts.StorageType,
		SyncConfig: syncservice.Config{
			MatchFetchConcurrency: syncservice.DefaultConfig().MatchFetchConcurrency,
			DetailPoolSize:        syncservice.DefaultConfig().DetailPoolSize,
			NotifyChannelID:       opts.NotifyChannel,
		},
		Notifier: notify.NewLogging(logger),
	}

	if opts.StorageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		if opts.RedisURL != "" {
			redisCfg.URL = opts.RedisURL
		}
		cfg.RedisConfig = &redisCfg
	}

	if opts.FederationURL != "" {
		cfg.Federation = federation.NewHTTPClient(opts.FederationURL, opts.ClubCode)
	}

	return factory.New(cfg)
}

// newLogger builds the JSON logger every command uses
func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
