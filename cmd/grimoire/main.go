package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KirkDiggler/grimoire/internal/config"
	"github.com/KirkDiggler/grimoire/internal/logger"
	"github.com/KirkDiggler/grimoire/internal/repositories/archive"
)

var envFile string

func main() {
	rootCmd := &cobra.Command{
		Use:           "grimoire",
		Short:         "Storyteller's grimoire for Blood on the Clocktower",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to read before the environment")

	rootCmd.AddCommand(newPlayCmd(), newHistoryCmd(), newShowCmd(), newForgetCmd(), newQuotasCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// setup loads configuration and installs the global logger
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, err
	}
	lgr, err := logger.Init(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, lgr, nil
}

// openArchive connects to Redis and wraps it in the archive repository
func openArchive(cfg *config.Config) (archive.Repository, func(), error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	repo, err := archive.NewRedis(&archive.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		redisClient.Close()
		return nil, nil, err
	}

	return repo, func() { redisClient.Close() }, nil
}
