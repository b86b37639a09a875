package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"tsfm/client"
	"tsfm/config"
	"tsfm/demo"
	"tsfm/history"
	"tsfm/logging"
)

func main() {
	cfg := loadConfig("config.yaml")

	logger := logging.New(cfg)
	defer logger.Sync()

	opts := []client.Option{
		client.WithBaseURL(cfg.BaseURL),
		client.WithAPIKey(os.Getenv(cfg.APIKeyEnv)),
		client.WithTimeout(cfg.Timeout()),
		client.WithRetry(cfg.Retry.MaxAttempts, cfg.Backoff()),
		client.WithModelCacheTTL(cfg.CacheTTL()),
		client.WithLogger(logger),
	}

	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			logger.Fatal("failed to open prediction history", zap.Error(err))
		}
		defer store.Close()
		opts = append(opts, client.WithHistory(store))
	}

	c, err := client.New(opts...)
	if err != nil {
		logger.Fatal("failed to create client", zap.Error(err))
	}
	client.SetDefault(c)

	fmt.Printf("Make sure the TSFM server is running on %s\n\n", cfg.BaseURL)

	failures := demo.Run(context.Background(), os.Stdout, c)
	if failures > 0 {
		logger.Warn("some examples failed", zap.Int("failures", failures))
		os.Exit(1)
	}
}

func loadConfig(path string) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config.Default()
		}
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}
