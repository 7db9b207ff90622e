package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/desertthunder/songtabs/internal/repositories"
	"github.com/desertthunder/songtabs/internal/services"
	"github.com/desertthunder/songtabs/internal/shared"
	"github.com/urfave/cli/v3"
)

// tabCacheTTL bounds how long a fetched tab is served from the local cache.
const tabCacheTTL = 7 * 24 * time.Hour

func main() {
	logger := shared.NewLogger(nil)

	configPath := "config.toml"
	if p := os.Getenv("SONGTABS_CONFIG"); p != "" {
		configPath = p
	}

	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config, using defaults", "path", configPath, "error", err)
		}
	}

	httpClient := &http.Client{Timeout: config.API.Timeout()}
	tabs := services.NewTabsClient(config.API.BaseURL, httpClient, config.API.RateLimit)
	apiService := services.NewAPIService(config.API.BaseURL, httpClient)

	opts := RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Tabs:       tabs,
		API:        apiService,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	db, err := shared.OpenDatabase(config.Database)
	if err != nil {
		logger.Warn("database unavailable; sessions and caching disabled", "error", err)
	} else {
		defer db.Close()
		opts.Sessions = repositories.NewUserSession(repositories.NewSessionRepository(db))
		opts.Cache = repositories.NewTabCacheRepository(db, tabCacheTTL)
	}

	runner := NewRunner(opts)
	runner.restoreSession()

	app := &cli.Command{
		Name:     "songtabs",
		Usage:    "Browse, transpose and export your guitar tabs",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			return
		}
		if db != nil {
			db.Close()
		}
		logger.Fatalf("application error: %v", err)
	}
}
