package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/desertthunder/kmx/internal/shared"
	"github.com/urfave/cli/v3"
)

const (
	defaultConfigPath = "config.toml"
	defaultEnvPath    = ".env"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat(defaultConfigPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(defaultConfigPath); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config, using defaults", "error", err)
		}
	}

	env, err := shared.LoadEnv(defaultEnvPath)
	if err != nil {
		logger.Warn("failed to read env file", "error", err)
	}
	config.ApplyEnv(env)

	if err := shared.ApplyLogLevel(logger, config.Log.Level); err != nil {
		logger.Warn("invalid log level, keeping info", "error", err)
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: defaultConfigPath,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "kmx",
		Usage:    "Browse and manage a Kafka cluster through its management API",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = app.Run(ctx, os.Args)
	stop()
	if err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
