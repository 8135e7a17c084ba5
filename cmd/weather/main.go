package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/katiamach/weather-forecast-app/internal/api"
	"github.com/katiamach/weather-forecast-app/internal/app"
	"github.com/katiamach/weather-forecast-app/internal/cli"
	"github.com/katiamach/weather-forecast-app/internal/config"
	"github.com/katiamach/weather-forecast-app/internal/logger"
	"github.com/katiamach/weather-forecast-app/internal/weatherapi"
)

func main() {
	serve := flag.Bool("serve", false, "Serve the REST api instead of the interactive prompt")
	envFile := flag.String("env", ".env", "Path to the .env file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		logger.Fatal(fmt.Errorf("failed to load config: %v", err))
	}

	logger.SetLevel(cfg.LogLevel)

	client := weatherapi.New(cfg.APIKey,
		weatherapi.WithBaseURL(cfg.APIURL),
		weatherapi.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *serve {
		err = api.RunAPI(ctx, client, cfg)
		if err != nil {
			logger.Fatal(fmt.Errorf("failed to run weather api: %v", err))
		}
		return
	}

	// the prompt shares the terminal with logs, keep them on stderr
	logger.SetOutput(os.Stderr)

	shell := app.NewShell(client, cli.NewNotifier(os.Stdout))
	err = cli.Run(ctx, os.Stdin, os.Stdout, shell)
	if err != nil {
		logger.Fatal(fmt.Errorf("failed to run weather prompt: %v", err))
	}
}
