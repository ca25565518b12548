package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"watchlist/internal/cli"
	"watchlist/internal/providers"
	"watchlist/internal/services"
	"watchlist/internal/session"
	"watchlist/internal/structures"
)

func main() {
	os.Exit(run())
}

func run() int {
	flags := &structures.CliFlags{}
	fs := flag.NewFlagSet("watchlistctl", flag.ContinueOnError)
	fs.StringVar(&flags.ConfigPath, "config", "", "path to the YAML config file")
	fs.BoolVar(&flags.DebugMode, "debug", false, "log at debug level")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return 2
	}

	conf, err := providers.NewConfigProvider(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "watchlistctl: %s\n", err)
		return 1
	}
	level := conf.Logger.Level
	if conf.Debug {
		level = "debug"
	}
	logger := providers.NewConsoleLogger(level)
	defer logger.Close()

	// the terminal client never exports metrics
	conf.Metrics.Enabled = false
	port, cleanup, err := services.NewWatchlistService(conf, logger, providers.NewMetricsProvider(conf))
	if err != nil {
		fmt.Fprintf(os.Stderr, "watchlistctl: %s\n", err)
		return 1
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.NewApp(port, session.NewFileTokenStore(conf.Remote.TokenFile), logger, os.Stdout, os.Stderr)
	if err := app.Run(ctx, fs.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "watchlistctl: %s\n", err)
		return 1
	}
	return 0
}
