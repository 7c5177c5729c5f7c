package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"twenty48/communication/server"
	"twenty48/config"
	"twenty48/experiments"
	"twenty48/shell"
)

func main() {
	var cfg config.Config
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := setupLogging(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch cfg.Mode {
	case "bench":
		err = runBenchmark(cfg)
	case "shell":
		err = runShell(cfg)
	case "serve":
		err = server.New(cfg.Agents[0]).ListenAndServe(ctx, cfg.Addr)
	}
	if err != nil {
		log.Fatal().Err(err).Str("mode", cfg.Mode).Msg("exiting")
	}
}

func setupLogging(cfg config.Config) error {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	return nil
}

func runBenchmark(cfg config.Config) error {
	result, err := experiments.Run(experiments.Config{
		Name:      cfg.Name,
		Agents:    cfg.Agents,
		NumGames:  cfg.Games,
		Seed:      cfg.Seed,
		MaxMoves:  cfg.MaxMoves,
		OutputDir: cfg.OutputDir,
		Metrics:   cfg.Metrics,
	})
	if err != nil {
		return err
	}
	if result.Dir != "" {
		log.Info().Str("dir", result.Dir).Msg("results written")
	}
	return experiments.Fprint(os.Stdout, result.Summaries)
}

func runShell(cfg config.Config) error {
	sc, err := shell.NewShellController(cfg.Agents[0], cfg.Remote, cfg.Seed)
	if err != nil {
		return err
	}
	sc.Loop()
	return nil
}
