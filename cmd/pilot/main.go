package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Mshel/snakepilot/internal/config"
	"github.com/Mshel/snakepilot/internal/game"
	"github.com/Mshel/snakepilot/internal/history"
	"github.com/charmbracelet/log"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (defaults to $"+config.EnvConfigPath+" or snakepilot.yaml)")
	fieldSize := flag.Int("field-size", 0, "field size, overrides the config when positive")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config.ResolvePath(*configPath), *fieldSize, flag.Arg(0), os.Stdin, os.Stdout); err != nil {
		log.Error("Pilot failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, fieldSize int, historyPath string, stdin io.Reader, stdout io.Writer) error {
	cfg, err := config.LoadPilot(configPath)
	if err != nil {
		return err
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("config %s: %w", configPath, err)
	}
	log.SetLevel(level)
	logger := log.Default()

	if fieldSize > 0 {
		cfg.FieldSize = fieldSize
	}

	opts := []game.SessionOption{game.WithLogger(logger)}

	if cfg.Journal.Enabled {
		journal, err := game.NewSQLiteJournal(ctx, cfg.Journal.Path, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := journal.Close(); err != nil {
				logger.Error("Could not close move journal", "error", err)
			}
		}()
		opts = append(opts, game.WithJournal(journal))
		logger.Info("Move journal enabled", "path", cfg.Journal.Path)
	}

	if cfg.FallbackScript != "" {
		fallback, err := game.LoadLuaFallback(cfg.FallbackScript, logger)
		if err != nil {
			return err
		}
		opts = append(opts, game.WithFallback(fallback))
		logger.Info("Lua fallback loaded", "script", cfg.FallbackScript)
	}

	input := stdin
	if historyPath != "" && historyPath != "-" {
		file, err := os.Open(historyPath)
		if err != nil {
			return fmt.Errorf("opening history %s: %w", historyPath, err)
		}
		defer file.Close()
		input = file
	}

	frames, err := history.Parse(input)
	if err != nil {
		return err
	}

	logger.Info("Replaying history", "frames", len(frames), "field_size", cfg.FieldSize)
	session, commands, err := history.Replay(ctx, frames, cfg.FieldSize, opts...)
	for _, command := range commands {
		fmt.Fprintln(stdout, command)
	}
	if errors.Is(err, context.Canceled) {
		logger.Info("Replay interrupted", "session", session.ID(), "tick", session.Tick())
		return nil
	}
	if err != nil {
		return err
	}

	logger.Info("Replay finished", "session", session.ID(), "commands", len(commands))
	return nil
}
