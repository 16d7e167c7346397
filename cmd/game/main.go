package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/highscore"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/logging"
	"github.com/tomz197/invaders/internal/loop"
	gameconfig "github.com/tomz197/invaders/internal/loop/config"
)

const (
	defaultEnvFile       = ".env"
	defaultHighScoreFile = "highscore.toml"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "invaders: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	envFile := config.GetEnv("INVADERS_ENV_FILE", defaultEnvFile)
	if err := config.LoadEnvFile(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file: %w", err)
	}

	logger, logFile, err := logging.OpenFile(
		config.GetEnv(logging.EnvFile, ""),
		config.GetEnv(logging.EnvLevel, "info"),
	)
	if err != nil {
		return err
	}
	defer logFile.Close()

	settings, err := gameconfig.FromEnv()
	if err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	var store highscore.Store = &highscore.MemoryStore{}
	if path := config.GetEnv("INVADERS_HIGHSCORE_FILE", defaultHighScoreFile); path != "" {
		store = highscore.NewFileStore(path)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend := config.GetEnv("INVADERS_BACKEND", "ansi")
	logger.Info("starting", "backend", backend)

	switch backend {
	case "ansi":
		return runANSI(ctx, settings, store, logger)
	case "tcell":
		return runTcell(ctx, settings, store, logger)
	default:
		return fmt.Errorf("unknown backend %q (want ansi or tcell)", backend)
	}
}

// runANSI plays on the local terminal in raw mode using escape sequences.
func runANSI(ctx context.Context, settings *gameconfig.Settings, store highscore.Store, logger *log.Logger) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	terminal := draw.NewTerminal(os.Stdout, draw.DefaultTermSizeFunc, gameconfig.ViewWidth, gameconfig.ViewHeight)
	if err := terminal.Open(); err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer terminal.Close()

	l := loop.New(loop.Options{
		Feed:     input.NewByteFeed(os.Stdin),
		Surface:  terminal,
		Store:    store,
		Logger:   logger,
		Settings: settings,
	})
	return l.Run(ctx)
}

// runTcell plays through a tcell screen.
func runTcell(ctx context.Context, settings *gameconfig.Settings, store highscore.Store, logger *log.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	l := loop.New(loop.Options{
		Feed:     input.NewTcellFeed(screen),
		Surface:  draw.NewTcellSurface(screen, gameconfig.ViewWidth, gameconfig.ViewHeight),
		Store:    store,
		Logger:   logger,
		Settings: settings,
	})
	return l.Run(ctx)
}
