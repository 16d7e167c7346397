package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	wishlogging "github.com/charmbracelet/wish/logging"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/highscore"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/logging"
	"github.com/tomz197/invaders/internal/loop"
	gameconfig "github.com/tomz197/invaders/internal/loop/config"
)

const (
	defaultHost          = "::"
	defaultPort          = "2222"
	defaultHostKeyPath   = "/app/keys/host_key"
	defaultHighScoreFile = "/app/data/highscore.toml"
)

func main() {
	logger := logging.New(os.Stderr, config.GetEnv(logging.EnvLevel, "info"))

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	scorePath := config.GetEnv("INVADERS_HIGHSCORE_FILE", defaultHighScoreFile)
	logger.Info("SSH config", "host", host, "port", port, "host_key", hostKeyPath, "high_score_file", scorePath)

	// One store shared by all sessions; every session plays its own game.
	var store highscore.Store = &highscore.MemoryStore{}
	if scorePath != "" {
		store = highscore.NewFileStore(scorePath)
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gameMiddleware(store, logger),
			activeterm.Middleware(),
			wishlogging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// gameMiddleware runs an independent game for each SSH session.
func gameMiddleware(store highscore.Store, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			sessLogger := logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
			sessLogger.Info("New game session", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

			if err := playSession(sess, pty, winCh, store, sessLogger); err != nil {
				sessLogger.Error("Game error", "err", err)
			}

			sessLogger.Info("Session ended")
			next(sess)
		}
	}
}

func playSession(sess ssh.Session, pty ssh.Pty, winCh <-chan ssh.Window, store highscore.Store, logger *log.Logger) error {
	settings, err := gameconfig.FromEnv()
	if err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	// Create a terminal size tracker that updates on window changes
	sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
	go func() {
		for win := range winCh {
			sizeTracker.update(win.Width, win.Height)
		}
	}()

	terminal := draw.NewTerminal(sess, sizeTracker.getSize, gameconfig.ViewWidth, gameconfig.ViewHeight)
	if err := terminal.Open(); err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer terminal.Close()

	l := loop.New(loop.Options{
		Feed:     input.NewByteFeed(sess),
		Surface:  terminal,
		Store:    store,
		Logger:   logger,
		Settings: settings,
	})
	return l.Run(sess.Context())
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
