package main

import (
	_ "embed"
	"errors"
	"html/template"
	"net"
	"net/http"
	"os"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/highscore"
	"github.com/tomz197/invaders/internal/logging"
)

const (
	defaultHost          = "0.0.0.0"
	defaultPort          = "8080"
	defaultHighScoreFile = "/app/data/highscore.toml"
)

//go:embed index.html
var htmlPage string

var pageTemplate = template.Must(template.New("index").Parse(htmlPage))

type pageData struct {
	SSHHost   string
	SSHPort   string
	HighScore int
	HasScore  bool
}

func main() {
	logger := logging.New(os.Stderr, config.GetEnv(logging.EnvLevel, "info"))

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	sshPort := config.GetEnv("SSH_DISPLAY_PORT", "")
	store := highscore.NewFileStore(config.GetEnv("INVADERS_HIGHSCORE_FILE", defaultHighScoreFile))

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		data := pageData{SSHHost: sshHost, SSHPort: sshPort}
		score, err := store.Load()
		switch {
		case err == nil:
			data.HighScore, data.HasScore = score, true
		case !errors.Is(err, highscore.ErrNotFound):
			logger.Warn("load high score", "path", store.Path(), "err", err)
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTemplate.Execute(w, data); err != nil {
			logger.Error("render page", "err", err)
		}
	})

	addr := net.JoinHostPort(host, port)
	logger.Info("Starting web server", "url", "http://"+addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
