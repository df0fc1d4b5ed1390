package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/browser"
	"github.com/robalobadob/wordle/apps/go-solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// Config is read from the environment (and .env in development).
type Config struct {
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	Port         string `env:"PORT" envDefault:"5175"`
	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`

	AnswersFile string `env:"WORDS_ANSWERS_FILE"`
	AllowedFile string `env:"WORDS_ALLOWED_FILE"`
	RemoteURL   string `env:"WORDS_REMOTE_URL"`

	WordleURL        string `env:"WORDLE_URL" envDefault:"https://www.nytimes.com/games/wordle/index.html"`
	Headless         bool   `env:"HEADLESS" envDefault:"true"`
	ChromeControlURL string `env:"CHROME_CONTROL_URL"`
	ScreenshotDir    string `env:"SCREENSHOT_DIR" envDefault:"."`

	DailySalt   string `env:"DAILY_SALT"`
	ExcludeUsed bool   `env:"EXCLUDE_USED" envDefault:"false"`
}

// loadConfig parses the environment into a Config.
func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// setupLogging installs a console logger on w at the configured level.
func setupLogging(w io.Writer, level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
}

func (c Config) words() words.Config {
	return words.Config{AnswersFile: c.AnswersFile, AllowedFile: c.AllowedFile, RemoteURL: c.RemoteURL}
}

func (c Config) browser() browser.Config {
	return browser.Config{
		URL:           c.WordleURL,
		Headless:      c.Headless,
		ControlURL:    c.ChromeControlURL,
		ScreenshotDir: c.ScreenshotDir,
	}
}

func (c Config) server() httpserver.Config {
	return httpserver.Config{ClientOrigin: c.ClientOrigin, ExcludeUsed: c.ExcludeUsed, DailySalt: c.DailySalt}
}

var stderr io.Writer = os.Stderr
