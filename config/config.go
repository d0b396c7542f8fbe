// Package config reads ersave.ini and ERSAVE_* environment overrides.
//
// Precedence, lowest first: defaults, ersave.ini, environment.  The command line's
// --dir is applied by the caller on top of all of these.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/ini.v1"
)

const DefaultFilename = "ersave.ini"

type Config struct {
	// Where save files are looked for; relative file names are taken from here.
	Dir string `ini:"dir" env:"ERSAVE_DIR"`
	// Move the previous save aside as .old before overwriting it.
	Backup bool `ini:"backup" env:"ERSAVE_BACKUP"`
	// How long the watcher waits after the last write before reading a save.
	Settle    time.Duration `ini:"settle" env:"ERSAVE_SETTLE"`
	LogLevel  string        `ini:"log_level" env:"ERSAVE_LOG_LEVEL"`
	LogFormat string        `ini:"log_format" env:"ERSAVE_LOG_FORMAT"`
	Stash     string        `ini:"stash" env:"ERSAVE_STASH"`
}

func Default() Config {
	wd, _ := os.Getwd()
	return Config{
		Dir:       wd,
		Backup:    true,
		Settle:    2 * time.Second,
		LogLevel:  "info",
		LogFormat: "text",
		Stash:     "ersave.tmp",
	}
}

// Load builds the configuration.  A missing ini file is fine; a broken one is not.
func Load(filename string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(filename); err == nil {
		file, err := ini.Load(filename)
		if err != nil {
			return cfg, fmt.Errorf("read %v: %w", filename, err)
		}
		// The default section can be represented as empty string
		if err := file.Section("").MapTo(&cfg); err != nil {
			return cfg, fmt.Errorf("parse %v: %w", filename, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return cfg, err
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Logger builds the diagnostic logger.  User-facing output doesn't go through it.
func (c Config) Logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, fmt.Errorf("log_level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(c.LogFormat) {
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("log_format: unknown format %q", c.LogFormat)
}
