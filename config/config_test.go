package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func Test_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.ini"))
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Backup || cfg.Settle != 2*time.Second || cfg.Stash != "ersave.tmp" || cfg.Dir == "" {
		t.Errorf("defaults %+v", cfg)
	}
}

func Test_IniThenEnv(t *testing.T) {
	filename := filepath.Join(t.TempDir(), DefaultFilename)
	content := "dir = /games/er\nbackup = false\nsettle = 5s\nlog_level = debug\n"
	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ERSAVE_SETTLE", "250ms")
	t.Setenv("ERSAVE_LOG_FORMAT", "json")

	cfg, err := Load(filename)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Dir != "/games/er" || cfg.Backup || cfg.LogLevel != "debug" {
		t.Errorf("ini not applied: %+v", cfg)
	}
	if cfg.Settle != 250*time.Millisecond || cfg.LogFormat != "json" {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.Stash != "ersave.tmp" {
		t.Errorf("unset key lost its default: %q", cfg.Stash)
	}
}

func Test_BadEnv(t *testing.T) {
	t.Setenv("ERSAVE_BACKUP", "sometimes")
	_, err := Load(filepath.Join(t.TempDir(), "missing.ini"))
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env error, got %v", err)
	}
}

func Test_Logger(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "warn"
	cfg.LogFormat = "json"
	var buf bytes.Buffer
	logger, err := cfg.Logger(&buf)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("hidden")
	logger.Warn("shown", "slot", 2)
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), `"slot":2`) {
		t.Errorf("log output %q", buf.String())
	}

	cfg.LogFormat = "xml"
	if _, err := cfg.Logger(&buf); err == nil {
		t.Error("accepted an unknown format")
	}
	cfg.LogFormat = "text"
	cfg.LogLevel = "loud"
	if _, err := cfg.Logger(&buf); err == nil {
		t.Error("accepted an unknown level")
	}
}
