package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Address != "0.0.0.0" || cfg.Server.Port != 8100 {
		t.Errorf("server = %s:%d, want 0.0.0.0:8100", cfg.Server.Address, cfg.Server.Port)
	}
	if cfg.TempDir != DefaultTempDir {
		t.Errorf("TempDir = %q", cfg.TempDir)
	}
	if cfg.FFmpegBinary != "ffmpeg" || cfg.YtDlpBinary != "yt-dlp" {
		t.Errorf("binaries = %q, %q", cfg.FFmpegBinary, cfg.YtDlpBinary)
	}
	if cfg.Transcription.Language != "en" || cfg.Transcription.Timeout != "300s" {
		t.Errorf("transcription = %+v", cfg.Transcription)
	}
	if cfg.Cache.Provider != "memory" || cfg.Cache.Size != 100 {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.UserAgent != DefaultUserAgent {
		t.Errorf("UserAgent = %q", cfg.UserAgent)
	}
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	yaml := "temp_dir: /srv/media\nserver:\n  port: 9000\ntranscription:\n  language: ru\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("APP_SERVER_PORT", "9100")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.TempDir != "/srv/media" {
		t.Errorf("TempDir = %q, want value from file", cfg.TempDir)
	}
	if cfg.Transcription.Language != "ru" {
		t.Errorf("Language = %q, want ru", cfg.Transcription.Language)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("Port = %d, want env override 9100", cfg.Server.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", 5 * time.Second},
		{"90s", 90 * time.Second},
		{"1h30m", 90 * time.Minute},
		{"soon", 5 * time.Second},
	}
	for _, tt := range tests {
		if got := ParseDuration("test.key", tt.value, 5*time.Second); got != tt.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
