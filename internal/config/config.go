package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	coreconfig "github.com/go-core-fx/config"
)

type Config struct {
	APIBaseURL  string        `koanf:"api_base_url"`
	WebBaseURL  string        `koanf:"web_base_url"`
	SessionFile string        `koanf:"session_file"`
	Timeout     time.Duration `koanf:"timeout"`
	LogFile     string        `koanf:"log_file"`
	Debug       bool          `koanf:"debug"`
}

func New() (Config, error) {
	cfg := Config{
		APIBaseURL:  "http://localhost:8080",
		WebBaseURL:  "http://localhost:5173",
		SessionFile: defaultSessionFile(),
		Timeout:     15 * time.Second,
		LogFile:     "./scanbill.log",
		Debug:       false,
	}

	if err := coreconfig.Load(&cfg); err != nil {
		return Config{}, fmt.Errorf("loading config: %w", err)
	}

	return cfg, nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./session.json"
	}
	return filepath.Join(home, ".scanbill", "session.json")
}
