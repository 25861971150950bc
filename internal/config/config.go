package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the runtime configuration of the grimoire command
type Config struct {
	// LogLevel is one of debug, info, warn or error
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis holds finished games
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// ScriptPath points at a script file; empty means Trouble Brewing
	ScriptPath string `env:"SCRIPT_PATH"`

	// Seed fixes role draws and seating; zero seeds from the clock
	Seed int64 `env:"SEED"`

	// MaxGames caps the games held in memory
	MaxGames int `env:"MAX_GAMES" envDefault:"16"`

	// Tone of announcements: neutral or dramatic
	Tone string `env:"TONE" envDefault:"neutral"`
}

// Load reads dotenv files (".env" when none are named) into the
// environment and parses it. Missing files are skipped. Variables already
// set in the environment win over the files.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
