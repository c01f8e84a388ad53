// Package config loads CLI defaults from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// App holds runtime configuration for the quizforge CLI.
type App struct {
	Name    string `env:"QF_APP_NAME" envDefault:"quizforge"`
	Verbose bool   `env:"QF_VERBOSE" envDefault:"false"`

	// Export defaults.
	WorkDir   string `env:"QF_WORK_DIR" envDefault:"quizforge_pool"`
	Overwrite bool   `env:"QF_OVERWRITE" envDefault:"false"`
	CleanUp   bool   `env:"QF_CLEAN_UP" envDefault:"true"`

	// Pool store.
	DBDriver string `env:"QF_DB_DRIVER" envDefault:"sqlite"`
	DBDSN    string `env:"QF_DB_DSN"`

	// Preview server. Localhost-only by default: the preview is a local
	// authoring aid, not a deployment surface.
	PreviewAddr    string   `env:"QF_PREVIEW_ADDR" envDefault:"127.0.0.1:8600"`
	PreviewOrigins []string `env:"QF_PREVIEW_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

// Load parses environment variables into an App config. A .env file in the
// working directory is applied first when present.
func Load() (*App, error) {
	_ = godotenv.Load()
	cfg := &App{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
