package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Laporan Keuangan"`
	}

	Data struct {
		// Dir holds the JSON snapshots. Empty means the per-user config
		// directory, resolved in Load.
		Dir       string `envconfig:"DATA_DIR" default:""`
		ExportDir string `envconfig:"EXPORT_DIR" default:"./exports"`
	}

	Reminder struct {
		Time string `envconfig:"REMINDER_TIME" default:"20:00"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Data.Dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve user config dir: %w", err)
		}
		cfg.Data.Dir = filepath.Join(base, "laporan-keuangan")
	}

	return &cfg, nil
}
