package cmd

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// mp4metactl config.toml key mapping.
type fileConfig struct {
	ArtworkDir string `toml:"artwork_dir"`
	LogLevel   string `toml:"log_level"`
}

type ctlConfig struct {
	ArtworkDir string
	LogLevel   string
}

func defaultConfig() ctlConfig {
	return ctlConfig{
		ArtworkDir: ".",
		LogLevel:   "info",
	}
}

// loadConfig reads a TOML config with default overlay: only keys present
// in the file override the defaults.
func loadConfig(path string) (ctlConfig, error) {
	cfg := defaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return ctlConfig{}, fmt.Errorf("load mp4metactl config: %w", err)
	}

	if meta.IsDefined("artwork_dir") {
		cfg.ArtworkDir = strings.TrimSpace(raw.ArtworkDir)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	return cfg, nil
}
