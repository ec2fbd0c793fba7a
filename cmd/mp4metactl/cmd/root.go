package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/teocci/go-mp4meta/format/mp4/mp4meta"
)

var (
	cfg    ctlConfig
	logger zerolog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mp4metactl",
	Short: "Inspect and edit MP4/M4A metadata atoms",
	Long: `mp4metactl reads and writes the iTunes style metadata atoms of
MP4/QuickTime files: titles, artists, track numbers, cover art.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = defaultConfig()

		path, _ := cmd.Flags().GetString("config")
		explicit := cmd.Flags().Changed("config")
		if !explicit {
			if home, err := os.UserHomeDir(); err == nil {
				path = filepath.Join(home, ".mp4metactl.toml")
			}
		}
		if _, err := os.Stat(path); err == nil {
			loaded, err := loadConfig(path)
			if err != nil {
				return err
			}
			cfg = loaded
		} else if explicit {
			return fmt.Errorf("config file not found: %s", path)
		}

		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
		}
		level, err := zerolog.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
		}

		output := zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}
		logger = zerolog.New(output).With().Timestamp().Str("app", "mp4metactl").Logger().Level(level)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.mp4metactl.toml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: trace, debug, info, warn, error")
}

func readTagsFile(path string) (*mp4meta.Tags, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return mp4meta.ReadTags(bytes.NewReader(b))
}
