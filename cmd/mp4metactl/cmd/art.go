package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teocci/go-mp4meta/format/mp4/mp4meta"
)

// artCmd represents the art command
var artCmd = &cobra.Command{
	Use:   "art <file>",
	Short: "Extract the cover art of a file",
	Long: `Extract the embedded cover art and write it next to the output
directory as <name>.jpg or <name>.png.

Example:
  mp4metactl art song.m4a -o covers/`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tags, err := readTagsFile(args[0])
		if err != nil {
			return err
		}

		art, ok := tags.Artwork()
		if !ok {
			return fmt.Errorf("no artwork in %s", args[0])
		}

		dir := cfg.ArtworkDir
		if cmd.Flags().Changed("output-dir") {
			dir, _ = cmd.Flags().GetString("output-dir")
		}

		ext := ".jpg"
		if art.Kind() == mp4meta.PNG {
			ext = ".png"
		}
		base := filepath.Base(args[0])
		name := strings.TrimSuffix(base, filepath.Ext(base)) + ext
		out := filepath.Join(dir, name)

		if err := os.WriteFile(out, art.Bytes(), 0644); err != nil {
			return err
		}

		logger.Info().Str("file", out).Int("size", len(art.Bytes())).Msg("artwork written")
		return nil
	},
}

func init() {
	artCmd.Flags().StringP("output-dir", "o", "", "Output directory (default from config, else .)")
	rootCmd.AddCommand(artCmd)
}
