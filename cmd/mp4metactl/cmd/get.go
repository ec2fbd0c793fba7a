package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teocci/go-mp4meta/format/mp4/mp4meta"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <file>",
	Short: "Print the metadata tags of a file",
	Long: `Print the friendly metadata fields of the file.

Example:
  mp4metactl get song.m4a`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tags, err := readTagsFile(args[0])
		if err != nil {
			return err
		}

		printField("title", tags.Title())
		printField("artist", tags.Artist())
		printField("album artist", tags.AlbumArtist())
		printField("album", tags.Album())
		printField("genre", tags.Genre())
		printField("year", tags.Year())
		printField("composer", tags.Composer())
		printField("grouping", tags.Grouping())
		printField("comment", tags.Comment())

		if num, total := tags.TrackNumber(); num > 0 {
			fmt.Printf("%-13s%d/%d\n", "track", num, total)
		}
		if num, total := tags.DiscNumber(); num > 0 {
			fmt.Printf("%-13s%d/%d\n", "disc", num, total)
		}
		if art, ok := tags.Artwork(); ok {
			kind := "jpeg"
			if art.Kind() == mp4meta.PNG {
				kind = "png"
			}
			fmt.Printf("%-13s%s, %d bytes\n", "artwork", kind, len(art.Bytes()))
		}
		return nil
	},
}

func printField(name, value string) {
	if value != "" {
		fmt.Printf("%-13s%s\n", name, value)
	}
}

func init() {
	rootCmd.AddCommand(getCmd)
}
