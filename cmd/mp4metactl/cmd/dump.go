package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// dumpCmd represents the dump command
var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Print the atom tree of a file",
	Long: `Print every atom of the file, one per line, with its size and a
summary of leaf payloads.

Example:
  mp4metactl dump song.m4a`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tags, err := readTagsFile(args[0])
		if err != nil {
			return err
		}
		tags.DumpAtoms(os.Stdout)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}
