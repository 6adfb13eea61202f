package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	imageBase64 *bool
	imageOutput *string
)

func init() {
	imageBase64 = imageCmd.Flags().Bool("base64", false, "Print a data uri instead of raw bytes.")
	imageOutput = imageCmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout.")
	rootCmd.AddCommand(imageCmd)
}

var imageCmd = &cobra.Command{
	Use:   "image <url> [--base64] [-o <file>]",
	Short: "Downloads an image, urls starting with example_ are read from the fixture directory.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := getClients(cmd.Context())

		var contents []byte
		if *imageBase64 {
			encoded, err := c.osu.GetImageBase64(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			contents = []byte(encoded + "\n")
		} else {
			image, err := c.osu.GetImage(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			contents = image
		}

		if *imageOutput != "" {
			err := os.WriteFile(*imageOutput, contents, 0644)
			if err != nil {
				return fmt.Errorf("write %s: %w", *imageOutput, err)
			}
			return nil
		}
		_, err := cmd.OutOrStdout().Write(contents)
		return err
	},
}
