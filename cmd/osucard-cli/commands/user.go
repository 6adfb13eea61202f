package commands

import (
	"encoding/json"
	"fmt"
	"osucard-backend/lib/apierr"
	"osucard-backend/lib/scrapers/osu"

	"github.com/spf13/cobra"
)

var (
	userServer   *string
	userMode     *string
	userTopPlays *bool
	userSkills   *bool
)

func init() {
	userServer = userCmd.Flags().String("server", osu.DefaultServer, "The server the profile is requested from.")
	userMode = userCmd.Flags().StringP("mode", "m", string(osu.PlaymodeStd), "One of std, taiko, catch or mania.")
	userTopPlays = userCmd.Flags().Bool("top-plays", false, "Accepted for compatibility, first places are always fetched.")
	userSkills = userCmd.Flags().Bool("skills", false, "Accepted for compatibility, use the skills command instead.")
	rootCmd.AddCommand(userCmd)
}

var userCmd = &cobra.Command{
	Use:   "user <username> [--server <host>] [--mode <playmode>]",
	Short: "Prints a profile merged with its grades, best scores, medals and first places as json.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := getClients(cmd.Context())

		profile, err := c.osu.GetUser(cmd.Context(), args[0], osu.UserOptions{
			Server:          *userServer,
			Playmode:        *userMode,
			IncludeTopPlays: *userTopPlays,
			IncludeSkills:   *userSkills,
		})
		if apierr.KindOf(err) == apierr.KindInvalidPlaymode {
			if suggestion, ok := suggestPlaymode(*userMode); ok {
				return fmt.Errorf("%w (did you mean %s?)", err, suggestion)
			}
			return err
		}
		if err != nil {
			return err
		}

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(profile)
	},
}
