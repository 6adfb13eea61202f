package commands

import (
	"encoding/json"
	"log/slog"
	"osucard-backend/lib/skillstore"
	"osucard-backend/lib/skillstore/db"
	"osucard-backend/lib/sqliteutil"
	"time"

	"github.com/spf13/cobra"
)

var (
	skillsDb   *string
	skillsJson *bool
)

func init() {
	skillsDb = skillsCmd.Flags().String("db", "", "Record the report in this sqlite database.")
	skillsJson = skillsCmd.Flags().Bool("json", false, "Print the report as json instead of a table.")
	rootCmd.AddCommand(skillsCmd)
}

var skillsCmd = &cobra.Command{
	Use:   "skills <username> [--db <path/to/skills.db>] [--json]",
	Short: "Scrapes the osu!Skills report of a user.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := getClients(cmd.Context())

		report, err := c.skills.GetUserSkills(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if *skillsDb != "" {
			database, err := sqliteutil.OpenDB(db.Schema, *skillsDb)
			if err != nil {
				return err
			}
			defer database.Close()

			err = skillstore.NewStore(database).Push(cmd.Context(), args[0], time.Now(), report)
			if err != nil {
				return err
			}
			slog.Info("recorded skill snapshot", "username", args[0], "db", *skillsDb)
		}

		if *skillsJson {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(report)
		}
		renderSkillReport(cmd.OutOrStdout(), report)
		return nil
	},
}
