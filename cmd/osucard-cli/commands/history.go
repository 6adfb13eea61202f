package commands

import (
	"fmt"
	"osucard-backend/lib/skillstore"
	"osucard-backend/lib/skillstore/db"
	"osucard-backend/lib/sqliteutil"

	"github.com/spf13/cobra"
)

var historyDb *string

func init() {
	historyDb = historyCmd.Flags().String("db", "skills.db", "The sqlite database snapshots were recorded in.")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history <username> [--db <path/to/skills.db>]",
	Short: "Prints the skill snapshots recorded by `skills --db`.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := sqliteutil.OpenDB(db.Schema, *historyDb)
		if err != nil {
			return err
		}
		defer database.Close()

		snapshots, err := skillstore.NewStore(database).Pull(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(snapshots) == 0 {
			return fmt.Errorf("no snapshots recorded for %s", args[0])
		}
		renderHistory(cmd.OutOrStdout(), snapshots)
		return nil
	},
}
