package main

import (
	"fmt"
	"log/slog"
	"os"
	devenv "osucard-backend/dev/env"
	"osucard-backend/lib/skillstore/db"
	"osucard-backend/lib/sqliteutil"
)

const liveTestTemplate = `{
  // a real osu! user, live tests are skipped until this file exists
  username: "peppy",
  server: "osu.ppy.sh",
  playmode: "std",
}
`

func CreateSkillsDB() error {
	path, err := devenv.ResolvePath("<dev_state>/skills.db")
	if err != nil {
		return err
	}

	_, err = os.Stat(path)
	if err == nil {
		fmt.Println("database already created at", path)
		return nil
	}

	fmt.Println("creating database at", path)
	database, err := sqliteutil.OpenDB(db.Schema, path)
	if err != nil {
		return err
	}
	return database.Close()
}

// CreateLiveTestConfig writes a template to live_test.example.json5, it is
// only picked up by tests once renamed to live_test.json5.
func CreateLiveTestConfig() error {
	path, err := devenv.GetStateFilePath("live_test.example.json5")
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(liveTestTemplate), 0666)
}

func PrintConfigLocations() {
	for _, name := range []string{"live_test.json5", "telemetry.json5", "skills.db"} {
		path, err := devenv.GetStateFilePath(name)
		if err != nil {
			slog.Warn("failed to resolve state file", "name", name, "err", err)
			continue
		}
		fmt.Println(name, "=>", path)
	}
	slog.Info("tests against the real osu! and osu!Skills sites are skipped until live_test.json5 exists, copy live_test.example.json5 to start.")
}
