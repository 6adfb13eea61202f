package testutil

import (
	"database/sql"
	"fmt"
	"osucard-backend/lib/telemetry"
	"strings"
	"testing"

	"github.com/mazen160/go-random"
	_ "modernc.org/sqlite"
)

type ServiceParams struct {
	Name string
	// if unspecified, it will skip setting up a db
	DbSchema string
}

type ServiceResult struct {
	DB *sql.DB
}

// SetupService initializes telemetry for a test and, if a schema is given,
// an in-memory sqlite database with that schema applied.
func SetupService(t testing.TB, params ServiceParams) (ServiceResult, func()) {
	cleanup := telemetry.SetupForTesting(t, fmt.Sprintf("test:%s", params.Name))
	if params.DbSchema == "" {
		return ServiceResult{}, cleanup
	}

	sqlite, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	// every connection to :memory: is a different database
	sqlite.SetMaxOpenConns(1)

	_, err = sqlite.Exec(params.DbSchema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		t.Fatal(err)
	}

	return ServiceResult{DB: sqlite}, func() {
		sqlite.Close()
		cleanup()
	}
}

// RandomUsername returns a username that no fixture or sentinel uses.
func RandomUsername(t testing.TB) string {
	name, err := random.String(12)
	if err != nil {
		t.Fatal(err)
	}
	return "user" + name
}
