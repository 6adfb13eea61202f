package sqliteutil

import (
	"database/sql"
	"fmt"
	"net/url"
	devenv "osucard-backend/dev/env"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// Config selects either a local sqlite file or a remote libsql database.
type Config struct {
	File      string `json:"file"`
	Url       string `json:"url"`
	AuthToken string `json:"auth_token"`
}

// Enabled reports whether any database was configured.
func (config Config) Enabled() bool {
	return config.File != "" || config.Url != ""
}

func (config Config) OpenDB(schema string) (*sql.DB, error) {
	if config.Url == "" {
		if config.File == "" {
			return nil, fmt.Errorf("neither a file nor a url was specified")
		}
		return OpenDB(schema, config.File)
	}

	values := url.Values{}
	if config.AuthToken != "" {
		values.Add("authToken", config.AuthToken)
	}
	db, err := sql.Open("libsql", config.Url+"?"+values.Encode())
	if err != nil {
		return nil, err
	}
	err = applySchema(db, schema)
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// OpenDB opens a local sqlite database and applies `schema` to it. The path
// may start with <dev_state>.
func OpenDB(schema, path string) (*sql.DB, error) {
	dbpath, err := devenv.ResolvePath(path)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dbpath)
	if err != nil {
		return nil, err
	}
	// see this stackoverflow post for information on why the following
	// lines exist: https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
	db.SetMaxOpenConns(1)
	if dbpath != ":memory:" {
		_, err = db.Exec("pragma journal_mode = wal")
		if err != nil {
			db.Close()
			return nil, err
		}
	}
	_, err = db.Exec("pragma foreign_keys = on")
	if err != nil {
		db.Close()
		return nil, err
	}
	err = applySchema(db, schema)
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func applySchema(db *sql.DB, schema string) error {
	if schema == "" {
		return nil
	}
	_, err := db.Exec(schema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		return err
	}
	return nil
}
