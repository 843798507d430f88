// Package sqliteutil opens the player database, either a local sqlite
// file through modernc.org/sqlite or a remote libsql server.
package sqliteutil

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	devenv "playerbase/dev/env"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

type Config struct {
	// a file path (may contain <dev_state>), ":memory:" or a
	// libsql://, http:// or https:// url
	File      string `json:"file"`
	AuthToken string `json:"auth_token"`
}

func isRemote(location string) bool {
	return strings.HasPrefix(location, "libsql://") ||
		strings.HasPrefix(location, "http://") ||
		strings.HasPrefix(location, "https://")
}

func openRemote(location, authToken string) (*sql.DB, error) {
	dsn := location
	if authToken != "" {
		parsed, err := url.Parse(location)
		if err != nil {
			return nil, fmt.Errorf("parse database url: %w", err)
		}
		query := parsed.Query()
		query.Set("authToken", authToken)
		parsed.RawQuery = query.Encode()
		dsn = parsed.String()
	}
	return sql.Open("libsql", dsn)
}

func openLocal(location string) (*sql.DB, error) {
	if location != ":memory:" {
		dbpath, err := devenv.ResolvePath(location)
		if err != nil {
			return nil, err
		}
		_, statErr := os.Stat(dbpath)
		if os.IsNotExist(statErr) {
			f, err := os.Create(dbpath)
			if err != nil {
				return nil, err
			}
			f.Close()
		}
		location = dbpath
	}

	db, err := sql.Open("sqlite", location)
	if err != nil {
		return nil, err
	}
	// sqlite allows a single writer, and every connection to ":memory:"
	// would otherwise get its own empty database.
	db.SetMaxOpenConns(1)
	if location != ":memory:" {
		_, err = db.Exec("PRAGMA journal_mode=WAL")
		if err != nil {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}

// OpenDB opens the configured database and applies schema, which must
// be idempotent (CREATE ... IF NOT EXISTS).
func (config Config) OpenDB(schema string) (*sql.DB, error) {
	if config.File == "" {
		return nil, fmt.Errorf("a database path was not specified")
	}

	var (
		db  *sql.DB
		err error
	)
	if isRemote(config.File) {
		db, err = openRemote(config.File, config.AuthToken)
	} else {
		db, err = openLocal(config.File)
	}
	if err != nil {
		return nil, err
	}

	if schema != "" {
		_, err = db.Exec(schema)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}
	return db, nil
}

// OpenMemory opens an empty in-memory database with schema applied.
func OpenMemory(schema string) (*sql.DB, error) {
	return Config{File: ":memory:"}.OpenDB(schema)
}
