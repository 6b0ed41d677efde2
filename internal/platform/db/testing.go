package db

import (
	"context"
	"database/sql"
	"testing"

	"github.com/ferdiebergado/gopherkit/env"
	"github.com/ferdiebergado/tokenkit/internal/config"
)

// Setup connects to the test database described by .env.testing and
// config.json at the project root. Rows written through the returned
// transaction are rolled back when the test ends.
func Setup(t *testing.T) (*sql.DB, *sql.Tx) {
	t.Helper()

	const projRoot = "../../"

	if err := env.Load(projRoot + ".env.testing"); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(projRoot + "config.json")
	if err != nil {
		t.Fatal(err)
	}

	conn, err := NewPostgresDB(context.Background(), cfg.DB)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	tx, err := conn.Begin()
	if err != nil {
		t.Fatalf("unable to begin transaction: %v", err)
	}

	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil {
			t.Logf("unable to rollback transaction: %v", err)
		}
	})

	return conn, tx
}
