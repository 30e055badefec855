// Package testsupport holds helpers shared by package tests: JSON fixtures
// under testdata/ and a throwaway in-memory database.
package testsupport

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-vaccination-registry/internal/db"
)

// LoadFixture loads test data from a fixture file.
// The path is relative to the test package directory.
func LoadFixture(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load fixture from %s: %v", path, err)
	}

	return data
}

// LoadFixtureJSON loads JSON test data from a fixture file and unmarshals it.
func LoadFixtureJSON(t *testing.T, path string, dest any) {
	t.Helper()

	data := LoadFixture(t, path)
	if err := json.Unmarshal(data, dest); err != nil {
		t.Fatalf("failed to unmarshal JSON fixture from %s: %v", path, err)
	}
}

// FixturePath constructs a path to a fixture file relative to the testdata directory.
func FixturePath(filename string) string {
	return filepath.Join("testdata", filename)
}

// MemoryDSN returns a SQLite DSN for a private shared-cache in-memory
// database with foreign keys on.
func MemoryDSN() string {
	return fmt.Sprintf("file:test_%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
}

// OpenTestDB opens and migrates a fresh in-memory database that is closed
// when the test ends.
func OpenTestDB(t testing.TB) *bun.DB {
	t.Helper()

	conn, err := db.Open(context.Background(), db.Config{
		Driver: db.DriverSQLite,
		DSN:    MemoryDSN(),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}
