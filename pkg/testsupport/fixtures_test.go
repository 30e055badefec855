package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFixture(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "test.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("fixture"), 0o644))

	assert.Equal(t, []byte("fixture"), LoadFixture(t, testFile))
}

func TestLoadFixtureJSON(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "test.json")
	require.NoError(t, os.WriteFile(testFile, []byte(`{"name":"Pfizer","doses":2}`), 0o644))

	var result struct {
		Name  string `json:"name"`
		Doses int    `json:"doses"`
	}
	LoadFixtureJSON(t, testFile, &result)

	assert.Equal(t, "Pfizer", result.Name)
	assert.Equal(t, 2, result.Doses)
}

func TestFixturePath(t *testing.T) {
	assert.Equal(t, filepath.Join("testdata", "employees.json"), FixturePath("employees.json"))
}

func TestMemoryDSN_Unique(t *testing.T) {
	assert.NotEqual(t, MemoryDSN(), MemoryDSN())
	assert.Contains(t, MemoryDSN(), "_foreign_keys=1")
}

func TestOpenTestDB(t *testing.T) {
	conn := OpenTestDB(t)

	var count int
	err := conn.NewRaw("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('employees', 'vaccines', 'doses')").
		Scan(context.Background(), &count)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestOpenTestDB_Isolated(t *testing.T) {
	ctx := context.Background()
	first := OpenTestDB(t)
	second := OpenTestDB(t)

	_, err := first.ExecContext(ctx, "INSERT INTO vaccines (name, created_at, updated_at) VALUES ('Pfizer', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)")
	require.NoError(t, err)

	var count int
	require.NoError(t, second.NewRaw("SELECT COUNT(*) FROM vaccines").Scan(ctx, &count))
	assert.Equal(t, 0, count)
}
