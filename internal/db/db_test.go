package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDB_MemorySurvivesConnectionChurn(t *testing.T) {
	database, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	ctx := context.Background()

	conn, err := database.Conn(ctx)
	require.NoError(t, err)
	_, err = conn.ExecContext(ctx, `CREATE TABLE t (v INTEGER)`)
	require.NoError(t, err)
	_, err = conn.ExecContext(ctx, `INSERT INTO t (v) VALUES (42)`)
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	// A fresh connection from the pool must still see the data.
	conn2, err := database.Conn(ctx)
	require.NoError(t, err)
	defer conn2.Close()
	var v int
	require.NoError(t, conn2.QueryRowContext(ctx, `SELECT v FROM t`).Scan(&v))
	assert.Equal(t, 42, v)
}

func TestOpenDB_MemoryStoresAreIsolated(t *testing.T) {
	first, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { first.Close() })
	second, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { second.Close() })

	_, err = first.Exec(`CREATE TABLE only_here (v INTEGER)`)
	require.NoError(t, err)

	var count int
	require.NoError(t, second.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE name = 'only_here'`).Scan(&count))
	assert.Zero(t, count)
}

func TestOpenDB_EnforcesForeignKeys(t *testing.T) {
	database, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	_, err = database.Exec(`CREATE TABLE parent (id INTEGER PRIMARY KEY)`)
	require.NoError(t, err)
	_, err = database.Exec(`CREATE TABLE child (pid INTEGER NOT NULL REFERENCES parent(id))`)
	require.NoError(t, err)

	_, err = database.Exec(`INSERT INTO child (pid) VALUES (99)`)
	assert.Error(t, err, "dangling reference should be rejected")
}

func TestOpenDB_FileDB(t *testing.T) {
	path := t.TempDir() + "/store/project.db"
	database, err := OpenDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	_, err = database.Exec(`CREATE TABLE t (v INTEGER)`)
	require.NoError(t, err)
}
