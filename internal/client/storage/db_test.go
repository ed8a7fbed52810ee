package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitDatabase_CreatesFileAndSchema(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "mindmate.db")

	db, err := InitDatabase(ctx, path)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err)

	r := NewSQLiteRepository(db)
	require.NoError(t, r.Set(ctx, "username", "bob"))
	require.NoError(t, db.Close())

	// reopening keeps data and re-running migrations is a no-op
	db, err = InitDatabase(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	v, err := NewSQLiteRepository(db).Get(ctx, "username")
	require.NoError(t, err)
	require.Equal(t, "bob", v)
}

func TestInitDatabase_BadLocation(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := InitDatabase(context.Background(), filepath.Join(blocker, "mindmate.db"))
	require.Error(t, err)
}
