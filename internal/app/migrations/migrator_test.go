package migrations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"010_votes.sql", "001_init.sql", "README.md", "002_index.sql"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "003_dir.sql"), 0o700))

	files, err := SQLFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "001_init.sql"),
		filepath.Join(dir, "002_index.sql"),
		filepath.Join(dir, "010_votes.sql"),
	}, files)
}

func TestSQLFiles_MissingDirectory(t *testing.T) {
	_, err := SQLFiles(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestRepositoryMigrationsAreListed(t *testing.T) {
	files, err := SQLFiles(filepath.Join("..", "..", "..", "migrations"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, "001_init.sql", filepath.Base(files[0]))
}
