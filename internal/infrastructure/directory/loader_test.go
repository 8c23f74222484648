package directory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStreetDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "streets.yaml")
	content := `events:
  burn-2026:
    - id: esplanade
      name: Esplanade
    - id: a
      name: Arcade
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	dir, err := Load(path)
	require.NoError(t, err)

	streets := dir.Streets("burn-2026")
	require.Len(t, streets, 2)
	assert.Equal(t, "esplanade", streets[0].ID)
	assert.Equal(t, "Esplanade", streets[0].Name)

	assert.True(t, dir.ValidStreet("burn-2026", "a"))
	assert.False(t, dir.ValidStreet("burn-2026", "k"))
	assert.False(t, dir.ValidStreet("other-event", "a"))
}

func TestLoadStreetDirectoryMissingFile(t *testing.T) {
	dir, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.False(t, dir.ValidStreet("burn-2026", "a"))
}

func TestLoadStreetDirectoryRejectsMissingID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "streets.yaml")
	content := `events:
  burn-2026:
    - name: Esplanade
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
