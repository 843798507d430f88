package devenv

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	plain, err := ResolvePath("data/players.db")
	require.NoError(t, err)
	require.Equal(t, "data/players.db", plain)

	resolved, err := ResolvePath("<dev_state>/players.db")
	require.NoError(t, err)
	require.Equal(t, "players.db", filepath.Base(resolved))
	require.Equal(t, ".state", filepath.Base(filepath.Dir(resolved)))
}
