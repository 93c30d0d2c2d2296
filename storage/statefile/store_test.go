package statefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/schooladmin/core/session"
)

func TestStore_MissingFile(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "nope", "state.json"))
	st, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, session.State{}, st)
}

func TestStore_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schooladmin", "state.json")
	store := New(path)

	want := session.State{Token: "a.b.c", Theme: session.ThemeLight, ViewAs: "user"}
	require.NoError(t, store.Save(want))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := New(path).Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, store.Save(session.State{Theme: session.ThemeDark}))
	got, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, session.State{Theme: session.ThemeDark}, got, "token cleared")
}

func TestStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	_, err := New(path).Load()
	assert.Error(t, err)
}
