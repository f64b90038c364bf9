package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	s := NewFileStore(path)

	// Nothing stored yet.
	u, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, u)

	require.NoError(t, s.Save(&StoredUser{ID: "u1", Username: "ada"}))

	u, err = s.Load()
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "ada", u.Username)
	assert.Equal(t, "u1", u.ID)

	require.NoError(t, s.Clear())
	u, err = s.Load()
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestFileStore_ClearIsIdempotent(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())
}

func TestFileStore_LastWriterWins(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, s.Save(&StoredUser{Username: "first"}))
	require.NoError(t, s.Save(&StoredUser{Username: "second"}))

	u, err := s.Load()
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "second", u.Username)
}

func TestFileStore_CorruptFileMeansLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := NewFileStore(path)
	u, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestMemStore_CopiesOnReadAndWrite(t *testing.T) {
	s := NewMemStore()
	in := &StoredUser{Username: "ada"}
	require.NoError(t, s.Save(in))
	in.Username = "mutated"

	u, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "ada", u.Username)

	u.Username = "mutated again"
	u2, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "ada", u2.Username)
}

func TestStores_RejectNilProjection(t *testing.T) {
	assert.Error(t, NewMemStore().Save(nil))
	assert.Error(t, NewFileStore(filepath.Join(t.TempDir(), "s.json")).Save(nil))
}
