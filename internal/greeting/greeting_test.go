package greeting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStartsRandomThenCycles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "greeting.json")
	s := NewStore(path)
	s.rnd = func(n int) int { return n - 2 }

	first, err := s.Next(5)
	require.NoError(t, err)
	assert.Equal(t, 3, first)

	second, err := s.Next(5)
	require.NoError(t, err)
	assert.Equal(t, 4, second)

	third, err := s.Next(5)
	require.NoError(t, err)
	assert.Equal(t, 0, third)

	// A fresh store reads the persisted index.
	again, err := NewStore(path).Next(5)
	require.NoError(t, err)
	assert.Equal(t, 1, again)
}

func TestNextShrunkList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "greeting.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"greeting_index": 40}`), 0o600))

	idx, err := NewStore(path).Next(3)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
}

func TestLoadEmptyAndCorrupt(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	st, err := NewStore(empty).Load()
	require.NoError(t, err)
	assert.Nil(t, st.Index)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	_, err = NewStore(bad).Load()
	assert.Error(t, err)
	_, err = NewStore(bad).Next(3)
	assert.Error(t, err)
}

func TestNextRejectsEmptyRotation(t *testing.T) {
	_, err := NewStore(filepath.Join(t.TempDir(), "g.json")).Next(0)
	assert.Error(t, err)
}

func TestSaveLeavesNoTmp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "g.json")
	i := 7
	require.NoError(t, NewStore(path).Save(State{Index: &i}))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestPick(t *testing.T) {
	list := []string{"a", "b", "c"}
	assert.Equal(t, "a", Pick(list, 0))
	assert.Equal(t, "b", Pick(list, 4))
	assert.Equal(t, "c", Pick(list, -1))
	assert.Equal(t, "", Pick(nil, 2))
	assert.Equal(t, "> HELLO", Pick(Default, 0))
}
