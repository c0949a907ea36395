package storage

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoreForTests(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), log.New(io.Discard, "", 0))
	require.NoError(t, err)
	return s
}

type record struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Tags  []string `json:"tags,omitempty"`
}

func TestStore_RoundTrip(t *testing.T) {
	s := newStoreForTests(t)

	in := []record{
		{Name: "write report", Count: 3, Tags: []string{"work", "urgent"}},
		{Name: "buy milk", Count: 1},
	}
	s.Save(KeyTasks, in)

	var out []record
	assert.True(t, s.Load(KeyTasks, &out))
	assert.Equal(t, in, out)
}

func TestStore_LoadMissingKeyReturnsFalse(t *testing.T) {
	s := newStoreForTests(t)

	var out []record
	assert.False(t, s.Load(KeySchedule, &out))
	assert.Empty(t, out)
}

func TestStore_LoadCorruptRecordReturnsFalse(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir, log.New(io.Discard, "", 0))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, KeySettings+".json"), []byte("{not json"), 0o644))

	var out record
	assert.False(t, s.Load(KeySettings, &out))
}

func TestStore_SaveOverwritesWholeRecord(t *testing.T) {
	s := newStoreForTests(t)

	s.Save(KeyTasks, []record{{Name: "a"}, {Name: "b"}})
	s.Save(KeyTasks, []record{{Name: "only"}})

	var out []record
	require.True(t, s.Load(KeyTasks, &out))
	assert.Len(t, out, 1)
	assert.Equal(t, "only", out[0].Name)
}
