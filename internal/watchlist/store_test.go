package watchlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "watchlist.json")
}

func TestLoad_MissingFile(t *testing.T) {
	s := NewStore(tempFile(t))
	assert.Empty(t, s.Symbols())
}

func TestLoad_NonArrayFile(t *testing.T) {
	path := tempFile(t)
	require.NoError(t, os.WriteFile(path, []byte(`{"a":1}`), 0644))

	s := NewStore(path)
	assert.Empty(t, s.Symbols(), "non-array content must yield an empty watchlist")
}

func TestLoad_CorruptFile(t *testing.T) {
	path := tempFile(t)
	require.NoError(t, os.WriteFile(path, []byte(`not json at all`), 0644))

	s := NewStore(path)
	assert.Empty(t, s.Symbols())
}

func TestAdd_DedupCaseInsensitive(t *testing.T) {
	s := NewStore(tempFile(t))

	added, err := s.Add("aapl")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.Add("AAPL")
	require.NoError(t, err)
	assert.False(t, added, "case-insensitive duplicate must not be added")

	assert.Equal(t, []string{"AAPL"}, s.Symbols())
}

func TestAdd_RejectsEmpty(t *testing.T) {
	s := NewStore(tempFile(t))

	_, err := s.Add("   ")
	assert.ErrorIs(t, err, ErrEmptySymbol)
	assert.Empty(t, s.Symbols())
}

func TestAdd_PreservesInsertionOrder(t *testing.T) {
	s := NewStore(tempFile(t))
	for _, sym := range []string{"msft", "aapl", "GOOG"} {
		_, err := s.Add(sym)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"MSFT", "AAPL", "GOOG"}, s.Symbols())
}

func TestRemove_AbsentIsNoop(t *testing.T) {
	s := NewStore(tempFile(t))
	_, err := s.Add("AAPL")
	require.NoError(t, err)

	require.NoError(t, s.Remove("TSLA"))
	assert.Equal(t, []string{"AAPL"}, s.Symbols())
}

func TestRemove_Present(t *testing.T) {
	s := NewStore(tempFile(t))
	for _, sym := range []string{"AAPL", "MSFT", "GOOG"} {
		_, err := s.Add(sym)
		require.NoError(t, err)
	}

	require.NoError(t, s.Remove("msft"))
	assert.Equal(t, []string{"AAPL", "GOOG"}, s.Symbols())
}

func TestClear(t *testing.T) {
	s := NewStore(tempFile(t))
	_, err := s.Add("AAPL")
	require.NoError(t, err)

	require.NoError(t, s.Clear())
	assert.Empty(t, s.Symbols())
}

func TestPersistence_SurvivesReload(t *testing.T) {
	path := tempFile(t)

	s := NewStore(path)
	for _, sym := range []string{"AAPL", "MSFT"} {
		_, err := s.Add(sym)
		require.NoError(t, err)
	}
	require.NoError(t, s.Remove("AAPL"))

	reloaded := NewStore(path)
	assert.Equal(t, []string{"MSFT"}, reloaded.Symbols())
}

func TestSaveFailure_KeepsInMemoryMutation(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, "watchlist.json"))

	// Make the directory read-only so the save fails.
	require.NoError(t, os.Chmod(dir, 0555))
	t.Cleanup(func() { os.Chmod(dir, 0755) })

	added, err := s.Add("AAPL")
	assert.True(t, added, "in-memory add must succeed")
	assert.Error(t, err, "save failure must be reported")
	assert.Equal(t, []string{"AAPL"}, s.Symbols())
}
