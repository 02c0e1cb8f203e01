package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dartslab/acdat"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	st, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := newTestStore(t)
	built, err := acdat.BuildKeys([]string{"he", "she", "his", "hers"})
	require.NoError(t, err)

	require.NoError(t, SaveAutomaton[string](st, "classic", built))

	state, values, err := Load[string](st, "classic")
	require.NoError(t, err)
	loaded, err := acdat.Load(state, values)
	require.NoError(t, err)

	assert.Equal(t, built.PartialMatch("ushers"), loaded.PartialMatch("ushers"))
	v, ok := loaded.Get("hers")
	assert.True(t, ok)
	assert.Equal(t, "hers", v)
}

func TestLoadMissingName(t *testing.T) {
	st := newTestStore(t)
	_, _, err := Load[string](st, "nope")
	assert.Error(t, err)
}

func TestSaveOverwrites(t *testing.T) {
	st := newTestStore(t)
	first, err := acdat.BuildKeys([]string{"old"})
	require.NoError(t, err)
	require.NoError(t, SaveAutomaton[string](st, "a", first))

	second, err := acdat.BuildKeys([]string{"new", "newer"})
	require.NoError(t, err)
	require.NoError(t, SaveAutomaton[string](st, "a", second))

	state, values, err := Load[string](st, "a")
	require.NoError(t, err)
	loaded, err := acdat.Load(state, values)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Size())
	assert.False(t, loaded.Matches("old words"))
	assert.True(t, loaded.Matches("newest"))
}

func TestNamesAndDelete(t *testing.T) {
	st := newTestStore(t)
	a, err := acdat.BuildKeys([]string{"x"})
	require.NoError(t, err)
	require.NoError(t, SaveAutomaton[string](st, "one", a))
	require.NoError(t, SaveAutomaton[string](st, "two", a))

	names, err := st.Names()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"one", "two"}, names)

	require.NoError(t, st.Delete("one"))
	require.NoError(t, st.Delete("one")) // idempotent

	names, err = st.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"two"}, names)
}

func TestEmptyNameRejected(t *testing.T) {
	st := newTestStore(t)
	a, err := acdat.BuildKeys([]string{"x"})
	require.NoError(t, err)
	assert.Error(t, SaveAutomaton[string](st, "", a))
}
