package prefs

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTypedAccess(t *testing.T) {
	p := NewMemory()
	p.PutString("s", "hello")
	p.PutInt("i", 42)
	p.PutBool("b", true)

	assert.Equal(t, "hello", p.GetString("s", "def"))
	assert.Equal(t, 42, p.GetInt("i", 0))
	assert.True(t, p.GetBool("b", false))

	// wrong types and missing keys fall back to the default.
	assert.Equal(t, 7, p.GetInt("s", 7))
	assert.True(t, p.GetBool("s", true))
	assert.Equal(t, "def", p.GetString("missing", "def"))
	require.NoError(t, p.Apply())

	p.Remove("s")
	assert.Equal(t, "def", p.GetString("s", "def"))
	require.NoError(t, p.Apply())
	assert.Equal(t, "def", p.GetString("s", "def"))

	keys := p.Keys()
	sort.Strings(keys)
	assert.Equal(t, []string{"b", "i"}, keys)
}

func TestFilePersistsOnApply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "prefs.json")
	log := zerolog.Nop()

	p, err := OpenFile(path, log)
	require.NoError(t, err)
	p.PutString("Stock1", "AAPL")
	p.PutInt("widgetSize", 3)

	// nothing written before Apply.
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, p.Apply())

	q, err := OpenFile(path, log)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", q.GetString("Stock1", ""))
	assert.Equal(t, 3, q.GetInt("widgetSize", 0))

	q.Remove("Stock1")
	require.NoError(t, q.Apply())
	r, err := OpenFile(path, log)
	require.NoError(t, err)
	assert.Equal(t, "", r.GetString("Stock1", ""))
	assert.Equal(t, 3, r.GetInt("widgetSize", 0))
}

func TestFileRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	_, err := OpenFile(path, zerolog.Nop())
	assert.Error(t, err)
}

func TestSQLitePersistsOnApply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")
	log := zerolog.Nop()

	p, err := OpenSQLite(path, log)
	require.NoError(t, err)
	p.PutString("portfolioJson.txt", `{"AAPL":{"PRICE":"100"}}`)
	p.PutBool("visual_stockboard", true)
	require.NoError(t, p.Apply())
	p.PutString("portfolioJson.txt", `{}`)
	require.NoError(t, p.Apply())
	require.NoError(t, p.Close())

	q, err := OpenSQLite(path, log)
	require.NoError(t, err)
	defer q.Close()
	assert.Equal(t, `{}`, q.GetString("portfolioJson.txt", ""))
	assert.True(t, q.GetBool("visual_stockboard", false))

	q.Remove("visual_stockboard")
	require.NoError(t, q.Apply())
	assert.False(t, q.GetBool("visual_stockboard", false))
}
