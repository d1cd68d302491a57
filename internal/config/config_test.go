package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultHashMB, c.Engine.Hash)
	assert.Equal(t, DefaultThreads, c.Engine.Threads)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zugzwang.toml")
	body := `
[engine]
hash = 256
threads = 4
own_book = true

[tuning]
aspiration_window = 33
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 256, c.Engine.Hash)
	assert.Equal(t, 4, c.Engine.Threads)
	assert.True(t, c.Engine.OwnBook)
	assert.EqualValues(t, 33, c.Tuning.AspirationWindow)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	assert.Error(t, err)
}
