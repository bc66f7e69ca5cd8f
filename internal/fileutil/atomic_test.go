package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.log")

	require.NoError(t, WriteFileAtomic(path, []byte("hand #1"), 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hand #1", string(data))

	// Overwrite replaces the content wholesale.
	require.NoError(t, WriteFileAtomic(path, []byte("hand #2"), 0o644))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hand #2", string(data))

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteFileAtomicBadDir(t *testing.T) {
	err := WriteFileAtomic("/nonexistent/dir/file", []byte("x"), 0o644)
	assert.Error(t, err)
}
