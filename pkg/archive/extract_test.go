package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainTextExtractVerbatim(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.txt")
	writeFile(t, path, "hello\nworld\n")

	content, err := PlainText{}.Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld\n", content)
}

func TestPlainTextExtractReplacesInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "latin1.txt")
	require.NoError(t, os.WriteFile(path, []byte{'c', 'a', 'f', 0xE9}, 0o644))

	content, err := PlainText{}.Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "caf�", content)
}

func TestPlainTextExtractMissingFile(t *testing.T) {
	_, err := PlainText{}.Extract(filepath.Join(t.TempDir(), "gone.txt"))
	assert.Error(t, err)
}
