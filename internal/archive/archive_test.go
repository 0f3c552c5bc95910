package archive

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vdavid/chatlens/internal/testutil"
)

func TestArchive_PlainRoundTrip(t *testing.T) {
	a, err := New(t.TempDir(), nil)
	require.NoError(t, err)

	path, err := a.Save("chat.txt", []byte("hello"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "-chat.txt"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(raw))

	data, err := a.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestArchive_SealedRoundTrip(t *testing.T) {
	dir := t.TempDir()
	a, err := New(dir, testutil.GetTestEncryptor(t))
	require.NoError(t, err)

	path, err := a.Save("chat.txt", []byte("Alice lundi 3 mars 2025 10:15\nSalut\n"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, sealedSuffix))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "Salut")

	data, err := a.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Alice lundi 3 mars 2025 10:15\nSalut\n", string(data))

	plain, err := New(dir, nil)
	require.NoError(t, err)
	_, err = plain.Load(path)
	assert.Error(t, err)
}

func TestArchive_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := New(dir, nil)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"chat.txt", "chat.txt"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\me\chat.txt`, "chat.txt"},
		{"Discussion avec Zoé.txt", "Discussion_avec_Zo_.txt"},
		{"..", "export.txt"},
		{"", "export.txt"},
		{".hidden", "hidden"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}
