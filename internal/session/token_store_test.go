package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileTokenStore_MissingFileIsEmpty(t *testing.T) {
	s := NewFileTokenStore(filepath.Join(t.TempDir(), "token"))
	tok, err := s.Token()
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestFileTokenStore_SaveReadClear(t *testing.T) {
	s := NewFileTokenStore(filepath.Join(t.TempDir(), "sub", "token"))

	require.NoError(t, s.Save("abc.def.ghi"))
	tok, err := s.Token()
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	require.NoError(t, s.Clear())
	tok, err = s.Token()
	require.NoError(t, err)
	assert.Empty(t, tok)

	// clearing twice is fine
	assert.NoError(t, s.Clear())
}

func TestFileTokenStore_ReReadsOnEveryCall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	s := NewFileTokenStore(path)

	require.NoError(t, os.WriteFile(path, []byte("first\n"), 0o600))
	tok, _ := s.Token()
	assert.Equal(t, "first", tok)

	require.NoError(t, os.WriteFile(path, []byte("second"), 0o600))
	tok, _ = s.Token()
	assert.Equal(t, "second", tok)
}

func TestMemoryTokenStore(t *testing.T) {
	s := NewMemoryTokenStore("x")
	tok, _ := s.Token()
	assert.Equal(t, "x", tok)

	require.NoError(t, s.Clear())
	tok, _ = s.Token()
	assert.Empty(t, tok)
}
