package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/legal-request-service/internal/config"
)

func newTestStore(t *testing.T, maxBytes int64) Store {
	t.Helper()
	store, err := NewLocalStore(config.StorageConfig{
		RootDir:        t.TempDir(),
		MaxUploadBytes: maxBytes,
	})
	require.NoError(t, err)
	return store
}

func TestSaveAndOpen(t *testing.T) {
	store := newTestStore(t, 0)

	key, err := store.Save("contract.pdf", strings.NewReader("blob contents"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, "_contract.pdf"))

	rc, err := store.Open(key)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "blob contents", string(data))
}

func TestFileName(t *testing.T) {
	store := newTestStore(t, 0)

	key, err := store.Save("NDA draft (v2).docx", strings.NewReader("x"))
	require.NoError(t, err)
	// spaces and parens are sanitized, extension survives
	assert.Equal(t, "NDA-draft--v2-.docx", store.FileName(key))
}

func TestOpenMissingKey(t *testing.T) {
	store := newTestStore(t, 0)

	_, err := store.Open("no-such-key_file.pdf")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Open("../escape_attempt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveSizeLimit(t *testing.T) {
	store := newTestStore(t, 8)

	_, err := store.Save("small.txt", strings.NewReader("tiny"))
	require.NoError(t, err)

	_, err = store.Save("big.txt", strings.NewReader("definitely too large"))
	assert.Error(t, err)
}
