package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PutOpenDelete(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	key := Key("owner-1", "petição inicial.pdf")
	assert.True(t, strings.HasPrefix(key, "owner-1/"))
	assert.True(t, strings.HasSuffix(key, "-petição_inicial.pdf"))

	n, err := store.Put(ctx, key, strings.NewReader("%PDF-1.4 body"))
	require.NoError(t, err)
	assert.Equal(t, int64(13), n)

	f, size, err := store.Open(key)
	require.NoError(t, err)
	body, err := io.ReadAll(f)
	f.Close()
	require.NoError(t, err)
	assert.Equal(t, int64(13), size)
	assert.Equal(t, "%PDF-1.4 body", string(body))

	require.NoError(t, store.Delete(ctx, key))
	_, _, err = store.Open(key)
	assert.ErrorIs(t, err, ErrObjectNotFound)

	// Deleting twice is fine.
	assert.NoError(t, store.Delete(ctx, key))
}

func TestStore_RejectsTraversal(t *testing.T) {
	root := t.TempDir()
	store, err := New(filepath.Join(root, "blobs"))
	require.NoError(t, err)

	for _, key := range []string{"../escape.txt", "a/../../escape.txt", "/etc/passwd", "", "."} {
		_, err := store.Put(context.Background(), key, strings.NewReader("x"))
		assert.Error(t, err, key)
	}

	_, err = os.Stat(filepath.Join(root, "escape.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestStore_PutLeavesNothingOnCancel(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	key := Key("owner-1", "a.txt")
	_, err = store.Put(ctx, key, strings.NewReader("data"))
	require.Error(t, err)

	entries, err := os.ReadDir(filepath.Join(store.Root(), "owner-1"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"contrato.pdf":        "contrato.pdf",
		"../../etc/passwd":    "passwd",
		`C:\docs\laudo.docx`:  "laudo.docx",
		"nome com espaço.txt": "nome_com_espaço.txt",
		"..":                  "arquivo",
		`a"b.pdf`:             "a_b.pdf",
	}
	for in, want := range tests {
		assert.Equal(t, want, SanitizeFilename(in), in)
	}
}
