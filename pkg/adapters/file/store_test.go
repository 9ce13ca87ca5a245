package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/numerology/pkg/adapters/file"
	"github.com/aretw0/numerology/pkg/domain"
	"github.com/aretw0/numerology/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	ports.RunSessionStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	sess := domain.NewSession("s1")
	sess.Mode = domain.ModeDetail
	sess.Store(domain.ResultSet{LifePath: 5, Destiny: 8})
	require.NoError(t, file.New(dir).Save(ctx, "s1", sess))

	loaded, err := file.New(dir).Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.ModeDetail, loaded.Mode)
	require.NotNil(t, loaded.Result)
	assert.Equal(t, 8, loaded.Result.Destiny)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

func TestFileStore_ListIgnoresStrayFiles(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	store := file.New(dir)

	require.NoError(t, store.Save(ctx, "b", domain.NewSession("b")))
	require.NoError(t, store.Save(ctx, "a", domain.NewSession("a")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tmp-c-123.json"), nil, 0o644))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestFileStore_MissingDir(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "nope"))

	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = store.Load(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestFileStore_RejectsPathIDs(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	for _, id := range []string{"", "..", "../escape", `a\b`, "a/b"} {
		err := store.Save(ctx, id, domain.NewSession(id))
		assert.ErrorIs(t, err, file.ErrInvalidSessionID, id)
		_, err = store.Load(ctx, id)
		assert.ErrorIs(t, err, file.ErrInvalidSessionID, id)
	}
}

func TestFileStore_DefaultDir(t *testing.T) {
	assert.Equal(t, file.DefaultDir, file.New("").Dir)
}
