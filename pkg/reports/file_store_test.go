package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()

	store, err := NewFileStore(t.TempDir(), 0)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestFileStoreSaveAndGet(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	report := testReport("docs/install.md")
	require.NoError(t, store.Save(ctx, report))

	got, err := store.Get(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, report.Path, got.Path)
	require.Len(t, got.Violations, 1)
	assert.Equal(t, "CL001", got.Violations[0].RuleID)
}

func TestFileStoreGetNotFound(t *testing.T) {
	store := newTestFileStore(t)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreSearchOrderAndFilter(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	a := testReport("docs/a.md")
	a.CreatedAt = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	b := testReport("docs/b.md")
	b.CreatedAt = time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, a))
	require.NoError(t, store.Save(ctx, b))

	got, err := store.Search(ctx, ReportQuery{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, b.ID, got[0].ID, "newest first")

	got, err = store.Search(ctx, ReportQuery{Path: "docs/a.md"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)
}

func TestFileStorePurge(t *testing.T) {
	store := newTestFileStore(t)
	ctx := context.Background()

	old := testReport("docs/old.md")
	old.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	fresh := testReport("docs/fresh.md")

	require.NoError(t, store.Save(ctx, old))
	require.NoError(t, store.Save(ctx, fresh))

	purged, err := store.Purge(ctx, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, err = store.Get(ctx, old.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get(ctx, fresh.ID)
	assert.NoError(t, err)
}

func TestFileStoreRotation(t *testing.T) {
	dir := t.TempDir()
	// 1-byte cap forces a rotation before every save after the first.
	store, err := NewFileStore(dir, 1)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, testReport("docs/a.md")))
	require.NoError(t, store.Save(ctx, testReport("docs/b.md")))

	// After rotation the current file holds only the latest report.
	got, err := store.Search(ctx, ReportQuery{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "docs/b.md", got[0].Path)
}
