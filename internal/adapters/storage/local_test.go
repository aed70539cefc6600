package storage_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/fridge-be/internal/adapters/storage"
	"github.com/ammerola/fridge-be/test/helpers"
)

func TestLocalStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := storage.NewLocalStorage(t.TempDir(), helpers.TestLogger())

	key := storage.ReceiptKey("u1", "job-123")
	_, err := store.Upload(ctx, key, strings.NewReader("receipt bytes"), "application/pdf")
	require.NoError(t, err)

	ok, err := store.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)

	data, err := store.Download(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "receipt bytes", string(data))

	require.NoError(t, store.Delete(ctx, key))

	ok, err = store.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalStorage_DeleteMissingIsNoop(t *testing.T) {
	store := storage.NewLocalStorage(t.TempDir(), helpers.TestLogger())
	assert.NoError(t, store.Delete(context.Background(), "receipts/u1/missing.pdf"))
}

func TestReceiptKey(t *testing.T) {
	assert.Equal(t, "receipts/u1/abc.pdf", storage.ReceiptKey("u1", "abc"))
}
