package kvstore

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/digitalive/digitalive/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
)

var ctx = context.Background()

var openDB func() *sql.DB

func TestMain(m *testing.M) {
	container, open := test_utils.TestWithDB()
	openDB = open
	code := m.Run()
	_ = testcontainers.TerminateContainer(container)
	os.Exit(code)
}

func setupStore(t *testing.T) *SQLStore {
	t.Helper()
	db := openDB()
	t.Cleanup(func() {
		_, _ = db.Exec(`TRUNCATE kv_blobs`)
		db.Close()
	})
	return NewSQLStore(db)
}

func TestSQLStore(t *testing.T) {
	t.Run("should report a missing key without error", func(t *testing.T) {
		// given
		store := setupStore(t)

		// when
		_, ok, err := store.Get(ctx, "@all_accounts")

		// then
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("should return what was stored", func(t *testing.T) {
		// given
		store := setupStore(t)
		require.NoError(t, store.Set(ctx, "@all_accounts", []byte(`[{"id":"1"}]`)))

		// when
		value, ok, err := store.Get(ctx, "@all_accounts")

		// then
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte(`[{"id":"1"}]`), value)
	})

	t.Run("should overwrite an existing key", func(t *testing.T) {
		// given
		store := setupStore(t)
		require.NoError(t, store.Set(ctx, "@current_balance", []byte("100")))

		// when
		require.NoError(t, store.Set(ctx, "@current_balance", []byte("250.50")))

		// then
		value, ok, err := store.Get(ctx, "@current_balance")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("250.50"), value)
	})

	t.Run("should remove a deleted key", func(t *testing.T) {
		// given
		store := setupStore(t)
		require.NoError(t, store.Set(ctx, "@partners", []byte(`[]`)))

		// when
		require.NoError(t, store.Delete(ctx, "@partners"))

		// then
		_, ok, err := store.Get(ctx, "@partners")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("deleting a missing key should not fail", func(t *testing.T) {
		store := setupStore(t)

		assert.NoError(t, store.Delete(ctx, "@company_bills"))
	})
}
