package iocache

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/docdiff/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCacheStore(t *testing.T) *CacheStoreImpl {
	t.Helper()
	store, err := NewCacheStore(reportTable, schema.SQLiteBackend, filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*CacheStoreImpl)
}

func TestCacheStoreSetGet(t *testing.T) {
	store := newTestCacheStore(t)

	_, _, _, err := store.Get("missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	require.NoError(t, store.Set("k1", []byte(`{"a":1}`), 1, 1000))
	value, version, ts, err := store.Get("k1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), value)
	assert.Equal(t, 1, version)
	assert.Equal(t, int64(1000), ts)

	// Upsert replaces the previous entry
	require.NoError(t, store.Set("k1", []byte(`{"a":2}`), 2, 2000))
	value, version, ts, err = store.Get("k1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":2}`), value)
	assert.Equal(t, 2, version)
	assert.Equal(t, int64(2000), ts)
}

func TestCacheStoreStatus(t *testing.T) {
	store := newTestCacheStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalEntries)

	require.NoError(t, store.Set("k1", []byte("x"), 1, 1000))
	require.NoError(t, store.Set("k2", []byte("y"), 1, 3000))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalEntries)
	assert.Equal(t, time.Unix(3000, 0), status.LastEntryTime)
	assert.Equal(t, time.Unix(1000, 0), status.OldestEntryTime)
	assert.Greater(t, status.TableSizeBytes, int64(0))
}

func TestCacheStoreNoneBackend(t *testing.T) {
	store, err := NewCacheStore(reportTable, schema.NoneBackend, "")
	require.NoError(t, err)

	assert.NoError(t, store.Set("k", []byte("v"), 1, 1))
	_, _, _, err = store.Get("k")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "none", status.Backend)
	assert.False(t, status.Connected)
	assert.NoError(t, store.Close())
}

func TestNewCacheStoreErrors(t *testing.T) {
	_, err := NewCacheStore("bad name", schema.SQLiteBackend, ":memory:")
	assert.Error(t, err)

	_, err = NewCacheStore(reportTable, schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}

func TestGetCreateTableQuery(t *testing.T) {
	assert.Contains(t, getCreateTableQuery(reportTable, schema.MySQLBackend), "LONGBLOB")
	assert.Contains(t, getCreateTableQuery(reportTable, schema.PostgreSQLBackend), "BYTEA")
	assert.Contains(t, getCreateTableQuery(reportTable, schema.SQLiteBackend), "BLOB NOT NULL")
}

func TestGetUpsertQuery(t *testing.T) {
	mysqlStore := &CacheStoreImpl{tableName: reportTable, backend: schema.MySQLBackend}
	assert.Contains(t, mysqlStore.getUpsertQuery(), "ON DUPLICATE KEY UPDATE")

	pgStore := &CacheStoreImpl{tableName: reportTable, backend: schema.PostgreSQLBackend}
	assert.Contains(t, pgStore.getUpsertQuery(), "ON CONFLICT (cache_key)")

	sqliteStore := &CacheStoreImpl{tableName: reportTable, backend: schema.SQLiteBackend}
	assert.Contains(t, sqliteStore.getUpsertQuery(), "INSERT OR REPLACE")
}
