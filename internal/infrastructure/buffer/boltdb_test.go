package buffer

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "buffer.db"), "offline")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestEnqueueAndGetBatch(t *testing.T) {
	store := openTestStore(t)

	low := Item{Entity: EntityPlant, Operation: OperationUpdate, Priority: 5, Data: json.RawMessage(`{"id":"p1"}`)}
	high := Item{Entity: EntityReading, Operation: OperationCreate, Priority: 1, Data: json.RawMessage(`{"id":"r1"}`)}

	require.NoError(t, store.Enqueue(low))
	require.NoError(t, store.Enqueue(high))

	items, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, EntityReading, items[0].Entity, "lower priority value drains first")
	assert.Equal(t, EntityPlant, items[1].Entity)

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 2, size, "GetBatch does not consume")
}

func TestRemove(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Enqueue(Item{Entity: EntityPlant, Data: json.RawMessage(`{}`)}))

	items, err := store.GetBatch(1)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, store.Remove(items[0]))

	size, err := store.Size()
	require.NoError(t, err)
	assert.Zero(t, size)
}

func TestRequeueBumpsTimestamp(t *testing.T) {
	store := openTestStore(t)

	item := Item{Entity: EntityReading, Timestamp: time.Now().Add(-time.Hour), Data: json.RawMessage(`{}`)}
	require.NoError(t, store.Enqueue(item))

	items, err := store.GetBatch(1)
	require.NoError(t, err)
	require.Len(t, items, 1)

	before := items[0].Timestamp
	items[0].Retries++
	require.NoError(t, store.Remove(items[0]))
	require.NoError(t, store.Requeue(items[0]))

	items, err = store.GetBatch(1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Timestamp.After(before))
	assert.Equal(t, 1, items[0].Retries)
}

func TestCleanup(t *testing.T) {
	store := openTestStore(t)

	stale := Item{Entity: EntityPlant, Timestamp: time.Now().Add(-48 * time.Hour), Data: json.RawMessage(`{}`)}
	fresh := Item{Entity: EntityReading, Data: json.RawMessage(`{}`)}
	require.NoError(t, store.Enqueue(stale))
	require.NoError(t, store.Enqueue(fresh))

	require.NoError(t, store.Cleanup(time.Now().Add(-24*time.Hour)))

	items, err := store.GetBatch(10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, EntityReading, items[0].Entity)
}
