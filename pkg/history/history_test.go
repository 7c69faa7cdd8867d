package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nareshroyalc/Docify/pkg/worklog"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreRecordAndList(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Record(Record{
		Timestamp:  "2024-01-01T10:00:00Z",
		Title:      "first",
		Priority:   worklog.PriorityLow,
		DocID:      "doc1",
		Provider:   "gemini",
		Confidence: 0.9,
	}))
	require.NoError(t, store.Record(Record{
		Timestamp: "2024-01-02T10:00:00Z",
		Title:     "second",
		Priority:  worklog.PriorityHigh,
		DocID:     "doc1",
		Provider:  "ollama",
	}))

	records, err := store.List(0)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest first.
	assert.Equal(t, "second", records[0].Title)
	assert.Equal(t, "first", records[1].Title)
	assert.Equal(t, worklog.PriorityLow, records[1].Priority)
	assert.InDelta(t, 0.9, records[1].Confidence, 1e-9)
	assert.NotEmpty(t, records[0].ID, "missing IDs are filled in")
}

func TestStoreListLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record(Record{
			Timestamp: time.Date(2024, 1, i+1, 0, 0, 0, 0, time.UTC).Format(time.RFC3339),
			Title:     "entry",
		}))
	}

	records, err := store.List(3)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestStoreEmptyList(t *testing.T) {
	store := openTestStore(t)

	records, err := store.List(10)
	require.NoError(t, err)
	assert.Empty(t, records)
}
