package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifications(t *testing.T) {
	InitDB(":memory:")

	t.Run("unknown notification", func(t *testing.T) {
		sent, err := WasNotifiedRecently("user-1", "reason A", 24*time.Hour)
		require.NoError(t, err)
		assert.False(t, sent)
	})

	t.Run("recorded notification is suppressed within the window", func(t *testing.T) {
		require.NoError(t, RecordNotification("user-1", "reason A"))

		sent, err := WasNotifiedRecently("user-1", "reason A", 24*time.Hour)
		require.NoError(t, err)
		assert.True(t, sent)
	})

	t.Run("different reason is not suppressed", func(t *testing.T) {
		sent, err := WasNotifiedRecently("user-1", "reason B", 24*time.Hour)
		require.NoError(t, err)
		assert.False(t, sent)
	})

	t.Run("outside the window it fires again", func(t *testing.T) {
		require.NoError(t, RecordNotification("user-2", "reason A"))

		sent, err := WasNotifiedRecently("user-2", "reason A", 0)
		require.NoError(t, err)
		assert.False(t, sent)
	})

	t.Run("re-recording refreshes the timestamp", func(t *testing.T) {
		require.NoError(t, RecordNotification("user-1", "reason A"))
		require.NoError(t, RecordNotification("user-1", "reason A"))

		sent, err := WasNotifiedRecently("user-1", "reason A", time.Minute)
		require.NoError(t, err)
		assert.True(t, sent)
	})
}

func TestRecordUpload(t *testing.T) {
	InitDB(":memory:")

	require.NoError(t, RecordUpload("kobra_3", "user-1", 200))
	require.NoError(t, RecordUpload("kobra_3", "user-1", 500))

	var count int
	require.NoError(t, DB.QueryRow(`SELECT COUNT(*) FROM uploads WHERE map_name = ?`, "kobra_3").Scan(&count))
	assert.Equal(t, 2, count)
}
