package repositories

import (
	"context"
	"testing"

	"github.com/jordanhw/honeywatch/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRepository_RecordOneAssignsID(t *testing.T) {
	repo := NewEventRepository(newTestStore(t))
	ctx := context.Background()

	id, err := repo.RecordOne(ctx, models.EventRecord{
		SessionID: "sess-1",
		EventType: "mouse_move",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	events, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestEventRepository_BatchIDsContiguousFromCurrentMax(t *testing.T) {
	repo := NewEventRepository(newTestStore(t))
	ctx := context.Background()

	_, err := repo.RecordOne(ctx, models.EventRecord{SessionID: "sess-1", EventType: "page_view"})
	require.NoError(t, err)

	ids, err := repo.RecordBatch(ctx, []models.EventRecord{
		{SessionID: "sess-1", EventType: "key_press"},
		{SessionID: "sess-1", EventType: "mouse_move"},
		{SessionID: "sess-2", EventType: "devtools_open"},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3, 4}, ids)

	events, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 4)
}

func TestEventRepository_EmptyBatchIsNoop(t *testing.T) {
	repo := NewEventRepository(newTestStore(t))
	ctx := context.Background()

	ids, err := repo.RecordBatch(ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, ids)

	events, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestEventRepository_UserResolutionPreserved(t *testing.T) {
	repo := NewEventRepository(newTestStore(t))
	ctx := context.Background()

	userID := "user-1"
	_, err := repo.RecordOne(ctx, models.EventRecord{
		SessionID: "sess-1",
		UserID:    &userID,
		EventType: "page_view",
	})
	require.NoError(t, err)

	events, err := repo.All(ctx)
	require.NoError(t, err)
	require.NotNil(t, events[0].UserID)
	assert.Equal(t, "user-1", *events[0].UserID)
}
