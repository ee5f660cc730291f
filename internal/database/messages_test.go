package database

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estudio/internal/models"
)

func TestMessages(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	sent := &models.Message{
		ID:          uuid.NewString(),
		SenderID:    "member-1",
		RecipientID: "admin-1",
		Subject:     "Booking question",
		Content:     "Can I extend tomorrow's session?",
		CreatedAt:   time.Now().Add(-time.Minute),
	}
	reply := &models.Message{
		ID:             uuid.NewString(),
		SenderID:       "admin-1",
		RecipientID:    "member-1",
		Content:        "Sure, added an hour.",
		IsAdminMessage: true,
		CreatedAt:      time.Now(),
	}
	require.NoError(t, db.CreateMessage(ctx, sent))
	require.NoError(t, db.CreateMessage(ctx, reply))

	got, err := db.GetMessage(ctx, sent.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Booking question", got.Subject)
	assert.False(t, got.IsAdminMessage)

	// Both directions of the thread, newest first.
	thread, err := db.ListMessagesForUser(ctx, "member-1", 0)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, reply.ID, thread[0].ID)
	assert.Equal(t, sent.ID, thread[1].ID)

	limited, err := db.ListMessagesForUser(ctx, "member-1", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, reply.ID, limited[0].ID)

	// Strangers see nothing.
	none, err := db.ListMessagesForUser(ctx, "outsider", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetMessage_NotFound(t *testing.T) {
	db := setupTestDB(t)

	message, err := db.GetMessage(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, message)
}

func TestUnreadTracking(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	first := &models.Message{ID: uuid.NewString(), SenderID: "admin-1", RecipientID: "member-1", Content: "welcome"}
	second := &models.Message{ID: uuid.NewString(), SenderID: "admin-1", RecipientID: "member-1", Content: "reminder"}
	require.NoError(t, db.CreateMessage(ctx, first))
	require.NoError(t, db.CreateMessage(ctx, second))

	count, err := db.CountUnread(ctx, "member-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, db.MarkMessageRead(ctx, first.ID))

	count, err = db.CountUnread(ctx, "member-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Sender's unread count is untouched.
	count, err = db.CountUnread(ctx, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
