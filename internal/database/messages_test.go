package database

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func createTestMessage(t *testing.T, userID string) string {
	m, err := testStore.CreateMessage(context.Background(), CreateMessageParams{
		UserID:      userID,
		Username:    "MUC12345",
		Title:       "Welcome",
		Content:     "Your first deposit bonus is ready",
		MessageType: "promotion",
	})
	require.NoError(t, err)
	require.False(t, m.IsRead)
	require.Nil(t, m.ReadAt)
	return m.ID
}

func TestMarkMessageRead_OnceOnly(t *testing.T) {
	_, userID := createRandomUser(t)
	id := createTestMessage(t, userID)
	ctx := context.Background()

	first, err := testStore.MarkMessageRead(ctx, id, userID)
	require.NoError(t, err)
	require.True(t, first.IsRead)
	require.NotNil(t, first.ReadAt)

	time.Sleep(10 * time.Millisecond)

	second, err := testStore.MarkMessageRead(ctx, id, "")
	require.NoError(t, err)
	require.True(t, second.IsRead)
	require.True(t, first.ReadAt.Equal(*second.ReadAt), "read_at must not be re-stamped")
}

func TestMarkMessageRead_NotFound(t *testing.T) {
	_, err := testStore.MarkMessageRead(context.Background(), uuid.NewString(), "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMarkMessageRead_OtherUser(t *testing.T) {
	_, owner := createRandomUser(t)
	id := createTestMessage(t, owner)

	_, err := testStore.MarkMessageRead(context.Background(), id, uuid.NewString())
	require.ErrorIs(t, err, ErrNotFound)

	messages, err := testStore.ListMessagesByUser(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	require.False(t, messages[0].IsRead)
}

func TestListMessagesAndUnreadCount(t *testing.T) {
	_, userID := createRandomUser(t)
	ctx := context.Background()

	empty, err := testStore.ListMessagesByUser(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)

	first := createTestMessage(t, userID)
	createTestMessage(t, userID)

	count, err := testStore.CountUnreadMessages(ctx, userID)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	_, err = testStore.MarkMessageRead(ctx, first, userID)
	require.NoError(t, err)

	count, err = testStore.CountUnreadMessages(ctx, userID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	messages, err := testStore.ListMessagesByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
}

func TestCreateBroadcast(t *testing.T) {
	_, a := createRandomUser(t)
	_, b := createRandomUser(t)
	ctx := context.Background()

	sent, err := testStore.CreateBroadcast(ctx, BroadcastParams{
		Title:       "Maintenance",
		Content:     "Cashier closed 2-3am",
		MessageType: "alert",
	})
	require.NoError(t, err)

	users, err := testStore.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, sent, len(users))

	for _, userID := range []string{a, b} {
		messages, err := testStore.ListMessagesByUser(ctx, userID)
		require.NoError(t, err)
		require.NotEmpty(t, messages)
		require.Equal(t, "Maintenance", messages[0].Title)
		require.Equal(t, "alert", messages[0].MessageType)
	}
}
