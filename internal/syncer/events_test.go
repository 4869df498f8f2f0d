package syncer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"chat-client/internal/models"
	"chat-client/internal/push"
)

func TestHandleEventFriendRequest(t *testing.T) {
	e, gw := newTestEngine(t)
	ctx := context.Background()

	gw.On("FriendRequests", mock.Anything).Return([]models.FriendRequest{
		{Username: "bob", Status: models.StatusPending},
	}, nil)

	require.NoError(t, e.HandleEvent(ctx, push.Event{Type: push.EventFriendRequest}))

	reqs, err := e.FriendRequests(ctx)
	require.NoError(t, err)
	assert.Len(t, reqs, 1)
}

func TestHandleEventFriendAdded(t *testing.T) {
	e, gw := newTestEngine(t)
	ctx := context.Background()

	// A fresh friendship refreshes both the friend list and the
	// conversation list, which now contains the new direct conversation.
	gw.On("Friends", mock.Anything).Return([]models.Friend{{Username: "bob"}}, nil)
	gw.On("Conversations", mock.Anything).Return([]models.Conversation{
		{ID: 1, Type: models.ConversationDirect, Members: []string{"me", "bob"}},
	}, nil)

	require.NoError(t, e.HandleEvent(ctx, push.Event{Type: push.EventFriendAdded, Username: "bob"}))

	friends, err := e.Friends(ctx)
	require.NoError(t, err)
	assert.Len(t, friends, 1)
	convs, err := e.Conversations(ctx)
	require.NoError(t, err)
	assert.Len(t, convs, 1)
}

func TestHandleEventConversationRead(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, e.convs.PutLog(ctx, models.ConversationLog{ID: 3, Messages: []models.Message{
		{ID: 30, Conversation: 3, ReplyTo: models.ReplyToNone},
	}}))

	require.NoError(t, e.HandleEvent(ctx, push.Event{
		Type: push.EventConversationRead, Username: "alice", ConversationID: 3,
	}))

	msgs, err := e.Messages(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, msgs[0].Read)
}

func TestHandleEventNewMessage(t *testing.T) {
	e, gw := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, e.AddLocalConversation(ctx, models.Conversation{ID: 4}))
	gw.On("Messages", mock.Anything, int64(4), int64(-1)).Return([]models.Message{
		{ID: 40, Conversation: 4, ReplyTo: models.ReplyToNone},
	}, 1, nil)

	require.NoError(t, e.HandleEvent(ctx, push.Event{Type: push.EventNewMessage, ConversationID: 4}))

	msgs, err := e.Messages(ctx, 4)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}

func TestHandleEventGroupAdded(t *testing.T) {
	e, gw := newTestEngine(t)
	ctx := context.Background()

	gw.On("Group", mock.Anything, int64(6)).Return(models.Group{ID: 6, Conversation: 60, Master: "alice"}, nil)
	gw.On("Conversation", mock.Anything, int64(60)).Return(models.Conversation{
		ID: 60, Type: models.ConversationGroup, Members: []string{"me", "alice"},
	}, nil)
	gw.On("Messages", mock.Anything, int64(60), int64(-1)).Return([]models.Message{
		{ID: 600, Conversation: 60, ReplyTo: models.ReplyToNone},
	}, 1, nil)

	require.NoError(t, e.HandleEvent(ctx, push.Event{Type: push.EventGroupAdded, GroupID: 6}))

	_, ok, err := e.Group(ctx, 6)
	require.NoError(t, err)
	assert.True(t, ok)
	msgs, err := e.Messages(ctx, 60)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}

func TestHandleEventRemovedFromGroup(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, e.AddLocalGroup(ctx, models.Group{ID: 7, Conversation: 70, Master: "alice"}))
	require.NoError(t, e.AddLocalConversation(ctx, models.Conversation{ID: 70}))

	require.NoError(t, e.HandleEvent(ctx, push.Event{Type: push.EventRemovedFromGroup, GroupID: 7}))

	_, ok, err := e.Group(ctx, 7)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = e.Conversation(ctx, 70)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHandleEventUnknownType(t *testing.T) {
	e, _ := newTestEngine(t)
	assert.Error(t, e.HandleEvent(context.Background(), push.Event{Type: 0}))
}
