package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat-client/internal/models"
)

func newFriendsStore(t *testing.T) *Friends {
	t.Helper()
	s, err := OpenFriends(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newConversationsStore(t *testing.T) *Conversations {
	t.Helper()
	s, err := OpenConversations(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestFriendsPutGet(t *testing.T) {
	s := newFriendsStore(t)
	ctx := context.Background()

	_, ok, err := s.Friend(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, ok)

	f := models.Friend{Username: "alice", Email: "alice@example.com", Tag: "work"}
	require.NoError(t, s.PutFriend(ctx, f))

	got, ok, err := s.Friend(ctx, "alice")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, f, got)

	// Same key upserts instead of duplicating.
	f.Tag = "school"
	require.NoError(t, s.PutFriend(ctx, f))
	all, err := s.Friends(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "school", all[0].Tag)
}

func TestFriendsBatchAndFilter(t *testing.T) {
	s := newFriendsStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutFriends(ctx, []models.Friend{
		{Username: "alice", Tag: "work"},
		{Username: "bob", Tag: "school"},
		{Username: "carol", Tag: "work"},
	}))

	work, err := s.FilterFriends(ctx, func(f models.Friend) bool { return f.Tag == "work" })
	require.NoError(t, err)
	require.Len(t, work, 2)
	assert.Equal(t, "alice", work[0].Username)
	assert.Equal(t, "carol", work[1].Username)

	require.NoError(t, s.DeleteFriend(ctx, "bob"))
	require.NoError(t, s.DeleteFriend(ctx, "bob")) // deleting a missing row is fine
	all, err := s.Friends(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestFriendRequestsKeyedByCounterpart(t *testing.T) {
	s := newFriendsStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutFriendRequests(ctx, []models.FriendRequest{
		{Username: "bob", Status: models.StatusPending, Role: models.RoleReceiver},
		{Username: "carol", Status: models.StatusAccept, Role: models.RoleSender},
	}))

	// A later request from the same counterpart replaces the tracked one.
	require.NoError(t, s.PutFriendRequest(ctx, models.FriendRequest{
		Username: "bob", Status: models.StatusAccept, Role: models.RoleReceiver,
	}))

	reqs, err := s.FriendRequests(ctx)
	require.NoError(t, err)
	require.Len(t, reqs, 2)

	r, ok, err := s.FriendRequest(ctx, "bob")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.StatusAccept, r.Status)
}

func TestFriendsClear(t *testing.T) {
	s := newFriendsStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutFriend(ctx, models.Friend{Username: "alice"}))
	require.NoError(t, s.PutFriendRequest(ctx, models.FriendRequest{Username: "bob"}))
	require.NoError(t, s.Clear(ctx))

	friends, err := s.Friends(ctx)
	require.NoError(t, err)
	assert.Empty(t, friends)
	reqs, err := s.FriendRequests(ctx)
	require.NoError(t, err)
	assert.Empty(t, reqs)
}

func TestConversationsPutGet(t *testing.T) {
	s := newConversationsStore(t)
	ctx := context.Background()

	conv := models.Conversation{ID: 7, Type: models.ConversationGroup, Members: []string{"alice", "bob"}}
	require.NoError(t, s.PutConversation(ctx, conv))

	got, ok, err := s.Conversation(ctx, 7)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, conv, got)

	_, ok, err = s.Conversation(ctx, 99)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConversationLogRoundTrip(t *testing.T) {
	s := newConversationsStore(t)
	ctx := context.Background()

	log := models.ConversationLog{ID: 3, Messages: []models.Message{
		{ID: 10, Conversation: 3, Sender: "alice", Content: "hi", ReplyTo: models.ReplyToNone},
		{ID: 11, Conversation: 3, Sender: "bob", Content: "hey", ReplyTo: 10},
	}}
	require.NoError(t, s.PutLog(ctx, log))

	got, ok, err := s.Log(ctx, 3)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, log, got)
	assert.EqualValues(t, 11, got.LastMessageID())

	require.NoError(t, s.DeleteLog(ctx, 3))
	_, ok, err = s.Log(ctx, 3)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGroupRequestsCompositeKey(t *testing.T) {
	s := newConversationsStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutGroupRequests(ctx, []models.GroupRequest{
		{Group: 1, Sender: "dave", Status: models.StatusPending},
		{Group: 2, Sender: "dave", Status: models.StatusPending},
		{Group: 1, Sender: "erin", Status: models.StatusAccept},
	}))

	// Re-submitting the same (group, sender) pair replaces, not appends.
	require.NoError(t, s.PutGroupRequests(ctx, []models.GroupRequest{
		{Group: 1, Sender: "dave", Status: models.StatusReject},
	}))

	reqs, err := s.GroupRequests(ctx)
	require.NoError(t, err)
	require.Len(t, reqs, 3)

	pending, err := s.FilterGroupRequests(ctx, func(r models.GroupRequest) bool {
		return r.Status == models.StatusPending
	})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.EqualValues(t, 2, pending[0].Group)
}

func TestConversationsClearAll(t *testing.T) {
	s := newConversationsStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutConversation(ctx, models.Conversation{ID: 1}))
	require.NoError(t, s.PutLog(ctx, models.ConversationLog{ID: 1}))
	require.NoError(t, s.PutGroup(ctx, models.Group{ID: 5, Conversation: 1}))
	require.NoError(t, s.Clear(ctx))

	convs, err := s.Conversations(ctx)
	require.NoError(t, err)
	assert.Empty(t, convs)
	logs, err := s.Logs(ctx)
	require.NoError(t, err)
	assert.Empty(t, logs)
	groups, err := s.Groups(ctx)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversations.db")
	ctx := context.Background()

	s, err := OpenConversations(path)
	require.NoError(t, err)
	require.NoError(t, s.PutConversation(ctx, models.Conversation{ID: 42, Members: []string{"alice"}}))
	require.NoError(t, s.Close())

	s, err = OpenConversations(path)
	require.NoError(t, err)
	defer s.Close()

	got, ok, err := s.Conversation(ctx, 42)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"alice"}, got.Members)
}
