package syncer

import (
	"context"

	"chat-client/internal/models"
	"chat-client/internal/observability"
)

// PullFriends replaces the cached friend list with the server's. Full pull:
// prior local state always loses.
func (e *Engine) PullFriends(ctx context.Context) error {
	friends, err := e.api.Friends(ctx)
	observability.IncPull("friends", err)
	if err != nil {
		return err
	}
	if err := e.friends.ClearFriends(ctx); err != nil {
		return err
	}
	return e.friends.PutFriends(ctx, friends)
}

// PullFriendRequests replaces the cached requests and returns how many are
// still pending a decision.
func (e *Engine) PullFriendRequests(ctx context.Context) (int, error) {
	reqs, err := e.api.FriendRequests(ctx)
	observability.IncPull("friend_requests", err)
	if err != nil {
		return 0, err
	}
	if err := e.friends.ClearFriendRequests(ctx); err != nil {
		return 0, err
	}
	if err := e.friends.PutFriendRequests(ctx, reqs); err != nil {
		return 0, err
	}
	return countPendingFriendRequests(reqs), nil
}

func countPendingFriendRequests(reqs []models.FriendRequest) int {
	n := 0
	for _, r := range reqs {
		if r.Status == models.StatusPending {
			n++
		}
	}
	return n
}

// Friends returns the cached friend list.
func (e *Engine) Friends(ctx context.Context) ([]models.Friend, error) {
	return e.friends.Friends(ctx)
}

// FriendsByTag returns the cached friends carrying tag.
func (e *Engine) FriendsByTag(ctx context.Context, tag string) ([]models.Friend, error) {
	return e.friends.FilterFriends(ctx, func(f models.Friend) bool { return f.Tag == tag })
}

// FriendRequests returns the cached friend requests.
func (e *Engine) FriendRequests(ctx context.Context) ([]models.FriendRequest, error) {
	return e.friends.FriendRequests(ctx)
}
