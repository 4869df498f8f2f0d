package gateway

import (
	"context"
	"net/url"

	"chat-client/internal/models"
)

// Friends lists the user's friends.
func (c *Client) Friends(ctx context.Context) ([]models.Friend, error) {
	var out struct {
		envelope
		Friends []models.Friend `json:"friends"`
	}
	if err := c.get(ctx, "/get_friend_list", nil, &out); err != nil {
		return nil, err
	}
	return out.Friends, nil
}

// FriendsByTag lists the user's friends carrying the given tag.
func (c *Client) FriendsByTag(ctx context.Context, tag string) ([]models.Friend, error) {
	var out struct {
		envelope
		Friends []models.Friend `json:"friends"`
	}
	if err := c.get(ctx, "/get_friend_list_by_tag/"+url.PathEscape(tag), nil, &out); err != nil {
		return nil, err
	}
	return out.Friends, nil
}

// FriendRequests lists sent and received friend requests, oldest first.
func (c *Client) FriendRequests(ctx context.Context) ([]models.FriendRequest, error) {
	var out struct {
		envelope
		Friends []models.FriendRequest `json:"friends"`
	}
	if err := c.get(ctx, "/get_friend_request", nil, &out); err != nil {
		return nil, err
	}
	return out.Friends, nil
}

// FindUser looks up a user profile by exact username.
func (c *Client) FindUser(ctx context.Context, username string) (models.UserInfo, error) {
	var out struct {
		envelope
		UserInfo models.UserInfo `json:"userinfo"`
	}
	if err := c.get(ctx, "/find_user/"+url.PathEscape(username), nil, &out); err != nil {
		return models.UserInfo{}, err
	}
	return out.UserInfo, nil
}

// AddFriend sends a friend request to username.
func (c *Client) AddFriend(ctx context.Context, username string) error {
	var out struct{ envelope }
	return c.post(ctx, "/add_friend", map[string]any{"friendname": username}, &out)
}

// ProcessFriendRequest accepts or rejects the pending request from username.
func (c *Client) ProcessFriendRequest(ctx context.Context, username string, accept bool) error {
	decision := models.StatusReject
	if accept {
		decision = models.StatusAccept
	}
	var out struct{ envelope }
	return c.post(ctx, "/process_friend_request", map[string]any{
		"friendname": username,
		"decision":   decision,
	}, &out)
}

// DeleteFriend removes username from the friend list.
func (c *Client) DeleteFriend(ctx context.Context, username string) error {
	var out struct{ envelope }
	return c.post(ctx, "/delete_friend", map[string]any{"friendname": username}, &out)
}

// TagFriends assigns tag to every friend in friends.
func (c *Client) TagFriends(ctx context.Context, friends []string, tag string) error {
	var out struct{ envelope }
	return c.post(ctx, "/add_friend_tag", map[string]any{
		"friend_list": friends,
		"tag":         tag,
	}, &out)
}
