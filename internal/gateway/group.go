package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"chat-client/internal/models"
)

// Groups lists every group the user belongs to.
func (c *Client) Groups(ctx context.Context) ([]models.Group, error) {
	var out struct {
		envelope
		Groups []models.Group `json:"groups"`
	}
	if err := c.get(ctx, "/group", nil, &out); err != nil {
		return nil, err
	}
	return out.Groups, nil
}

// Group fetches a single group by id.
func (c *Client) Group(ctx context.Context, id int64) (models.Group, error) {
	q := url.Values{"id": {strconv.FormatInt(id, 10)}}
	var out struct {
		envelope
		Groups []models.Group `json:"groups"`
	}
	if err := c.get(ctx, "/group", q, &out); err != nil {
		return models.Group{}, err
	}
	if len(out.Groups) == 0 {
		return models.Group{}, fmt.Errorf("group %d: empty response", id)
	}
	return out.Groups[0], nil
}

// CreateGroup creates a group with the given members and returns the group
// together with its owning conversation.
func (c *Client) CreateGroup(ctx context.Context, name string, members []string) (models.Group, models.Conversation, error) {
	body := map[string]any{"name": name, "members": members}
	var out struct {
		envelope
		Group        models.Group        `json:"group"`
		Conversation models.Conversation `json:"conversation"`
	}
	if err := c.post(ctx, "/group", body, &out); err != nil {
		return models.Group{}, models.Conversation{}, err
	}
	return out.Group, out.Conversation, nil
}

// SetManagers promotes and demotes group managers in one call.
func (c *Client) SetManagers(ctx context.Context, groupID int64, add, remove []string) error {
	if add == nil {
		add = []string{}
	}
	if remove == nil {
		remove = []string{}
	}
	var out struct{ envelope }
	return c.post(ctx, "/manager", map[string]any{
		"group":  groupID,
		"add":    add,
		"delete": remove,
	}, &out)
}

// SetMaster transfers group ownership to master.
func (c *Client) SetMaster(ctx context.Context, groupID int64, master string) error {
	var out struct{ envelope }
	return c.post(ctx, "/master", map[string]any{
		"group":  groupID,
		"master": master,
	}, &out)
}

// RemoveMembers kicks members out of the group.
func (c *Client) RemoveMembers(ctx context.Context, groupID int64, members []string) error {
	var out struct{ envelope }
	return c.post(ctx, "/remove_member", map[string]any{
		"group":  groupID,
		"remove": members,
	}, &out)
}

// GroupNotices fetches the group's announcements. Notices are never cached.
func (c *Client) GroupNotices(ctx context.Context, groupID int64) ([]models.Notice, error) {
	q := url.Values{"group": {strconv.FormatInt(groupID, 10)}}
	var out struct {
		envelope
		Notices []models.Notice `json:"notices"`
	}
	if err := c.get(ctx, "/group_notice", q, &out); err != nil {
		return nil, err
	}
	return out.Notices, nil
}

// PostGroupNotice publishes an announcement and returns it.
func (c *Client) PostGroupNotice(ctx context.Context, groupID int64, content string) (models.Notice, error) {
	var out struct {
		envelope
		Notice models.Notice `json:"notice"`
	}
	if err := c.post(ctx, "/group_notice", map[string]any{
		"group":   groupID,
		"content": content,
	}, &out); err != nil {
		return models.Notice{}, err
	}
	return out.Notice, nil
}

// LeaveGroup removes the calling user from the group.
func (c *Client) LeaveGroup(ctx context.Context, groupID int64) error {
	var out struct{ envelope }
	return c.post(ctx, "/leave_group", map[string]any{"group": groupID}, &out)
}

// InviteToGroup asks the group's master/managers to admit friend.
func (c *Client) InviteToGroup(ctx context.Context, groupID int64, friend string) error {
	var out struct{ envelope }
	return c.post(ctx, "/invite", map[string]any{
		"group":  groupID,
		"friend": friend,
	}, &out)
}

// GroupRequests lists membership requests for every group the user
// administers.
func (c *Client) GroupRequests(ctx context.Context) ([]models.GroupRequest, error) {
	var out struct {
		envelope
		Requests []models.GroupRequest `json:"requests"`
	}
	if err := c.get(ctx, "/group_request", nil, &out); err != nil {
		return nil, err
	}
	return out.Requests, nil
}

// GroupRequestsFor lists membership requests for one group.
func (c *Client) GroupRequestsFor(ctx context.Context, groupID int64) ([]models.GroupRequest, error) {
	q := url.Values{"group": {strconv.FormatInt(groupID, 10)}}
	var out struct {
		envelope
		Requests []models.GroupRequest `json:"requests"`
	}
	if err := c.get(ctx, "/group_request", q, &out); err != nil {
		return nil, err
	}
	return out.Requests, nil
}

// ProcessGroupRequest accepts or rejects username's request to join groupID.
func (c *Client) ProcessGroupRequest(ctx context.Context, groupID int64, username string, accept bool) error {
	decision := models.StatusReject
	if accept {
		decision = models.StatusAccept
	}
	var out struct{ envelope }
	return c.post(ctx, "/process_group_request", map[string]any{
		"group":    groupID,
		"user":     username,
		"decision": decision,
	}, &out)
}
