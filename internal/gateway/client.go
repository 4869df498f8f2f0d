// Package gateway is the typed wrapper around the chat backend's REST API.
// One method per endpoint; no retries, no state. Every response envelope is
// {code, info, ...payload} with code 0 on success.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"chat-client/internal/errs"
	"chat-client/internal/models"
)

// API is the full surface the sync engine consumes.
type API interface {
	UserInfo(ctx context.Context) (models.UserInfo, error)

	Conversations(ctx context.Context) ([]models.Conversation, error)
	Conversation(ctx context.Context, id int64) (models.Conversation, error)
	CreateConversation(ctx context.Context, typ int, members []string) (models.Conversation, error)
	Messages(ctx context.Context, conversationID, after int64) ([]models.Message, int, error)
	SendMessage(ctx context.Context, conversationID int64, content string, replyTo int64) (models.Message, error)
	MarkConversationRead(ctx context.Context, conversationID int64) error
	DeleteMessage(ctx context.Context, messageID int64) error

	Friends(ctx context.Context) ([]models.Friend, error)
	FriendsByTag(ctx context.Context, tag string) ([]models.Friend, error)
	FriendRequests(ctx context.Context) ([]models.FriendRequest, error)
	FindUser(ctx context.Context, username string) (models.UserInfo, error)
	AddFriend(ctx context.Context, username string) error
	ProcessFriendRequest(ctx context.Context, username string, accept bool) error
	DeleteFriend(ctx context.Context, username string) error
	TagFriends(ctx context.Context, friends []string, tag string) error

	Groups(ctx context.Context) ([]models.Group, error)
	Group(ctx context.Context, id int64) (models.Group, error)
	CreateGroup(ctx context.Context, name string, members []string) (models.Group, models.Conversation, error)
	SetManagers(ctx context.Context, groupID int64, add, remove []string) error
	SetMaster(ctx context.Context, groupID int64, master string) error
	RemoveMembers(ctx context.Context, groupID int64, members []string) error
	GroupNotices(ctx context.Context, groupID int64) ([]models.Notice, error)
	PostGroupNotice(ctx context.Context, groupID int64, content string) (models.Notice, error)
	LeaveGroup(ctx context.Context, groupID int64) error
	InviteToGroup(ctx context.Context, groupID int64, friend string) error
	GroupRequests(ctx context.Context) ([]models.GroupRequest, error)
	GroupRequestsFor(ctx context.Context, groupID int64) ([]models.GroupRequest, error)
	ProcessGroupRequest(ctx context.Context, groupID int64, username string, accept bool) error
}

// Client talks to the backend over HTTP.
type Client struct {
	base  string
	token func() string
	http  *http.Client
}

var _ API = (*Client)(nil)

// New builds a Client for the backend at base (e.g. "https://host/api/chat").
// token is called per request; an empty result sends no authorization header.
func New(base string, token func() string) *Client {
	return &Client{
		base:  strings.TrimRight(base, "/"),
		token: token,
		http:  &http.Client{},
	}
}

type envelope struct {
	Code int    `json:"code"`
	Info string `json:"info"`
}

func (e envelope) remoteErr() error {
	if e.Code != 0 {
		return &errs.RemoteError{Code: e.Code, Info: e.Info}
	}
	return nil
}

type response interface {
	remoteErr() error
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", tok)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	if r, ok := out.(response); ok {
		return r.remoteErr()
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}
