package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"chat-client/internal/models"
)

// UserInfo returns the authenticated user's profile.
func (c *Client) UserInfo(ctx context.Context) (models.UserInfo, error) {
	var out struct {
		envelope
		UserInfo models.UserInfo `json:"userinfo"`
	}
	if err := c.get(ctx, "/get_userinfo", nil, &out); err != nil {
		return models.UserInfo{}, err
	}
	return out.UserInfo, nil
}

// Conversations lists every conversation the user belongs to.
func (c *Client) Conversations(ctx context.Context) ([]models.Conversation, error) {
	var out struct {
		envelope
		Conversations []models.Conversation `json:"conversations"`
	}
	if err := c.get(ctx, "/conversation", nil, &out); err != nil {
		return nil, err
	}
	return out.Conversations, nil
}

// Conversation fetches a single conversation by id.
func (c *Client) Conversation(ctx context.Context, id int64) (models.Conversation, error) {
	q := url.Values{"id": {strconv.FormatInt(id, 10)}}
	var out struct {
		envelope
		Conversations []models.Conversation `json:"conversations"`
	}
	if err := c.get(ctx, "/conversation", q, &out); err != nil {
		return models.Conversation{}, err
	}
	if len(out.Conversations) == 0 {
		return models.Conversation{}, fmt.Errorf("conversation %d: empty response", id)
	}
	return out.Conversations[0], nil
}

// CreateConversation opens a new conversation with the given members.
func (c *Client) CreateConversation(ctx context.Context, typ int, members []string) (models.Conversation, error) {
	body := map[string]any{"type": typ, "members": members}
	var out struct {
		envelope
		Conversation models.Conversation `json:"conversation"`
	}
	if err := c.post(ctx, "/conversation", body, &out); err != nil {
		return models.Conversation{}, err
	}
	return out.Conversation, nil
}

// Messages fetches the messages of a conversation strictly after the given
// id, plus the server-side unread count. after=0 returns the whole history;
// after=-1 is the "no known messages yet" sentinel.
func (c *Client) Messages(ctx context.Context, conversationID, after int64) ([]models.Message, int, error) {
	q := url.Values{
		"conversation": {strconv.FormatInt(conversationID, 10)},
		"after":        {strconv.FormatInt(after, 10)},
	}
	var out struct {
		envelope
		Unread   int              `json:"unread"`
		Messages []models.Message `json:"messages"`
	}
	if err := c.get(ctx, "/message", q, &out); err != nil {
		return nil, 0, err
	}
	return out.Messages, out.Unread, nil
}

// SendMessage posts a message, optionally replying to another message
// (replyTo = models.ReplyToNone for none). Returns the stored message.
func (c *Client) SendMessage(ctx context.Context, conversationID int64, content string, replyTo int64) (models.Message, error) {
	body := map[string]any{
		"conversation": conversationID,
		"content":      content,
		"reply_to":     replyTo,
	}
	var out struct {
		envelope
		Message models.Message `json:"message"`
	}
	if err := c.post(ctx, "/message", body, &out); err != nil {
		return models.Message{}, err
	}
	return out.Message, nil
}

// MarkConversationRead tells the server the user has read the conversation
// up to now.
func (c *Client) MarkConversationRead(ctx context.Context, conversationID int64) error {
	var out struct{ envelope }
	return c.post(ctx, "/read_conversation", map[string]any{"conversation": conversationID}, &out)
}

// DeleteMessage removes a message for the calling user.
func (c *Client) DeleteMessage(ctx context.Context, messageID int64) error {
	var out struct{ envelope }
	return c.post(ctx, "/delete_message", map[string]any{"message": messageID}, &out)
}
