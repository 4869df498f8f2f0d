package syncer

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"chat-client/internal/models"
	"chat-client/internal/observability"
)

// PullAllMessages pulls the complete history of every known conversation
// (refreshing the conversation list first) and returns per-conversation
// unread counts. Conversations that fail to pull are skipped; their errors
// are joined into the returned error.
func (e *Engine) PullAllMessages(ctx context.Context) (map[int64]int, error) {
	ctx, span := e.span(ctx, "sync.pull_all_messages")
	defer span.End()

	convs, err := e.PullConversations(ctx)
	if err != nil {
		return nil, err
	}

	unread := make(map[int64]int, len(convs))
	var errs []error
	for _, conv := range convs {
		msgs, n, err := e.api.Messages(ctx, conv.ID, 0)
		observability.IncPull("messages", err)
		if err != nil {
			e.log.Warn("full message pull failed",
				zap.Int64("conversation", conv.ID), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		if err := e.convs.PutLog(ctx, models.ConversationLog{ID: conv.ID, Messages: msgs}); err != nil {
			errs = append(errs, err)
			continue
		}
		unread[conv.ID] = n
	}
	return unread, errors.Join(errs...)
}

// PullNewMessages fetches the messages of one conversation strictly after
// the newest cached id and appends them in arrival order, bumping reply
// counts of locally cached reply targets. Returns the server's unread count
// for the conversation. Concurrent calls for the same conversation are
// collapsed into one flight.
func (e *Engine) PullNewMessages(ctx context.Context, conversationID int64) (int, error) {
	v, err, _ := e.flight.Do(strconv.FormatInt(conversationID, 10), func() (any, error) {
		return e.pullNewMessages(ctx, conversationID)
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

func (e *Engine) pullNewMessages(ctx context.Context, conversationID int64) (int, error) {
	ctx, span := e.span(ctx, "sync.pull_new_messages")
	defer span.End()

	// A push event may reference a conversation we have never seen.
	if _, ok, err := e.convs.Conversation(ctx, conversationID); err != nil {
		return 0, err
	} else if !ok {
		if err := e.PullConversation(ctx, conversationID); err != nil {
			return 0, err
		}
	}

	log, ok, err := e.convs.Log(ctx, conversationID)
	if err != nil {
		return 0, err
	}

	after := int64(-1)
	if ok {
		after = log.LastMessageID()
	}

	msgs, unread, err := e.api.Messages(ctx, conversationID, after)
	observability.IncPull("messages", err)
	if err != nil {
		return 0, err
	}

	if !ok {
		log = models.ConversationLog{ID: conversationID}
	}
	for _, m := range msgs {
		log.Messages = append(log.Messages, m)
		if m.ReplyTo != models.ReplyToNone {
			bumpReply(log.Messages, m.ReplyTo)
		}
	}
	if err := e.convs.PutLog(ctx, log); err != nil {
		return 0, err
	}
	return unread, nil
}

// bumpReply increments the reply counter of the target message if it is in
// the log. Uncached targets are skipped: with partial history the reply
// count can undercount, which the design accepts.
func bumpReply(msgs []models.Message, target int64) {
	for i := range msgs {
		if msgs[i].ID == target {
			msgs[i].ReplyBy++
			return
		}
	}
}

// SendMessage posts a message and appends the server's stored copy to the
// local log, bumping the cached reply target when replying.
func (e *Engine) SendMessage(ctx context.Context, conversationID int64, content string, replyTo int64) (models.Message, error) {
	msg, err := e.api.SendMessage(ctx, conversationID, content, replyTo)
	if err != nil {
		return models.Message{}, err
	}
	if _, err := e.AppendLocalMessage(ctx, conversationID, msg); err != nil {
		return models.Message{}, err
	}
	if replyTo != models.ReplyToNone {
		if _, err := e.BumpReplyCount(ctx, conversationID, replyTo); err != nil {
			return models.Message{}, err
		}
	}
	return msg, nil
}

// AppendLocalMessage appends one message to a conversation's log, creating
// the log if needed, and returns the updated message slice.
func (e *Engine) AppendLocalMessage(ctx context.Context, conversationID int64, msg models.Message) ([]models.Message, error) {
	log, ok, err := e.convs.Log(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !ok {
		log = models.ConversationLog{ID: conversationID}
	}
	log.Messages = append(log.Messages, msg)
	if err := e.convs.PutLog(ctx, log); err != nil {
		return nil, err
	}
	return log.Messages, nil
}

// BumpReplyCount increments the reply counter of one cached message. A miss
// (log or message not cached) is silently skipped.
func (e *Engine) BumpReplyCount(ctx context.Context, conversationID, messageID int64) ([]models.Message, error) {
	log, ok, err := e.convs.Log(ctx, conversationID)
	if err != nil || !ok {
		return nil, err
	}
	bumpReply(log.Messages, messageID)
	if err := e.convs.PutLog(ctx, log); err != nil {
		return nil, err
	}
	return log.Messages, nil
}

// MarkConversationRead notifies the server the user has read the
// conversation, then marks every cached message as read by username.
// Idempotent: the read set never gains duplicates.
func (e *Engine) MarkConversationRead(ctx context.Context, conversationID int64, username string) ([]models.Message, error) {
	if err := e.api.MarkConversationRead(ctx, conversationID); err != nil {
		return nil, err
	}
	return e.ApplyConversationRead(ctx, conversationID, username)
}

// ApplyConversationRead performs the local read-by mutation without a
// network round-trip, used when a push event reports another user's read.
func (e *Engine) ApplyConversationRead(ctx context.Context, conversationID int64, username string) ([]models.Message, error) {
	log, ok, err := e.convs.Log(ctx, conversationID)
	if err != nil || !ok {
		return nil, err
	}
	for i := range log.Messages {
		if !log.Messages[i].ReadBy(username) {
			log.Messages[i].Read = append(log.Messages[i].Read, username)
		}
	}
	if err := e.convs.PutLog(ctx, log); err != nil {
		return nil, err
	}
	return log.Messages, nil
}

// DeleteMessage removes the message from the local log immediately, then
// issues the server delete. If the server call fails the message is restored
// at its original position so a transient network error cannot silently lose
// it.
func (e *Engine) DeleteMessage(ctx context.Context, conversationID, messageID int64) ([]models.Message, error) {
	log, ok, err := e.convs.Log(ctx, conversationID)
	if err != nil || !ok {
		return nil, err
	}

	idx := -1
	for i := range log.Messages {
		if log.Messages[i].ID == messageID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return log.Messages, nil
	}
	removed := log.Messages[idx]
	log.Messages = append(log.Messages[:idx:idx], log.Messages[idx+1:]...)
	if err := e.convs.PutLog(ctx, log); err != nil {
		return nil, err
	}

	if err := e.api.DeleteMessage(ctx, messageID); err != nil {
		e.log.Warn("server delete failed, restoring message",
			zap.Int64("conversation", conversationID),
			zap.Int64("message", messageID), zap.Error(err))
		restored := make([]models.Message, 0, len(log.Messages)+1)
		restored = append(restored, log.Messages[:idx]...)
		restored = append(restored, removed)
		restored = append(restored, log.Messages[idx:]...)
		log.Messages = restored
		if putErr := e.convs.PutLog(ctx, log); putErr != nil {
			return nil, errors.Join(err, putErr)
		}
		return log.Messages, err
	}
	return log.Messages, nil
}

// Messages returns the cached log of one conversation; an unknown
// conversation yields an empty slice.
func (e *Engine) Messages(ctx context.Context, conversationID int64) ([]models.Message, error) {
	log, ok, err := e.convs.Log(ctx, conversationID)
	if err != nil || !ok {
		return []models.Message{}, err
	}
	return log.Messages, nil
}

// MessagesOnDay returns the cached messages whose timestamp falls on the
// same calendar day as day (e.g. "2024/03/15"). Comparison is
// timezone-naive: only the encoded year, month and day components count.
func (e *Engine) MessagesOnDay(ctx context.Context, conversationID int64, day string) ([]models.Message, error) {
	target, err := parseDay(day)
	if err != nil {
		return nil, err
	}
	msgs, err := e.Messages(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	out := []models.Message{}
	for _, m := range msgs {
		ts, ok := parseTimestamp(m.Timestamp)
		if !ok {
			continue
		}
		if ts.Year() == target.Year() && ts.Month() == target.Month() && ts.Day() == target.Day() {
			out = append(out, m)
		}
	}
	return out, nil
}

// MessagesBySender returns the cached messages sent by sender.
func (e *Engine) MessagesBySender(ctx context.Context, conversationID int64, sender string) ([]models.Message, error) {
	msgs, err := e.Messages(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	out := []models.Message{}
	for _, m := range msgs {
		if m.Sender == sender {
			out = append(out, m)
		}
	}
	return out, nil
}

// timestampLayouts covers the formats the backend has been seen emitting.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

var dayLayouts = []string{"2006/01/02", "2006-01-02"}

func parseDay(s string) (time.Time, error) {
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if t, ok := parseTimestamp(s); ok {
		return t, nil
	}
	return time.Time{}, errors.New("unrecognized day format: " + s)
}
