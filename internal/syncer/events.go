package syncer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"chat-client/internal/push"
)

// HandleEvent applies one push notification to the cache by triggering the
// matching incremental operation. Safe to call with duplicated or reordered
// events.
func (e *Engine) HandleEvent(ctx context.Context, ev push.Event) error {
	ctx, span := e.span(ctx, "sync.handle_event")
	defer span.End()

	e.log.Debug("push event", zap.Stringer("type", ev.Type))

	switch ev.Type {
	case push.EventFriendRequest:
		_, err := e.PullFriendRequests(ctx)
		return err

	case push.EventFriendAdded:
		// A fresh friendship also opens a direct conversation.
		if err := e.PullFriends(ctx); err != nil {
			return err
		}
		_, err := e.PullConversations(ctx)
		return err

	case push.EventConversationRead:
		_, err := e.ApplyConversationRead(ctx, ev.ConversationID, ev.Username)
		return err

	case push.EventNewMessage:
		_, err := e.PullNewMessages(ctx, ev.ConversationID)
		return err

	case push.EventGroupRequest:
		_, err := e.PullGroupRequests(ctx)
		return err

	case push.EventGroupNotice:
		_, err := e.PullGroup(ctx, ev.GroupID)
		return err

	case push.EventGroupAdded:
		convID, err := e.PullGroup(ctx, ev.GroupID)
		if err != nil {
			return err
		}
		if err := e.PullConversation(ctx, convID); err != nil {
			return err
		}
		_, err = e.PullNewMessages(ctx, convID)
		return err

	case push.EventRemovedFromGroup:
		return e.dropGroupLocally(ctx, ev.GroupID)
	}
	return fmt.Errorf("unhandled push event type %d", ev.Type)
}
