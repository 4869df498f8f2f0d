package syncer

import (
	"context"

	"chat-client/internal/models"
	"chat-client/internal/observability"
)

// PullConversations replaces the cached conversation list with the server's
// and returns it.
func (e *Engine) PullConversations(ctx context.Context) ([]models.Conversation, error) {
	convs, err := e.api.Conversations(ctx)
	observability.IncPull("conversations", err)
	if err != nil {
		return nil, err
	}
	if err := e.convs.ClearConversations(ctx); err != nil {
		return nil, err
	}
	if err := e.convs.PutConversations(ctx, convs); err != nil {
		return nil, err
	}
	return convs, nil
}

// PullConversation fetches one conversation and upserts it locally.
func (e *Engine) PullConversation(ctx context.Context, id int64) error {
	conv, err := e.api.Conversation(ctx, id)
	observability.IncPull("conversation", err)
	if err != nil {
		return err
	}
	return e.convs.PutConversation(ctx, conv)
}

// CreateConversation opens a conversation on the server and records it
// locally on success.
func (e *Engine) CreateConversation(ctx context.Context, typ int, members []string) (models.Conversation, error) {
	conv, err := e.api.CreateConversation(ctx, typ, members)
	if err != nil {
		return models.Conversation{}, err
	}
	if err := e.convs.PutConversation(ctx, conv); err != nil {
		return models.Conversation{}, err
	}
	return conv, nil
}

// AddLocalConversation records a conversation without a network call.
func (e *Engine) AddLocalConversation(ctx context.Context, conv models.Conversation) error {
	return e.convs.PutConversation(ctx, conv)
}

// AddLocalMember appends member to a cached conversation's member set.
// Unknown conversations and already-present members are no-ops.
func (e *Engine) AddLocalMember(ctx context.Context, conversationID int64, member string) error {
	conv, ok, err := e.convs.Conversation(ctx, conversationID)
	if err != nil || !ok {
		return err
	}
	for _, m := range conv.Members {
		if m == member {
			return nil
		}
	}
	conv.Members = append(conv.Members, member)
	return e.convs.PutConversation(ctx, conv)
}

// Conversations returns the cached conversation list.
func (e *Engine) Conversations(ctx context.Context) ([]models.Conversation, error) {
	return e.convs.Conversations(ctx)
}

// Conversation returns one cached conversation; ok is false on a cache miss.
func (e *Engine) Conversation(ctx context.Context, id int64) (models.Conversation, bool, error) {
	return e.convs.Conversation(ctx, id)
}
