// Package syncer reconciles the local entity store against the backend. It
// pulls full and incremental state through the gateway, applies push-driven
// deltas, and answers derived queries from the cache alone. All operations
// are idempotent so duplicate or out-of-order push triggers are harmless.
package syncer

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"chat-client/internal/gateway"
	"chat-client/internal/store"
)

// Engine is the merge layer between the gateway and the two local stores.
type Engine struct {
	api     gateway.API
	friends *store.Friends
	convs   *store.Conversations
	log     *zap.Logger

	// flight collapses concurrent incremental pulls per conversation so two
	// push triggers for the same conversation cannot append twice.
	flight singleflight.Group
}

// New wires an Engine over the given gateway and stores.
func New(api gateway.API, friends *store.Friends, convs *store.Conversations, log *zap.Logger) *Engine {
	return &Engine{
		api:     api,
		friends: friends,
		convs:   convs,
		log:     log,
	}
}

// Reset clears every cached collection. Used on logout.
func (e *Engine) Reset(ctx context.Context) error {
	if err := e.friends.Clear(ctx); err != nil {
		return err
	}
	return e.convs.Clear(ctx)
}

func (e *Engine) span(ctx context.Context, name string) (context.Context, trace.Span) {
	return otel.Tracer("chat-client/syncer").Start(ctx, name)
}
