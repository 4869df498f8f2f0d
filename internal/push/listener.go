package push

import (
	"context"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"chat-client/internal/observability"
)

const (
	reconnectMin = time.Second
	reconnectMax = 30 * time.Second
)

// Listener holds one websocket per session and delivers decoded events on a
// channel. Delivery carries no ordering or dedup guarantee; consumers must
// stay idempotent.
type Listener struct {
	url    string
	log    *zap.Logger
	events chan Event
}

// NewListener prepares a listener for the socket endpoint (ws:// or wss://),
// authenticating with the jwt query parameter.
func NewListener(wsURL, token string, log *zap.Logger) *Listener {
	return &Listener{
		url:    wsURL + "?jwt=" + url.QueryEscape(token),
		log:    log,
		events: make(chan Event, 16),
	}
}

// Events returns the decoded event stream. The channel closes when Run
// returns.
func (l *Listener) Events() <-chan Event {
	return l.events
}

// Run connects and reads until ctx is cancelled, reconnecting with capped
// backoff after failures. It always returns ctx's error.
func (l *Listener) Run(ctx context.Context) error {
	defer close(l.events)

	backoff := reconnectMin
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		conn, _, err := websocket.DefaultDialer.DialContext(ctx, l.url, nil)
		if err != nil {
			l.log.Warn("push dial failed", zap.Error(err), zap.Duration("retry_in", backoff))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, reconnectMax)
			continue
		}

		l.log.Info("push connected")
		observability.SetPushConnected(true)
		backoff = reconnectMin

		err = l.readLoop(ctx, conn)
		observability.SetPushConnected(false)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		observability.IncPushReconnect()
		l.log.Warn("push connection lost", zap.Error(err))
	}
}

func (l *Listener) readLoop(ctx context.Context, conn *websocket.Conn) error {
	// Unblock ReadMessage when the context ends.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		ev, err := Decode(string(data))
		if err != nil {
			l.log.Warn("push frame dropped", zap.Error(err))
			continue
		}
		observability.IncPushEvent(ev.Type.String())

		select {
		case l.events <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
