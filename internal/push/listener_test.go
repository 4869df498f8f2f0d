package push

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{}

func recvEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-events:
		require.True(t, ok, "event channel closed early")
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestListenerDeliversDecodedEvents(t *testing.T) {
	jwtCh := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jwtCh <- r.URL.Query().Get("jwt")
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.WriteMessage(websocket.TextMessage, []byte("new message in conversation 5"))
		_ = conn.WriteMessage(websocket.TextMessage, []byte("some junk frame"))
		_ = conn.WriteMessage(websocket.TextMessage, []byte("new friend request"))
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	l := NewListener(wsURL, "token-123", zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	ev := recvEvent(t, l.Events())
	assert.Equal(t, EventNewMessage, ev.Type)
	assert.EqualValues(t, 5, ev.ConversationID)

	// The junk frame is dropped, not delivered.
	ev = recvEvent(t, l.Events())
	assert.Equal(t, EventFriendRequest, ev.Type)

	assert.Equal(t, "token-123", <-jwtCh)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(3 * time.Second):
		t.Fatal("listener did not stop")
	}

	// The event channel closes once Run returns.
	for range l.Events() {
	}
}

func TestListenerReconnectsAfterDrop(t *testing.T) {
	var conns atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		n := conns.Add(1)
		if n == 1 {
			// Drop the first connection straight away.
			conn.Close()
			return
		}
		defer conn.Close()
		_ = conn.WriteMessage(websocket.TextMessage, []byte("new group notice in group 8"))
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	l := NewListener(wsURL, "tok", zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = l.Run(ctx) }()

	ev := recvEvent(t, l.Events())
	assert.Equal(t, EventGroupNotice, ev.Type)
	assert.EqualValues(t, 8, ev.GroupID)
	assert.GreaterOrEqual(t, conns.Load(), int32(2))
}
