// Package push maintains the long-lived websocket to the backend and decodes
// its plain-text notification frames into typed events.
package push

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownEvent marks a frame with no recognized prefix.
var ErrUnknownEvent = errors.New("unknown push event")

// EventType enumerates the notification kinds the backend emits.
type EventType int

const (
	EventFriendRequest EventType = iota + 1
	EventFriendAdded
	EventConversationRead
	EventNewMessage
	EventGroupRequest
	EventGroupNotice
	EventGroupAdded
	EventRemovedFromGroup
)

func (t EventType) String() string {
	switch t {
	case EventFriendRequest:
		return "friend_request"
	case EventFriendAdded:
		return "friend_added"
	case EventConversationRead:
		return "conversation_read"
	case EventNewMessage:
		return "new_message"
	case EventGroupRequest:
		return "group_request"
	case EventGroupNotice:
		return "group_notice"
	case EventGroupAdded:
		return "group_added"
	case EventRemovedFromGroup:
		return "removed_from_group"
	}
	return "unknown"
}

// Event is one decoded notification. Only the fields relevant to the type
// are set.
type Event struct {
	Type           EventType
	Username       string
	ConversationID int64
	GroupID        int64
}

// Decode parses a raw websocket frame into an Event. Frames are plain
// strings with fixed prefixes; decoding happens once here so the rest of the
// client dispatches on the tagged type.
func Decode(raw string) (Event, error) {
	if raw == "new friend request" {
		return Event{Type: EventFriendRequest}, nil
	}
	if rest, ok := strings.CutPrefix(raw, "new friend added "); ok {
		return Event{Type: EventFriendAdded, Username: rest}, nil
	}
	if rest, ok := strings.CutPrefix(raw, "message has been read "); ok {
		fields := strings.Fields(rest)
		if len(fields) != 2 {
			return Event{}, fmt.Errorf("decode %q: want user and conversation", raw)
		}
		id, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return Event{}, fmt.Errorf("decode %q: %w", raw, err)
		}
		return Event{Type: EventConversationRead, Username: fields[0], ConversationID: id}, nil
	}
	if rest, ok := strings.CutPrefix(raw, "new message in conversation "); ok {
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return Event{}, fmt.Errorf("decode %q: %w", raw, err)
		}
		return Event{Type: EventNewMessage, ConversationID: id}, nil
	}
	if rest, ok := strings.CutPrefix(raw, "new group request in group "); ok {
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return Event{}, fmt.Errorf("decode %q: %w", raw, err)
		}
		return Event{Type: EventGroupRequest, GroupID: id}, nil
	}
	if rest, ok := strings.CutPrefix(raw, "new group notice in group "); ok {
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return Event{}, fmt.Errorf("decode %q: %w", raw, err)
		}
		return Event{Type: EventGroupNotice, GroupID: id}, nil
	}
	if rest, ok := strings.CutPrefix(raw, "new group added "); ok {
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return Event{}, fmt.Errorf("decode %q: %w", raw, err)
		}
		return Event{Type: EventGroupAdded, GroupID: id}, nil
	}
	if rest, ok := strings.CutPrefix(raw, "removed from group "); ok {
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return Event{}, fmt.Errorf("decode %q: %w", raw, err)
		}
		return Event{Type: EventRemovedFromGroup, GroupID: id}, nil
	}
	return Event{}, fmt.Errorf("%w: %q", ErrUnknownEvent, raw)
}
