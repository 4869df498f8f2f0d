package push

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Event
	}{
		{
			name: "friend request",
			raw:  "new friend request",
			want: Event{Type: EventFriendRequest},
		},
		{
			name: "friend added",
			raw:  "new friend added alice",
			want: Event{Type: EventFriendAdded, Username: "alice"},
		},
		{
			name: "conversation read",
			raw:  "message has been read alice 42",
			want: Event{Type: EventConversationRead, Username: "alice", ConversationID: 42},
		},
		{
			name: "new message",
			raw:  "new message in conversation 7",
			want: Event{Type: EventNewMessage, ConversationID: 7},
		},
		{
			name: "group request",
			raw:  "new group request in group 3",
			want: Event{Type: EventGroupRequest, GroupID: 3},
		},
		{
			name: "group notice",
			raw:  "new group notice in group 3",
			want: Event{Type: EventGroupNotice, GroupID: 3},
		},
		{
			name: "group added",
			raw:  "new group added 9",
			want: Event{Type: EventGroupAdded, GroupID: 9},
		},
		{
			name: "removed from group",
			raw:  "removed from group 9",
			want: Event{Type: EventRemovedFromGroup, GroupID: 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeRejectsMalformedFrames(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"unknown prefix", "server going down"},
		{"non-numeric conversation", "new message in conversation abc"},
		{"read missing conversation", "message has been read alice"},
		{"non-numeric group", "new group notice in group three"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.raw)
			assert.Error(t, err)
		})
	}
}

func TestDecodeUnknownFrameWrapsSentinel(t *testing.T) {
	_, err := Decode("something else")
	assert.ErrorIs(t, err, ErrUnknownEvent)
}
