package models

// Conversation kinds as encoded by the backend.
const (
	ConversationDirect = 0
	ConversationGroup  = 1
)

// ReplyToNone is the reply_to sentinel for a message that replies to nothing.
const ReplyToNone int64 = -1

// Conversation is a direct or group conversation and its member set.
type Conversation struct {
	ID      int64    `json:"id"`
	Type    int      `json:"type"`
	Members []string `json:"members"`
}

// Message is a single chat message as the backend serializes it.
// Read grows monotonically; ReplyBy counts messages replying to this one.
type Message struct {
	ID           int64    `json:"id"`
	Conversation int64    `json:"conversation"`
	Sender       string   `json:"sender"`
	Content      string   `json:"content"`
	Timestamp    string   `json:"timestamp"`
	Read         []string `json:"read"`
	ReplyTo      int64    `json:"reply_to"`
	ReplyBy      int      `json:"reply_by"`
}

// ReadBy reports whether username is already in the read set.
func (m Message) ReadBy(username string) bool {
	for _, u := range m.Read {
		if u == username {
			return true
		}
	}
	return false
}

// ConversationLog owns the ordered message sequence of one conversation.
// Order is arrival order, not timestamp order.
type ConversationLog struct {
	ID       int64     `json:"id"`
	Messages []Message `json:"messages"`
}

// LastMessageID returns the id of the newest cached message, or -1 when the
// log is empty.
func (l ConversationLog) LastMessageID() int64 {
	if len(l.Messages) == 0 {
		return -1
	}
	return l.Messages[len(l.Messages)-1].ID
}

// Notice is a group announcement. Notices are fetched per group and never
// cached locally.
type Notice struct {
	ID           int64  `json:"id"`
	Conversation int64  `json:"conversation"`
	Sender       string `json:"sender"`
	Content      string `json:"content"`
	Timestamp    string `json:"timestamp"`
}
