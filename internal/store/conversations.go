package store

import (
	"context"

	"github.com/jmoiron/sqlx"

	"chat-client/internal/models"
)

var conversationMigrations = []string{
	`CREATE TABLE IF NOT EXISTS conversations (
        id INTEGER PRIMARY KEY,
        data BLOB NOT NULL
    );`,
	`CREATE TABLE IF NOT EXISTS conversation_messages (
        id INTEGER PRIMARY KEY,
        data BLOB NOT NULL
    );`,
	`CREATE TABLE IF NOT EXISTS groups (
        id INTEGER PRIMARY KEY,
        data BLOB NOT NULL
    );`,
	`CREATE TABLE IF NOT EXISTS group_requests (
        group_id INTEGER NOT NULL,
        sender TEXT NOT NULL,
        data BLOB NOT NULL,
        PRIMARY KEY (group_id, sender)
    );`,
}

// Conversations is the durable cache of conversations, their message logs,
// groups and group requests.
type Conversations struct {
	db *sqlx.DB
}

// OpenConversations opens (creating if needed) the conversations database at
// path. Use ":memory:" for an isolated throwaway store.
func OpenConversations(path string) (*Conversations, error) {
	db, err := openDB(path, conversationMigrations)
	if err != nil {
		return nil, err
	}
	return &Conversations{db: db}, nil
}

// Close releases the underlying database.
func (s *Conversations) Close() error {
	return s.db.Close()
}

// Clear drops all cached conversation data (logout path).
func (s *Conversations) Clear(ctx context.Context) error {
	return clearTables(ctx, s.db, "conversations", "conversation_messages", "groups", "group_requests")
}

// PutConversation upserts one conversation keyed by id.
func (s *Conversations) PutConversation(ctx context.Context, c models.Conversation) error {
	return putJSON(ctx, s.db,
		`INSERT OR REPLACE INTO conversations (id, data) VALUES (?, ?)`, c, c.ID)
}

// PutConversations upserts a batch of conversations in one transaction.
func (s *Conversations) PutConversations(ctx context.Context, convs []models.Conversation) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	for _, c := range convs {
		if err := putJSONTx(ctx, tx,
			`INSERT OR REPLACE INTO conversations (id, data) VALUES (?, ?)`, c, c.ID); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Conversation loads one conversation; the second return is false on a miss.
func (s *Conversations) Conversation(ctx context.Context, id int64) (models.Conversation, bool, error) {
	var c models.Conversation
	ok, err := getJSON(ctx, s.db, `SELECT data FROM conversations WHERE id = ?`, &c, id)
	return c, ok, err
}

// Conversations returns every cached conversation.
func (s *Conversations) Conversations(ctx context.Context) ([]models.Conversation, error) {
	return allJSON[models.Conversation](ctx, s.db, `SELECT data FROM conversations ORDER BY id`)
}

// FilterConversations returns the conversations matching keep.
func (s *Conversations) FilterConversations(ctx context.Context, keep func(models.Conversation) bool) ([]models.Conversation, error) {
	return filterJSON(ctx, s.db, `SELECT data FROM conversations ORDER BY id`, keep)
}

// DeleteConversation removes one conversation row.
func (s *Conversations) DeleteConversation(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM conversations WHERE id = ?`, id)
	return err
}

// ClearConversations empties the conversation collection.
func (s *Conversations) ClearConversations(ctx context.Context) error {
	return clearTables(ctx, s.db, "conversations")
}

// PutLog upserts the whole message log of one conversation.
func (s *Conversations) PutLog(ctx context.Context, l models.ConversationLog) error {
	return putJSON(ctx, s.db,
		`INSERT OR REPLACE INTO conversation_messages (id, data) VALUES (?, ?)`, l, l.ID)
}

// Log loads the message log of one conversation.
func (s *Conversations) Log(ctx context.Context, id int64) (models.ConversationLog, bool, error) {
	var l models.ConversationLog
	ok, err := getJSON(ctx, s.db, `SELECT data FROM conversation_messages WHERE id = ?`, &l, id)
	return l, ok, err
}

// Logs returns every cached message log.
func (s *Conversations) Logs(ctx context.Context) ([]models.ConversationLog, error) {
	return allJSON[models.ConversationLog](ctx, s.db, `SELECT data FROM conversation_messages ORDER BY id`)
}

// DeleteLog removes the message log of one conversation.
func (s *Conversations) DeleteLog(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM conversation_messages WHERE id = ?`, id)
	return err
}

// ClearLogs empties the message log collection.
func (s *Conversations) ClearLogs(ctx context.Context) error {
	return clearTables(ctx, s.db, "conversation_messages")
}

// PutGroup upserts one group keyed by id.
func (s *Conversations) PutGroup(ctx context.Context, g models.Group) error {
	return putJSON(ctx, s.db,
		`INSERT OR REPLACE INTO groups (id, data) VALUES (?, ?)`, g, g.ID)
}

// PutGroups upserts a batch of groups in one transaction.
func (s *Conversations) PutGroups(ctx context.Context, groups []models.Group) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	for _, g := range groups {
		if err := putJSONTx(ctx, tx,
			`INSERT OR REPLACE INTO groups (id, data) VALUES (?, ?)`, g, g.ID); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Group loads one group; the second return is false on a miss.
func (s *Conversations) Group(ctx context.Context, id int64) (models.Group, bool, error) {
	var g models.Group
	ok, err := getJSON(ctx, s.db, `SELECT data FROM groups WHERE id = ?`, &g, id)
	return g, ok, err
}

// Groups returns every cached group.
func (s *Conversations) Groups(ctx context.Context) ([]models.Group, error) {
	return allJSON[models.Group](ctx, s.db, `SELECT data FROM groups ORDER BY id`)
}

// DeleteGroup removes one group row.
func (s *Conversations) DeleteGroup(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM groups WHERE id = ?`, id)
	return err
}

// ClearGroups empties the group collection.
func (s *Conversations) ClearGroups(ctx context.Context) error {
	return clearTables(ctx, s.db, "groups")
}

// PutGroupRequests upserts a batch of group requests in one transaction,
// keyed by (group, sender).
func (s *Conversations) PutGroupRequests(ctx context.Context, reqs []models.GroupRequest) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	for _, r := range reqs {
		if err := putJSONTx(ctx, tx,
			`INSERT OR REPLACE INTO group_requests (group_id, sender, data) VALUES (?, ?, ?)`, r, r.Group, r.Sender); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// GroupRequests returns every cached group request.
func (s *Conversations) GroupRequests(ctx context.Context) ([]models.GroupRequest, error) {
	return allJSON[models.GroupRequest](ctx, s.db, `SELECT data FROM group_requests ORDER BY group_id, sender`)
}

// FilterGroupRequests returns the group requests matching keep.
func (s *Conversations) FilterGroupRequests(ctx context.Context, keep func(models.GroupRequest) bool) ([]models.GroupRequest, error) {
	return filterJSON(ctx, s.db, `SELECT data FROM group_requests ORDER BY group_id, sender`, keep)
}

// ClearGroupRequests empties the group request collection.
func (s *Conversations) ClearGroupRequests(ctx context.Context) error {
	return clearTables(ctx, s.db, "group_requests")
}
