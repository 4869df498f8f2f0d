package store

import (
	"context"

	"github.com/jmoiron/sqlx"

	"chat-client/internal/models"
)

var friendMigrations = []string{
	`CREATE TABLE IF NOT EXISTS friends (
        username TEXT PRIMARY KEY,
        data BLOB NOT NULL
    );`,
	`CREATE TABLE IF NOT EXISTS friend_requests (
        username TEXT PRIMARY KEY,
        data BLOB NOT NULL
    );`,
}

// Friends is the durable cache of the friend list and friend requests.
type Friends struct {
	db *sqlx.DB
}

// OpenFriends opens (creating if needed) the friends database at path.
// Use ":memory:" for an isolated throwaway store.
func OpenFriends(path string) (*Friends, error) {
	db, err := openDB(path, friendMigrations)
	if err != nil {
		return nil, err
	}
	return &Friends{db: db}, nil
}

// Close releases the underlying database.
func (s *Friends) Close() error {
	return s.db.Close()
}

// Clear drops all cached friend data (logout path).
func (s *Friends) Clear(ctx context.Context) error {
	return clearTables(ctx, s.db, "friends", "friend_requests")
}

// PutFriend upserts one friend keyed by username.
func (s *Friends) PutFriend(ctx context.Context, f models.Friend) error {
	return putJSON(ctx, s.db,
		`INSERT OR REPLACE INTO friends (username, data) VALUES (?, ?)`, f, f.Username)
}

// PutFriends upserts a batch of friends in one transaction.
func (s *Friends) PutFriends(ctx context.Context, friends []models.Friend) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	for _, f := range friends {
		if err := putJSONTx(ctx, tx,
			`INSERT OR REPLACE INTO friends (username, data) VALUES (?, ?)`, f, f.Username); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Friend loads one friend by username; the second return is false on a miss.
func (s *Friends) Friend(ctx context.Context, username string) (models.Friend, bool, error) {
	var f models.Friend
	ok, err := getJSON(ctx, s.db, `SELECT data FROM friends WHERE username = ?`, &f, username)
	return f, ok, err
}

// Friends returns every cached friend.
func (s *Friends) Friends(ctx context.Context) ([]models.Friend, error) {
	return allJSON[models.Friend](ctx, s.db, `SELECT data FROM friends ORDER BY username`)
}

// FilterFriends returns the friends matching keep.
func (s *Friends) FilterFriends(ctx context.Context, keep func(models.Friend) bool) ([]models.Friend, error) {
	return filterJSON(ctx, s.db, `SELECT data FROM friends ORDER BY username`, keep)
}

// DeleteFriend removes one friend row; deleting a missing row is a no-op.
func (s *Friends) DeleteFriend(ctx context.Context, username string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM friends WHERE username = ?`, username)
	return err
}

// ClearFriends empties the friend collection.
func (s *Friends) ClearFriends(ctx context.Context) error {
	return clearTables(ctx, s.db, "friends")
}

// PutFriendRequest upserts one request keyed by counterpart username.
func (s *Friends) PutFriendRequest(ctx context.Context, r models.FriendRequest) error {
	return putJSON(ctx, s.db,
		`INSERT OR REPLACE INTO friend_requests (username, data) VALUES (?, ?)`, r, r.Username)
}

// PutFriendRequests upserts a batch of requests in one transaction.
func (s *Friends) PutFriendRequests(ctx context.Context, reqs []models.FriendRequest) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	for _, r := range reqs {
		if err := putJSONTx(ctx, tx,
			`INSERT OR REPLACE INTO friend_requests (username, data) VALUES (?, ?)`, r, r.Username); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// FriendRequest loads the tracked request for one counterpart.
func (s *Friends) FriendRequest(ctx context.Context, username string) (models.FriendRequest, bool, error) {
	var r models.FriendRequest
	ok, err := getJSON(ctx, s.db, `SELECT data FROM friend_requests WHERE username = ?`, &r, username)
	return r, ok, err
}

// FriendRequests returns every cached request.
func (s *Friends) FriendRequests(ctx context.Context) ([]models.FriendRequest, error) {
	return allJSON[models.FriendRequest](ctx, s.db, `SELECT data FROM friend_requests ORDER BY username`)
}

// FilterFriendRequests returns the requests matching keep.
func (s *Friends) FilterFriendRequests(ctx context.Context, keep func(models.FriendRequest) bool) ([]models.FriendRequest, error) {
	return filterJSON(ctx, s.db, `SELECT data FROM friend_requests ORDER BY username`, keep)
}

// ClearFriendRequests empties the request collection.
func (s *Friends) ClearFriendRequests(ctx context.Context) error {
	return clearTables(ctx, s.db, "friend_requests")
}
