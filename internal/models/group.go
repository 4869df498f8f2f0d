package models

// Group is a named group chat. Membership lives on the owning Conversation;
// Master is exactly one user and never appears in Manager.
type Group struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Conversation int64    `json:"conversation"`
	Master       string   `json:"master"`
	Manager      []string `json:"manager"`
	Notice       []int64  `json:"notice"`
}

// IsManager reports whether username is a manager of the group.
func (g Group) IsManager(username string) bool {
	for _, m := range g.Manager {
		if m == username {
			return true
		}
	}
	return false
}

// GroupRequest is a pending/processed membership request for a group.
type GroupRequest struct {
	Group     int64  `json:"group"`
	Sender    string `json:"sender"`
	Nickname  string `json:"nickname"`
	Email     string `json:"email"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
