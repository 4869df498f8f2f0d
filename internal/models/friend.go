package models

// Request statuses as the backend spells them.
const (
	StatusPending = "Pending"
	StatusAccept  = "Accept"
	StatusReject  = "Reject"
)

// Request roles for friend requests.
const (
	RoleSender   = "sender"
	RoleReceiver = "receiver"
)

// Friend is one entry of the authenticated user's friend list. Tag is a
// free-form label assigned by the user.
type Friend struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Tag      string `json:"tag"`
}

// FriendRequest tracks the one outstanding request per counterpart username.
type FriendRequest struct {
	Username  string `json:"username"`
	Nickname  string `json:"nickname"`
	Email     string `json:"email"`
	Status    string `json:"status"`
	Role      string `json:"role"`
	Timestamp string `json:"timestamp"`
}

// UserInfo is the profile payload of get_userinfo and find_user.
type UserInfo struct {
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}
