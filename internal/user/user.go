package user

import "time"

// Values accepted by the users table check constraints.
const (
	RoleMember    = "member"
	RoleAdmin     = "admin"
	RoleLibrarian = "librarian"

	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

// User is a library account. ID and the timestamps are assigned by the store
// on create; UpdatedAt strictly increases on every successful update.
type User struct {
	ID        int64      `json:"user_id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FullName  *string    `json:"full_name,omitempty"`
	Phone     *string    `json:"phone,omitempty"`
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
