package domain

import "time"

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

type User struct {
	ID         uint   `json:"id"`
	Email      string `json:"email"`
	Password   string `json:"-"`
	Name       string `json:"name"`
	RollNumber string `json:"roll_number"`
	Branch     string `json:"branch"`
	Year       int    `json:"year"`
	Phone      string `json:"phone"`
	Role       string `json:"role"`
	// RegisteredEvents is the joined-events view of the registration relation.
	RegisteredEvents []uint    `json:"registered_events"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ProfileUpdate carries the fields a member may change on their own profile.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Name   *string
	Phone  *string
	Branch *string
}

// UserSummary is the public projection of a user embedded in other resources.
type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
