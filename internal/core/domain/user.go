package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User models an identity in the credential store. Username is the
// principal carried in tokens; AuthorPseudonym is the display name stamped
// on books the user creates.
type User struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	AuthorPseudonym string    `json:"author_pseudonym"`
	PasswordHash    string    `json:"-"`
	Roles           []string  `json:"roles"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// HasRole reports whether the user's role set contains role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// ValidRole reports whether role is one of the known role names.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
