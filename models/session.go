package models

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleOrganizer Role = "organizer"
	RoleCustomer  Role = "customer"
)

// Valid reports whether r is one of the roles the backend hands out.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOrganizer, RoleCustomer:
		return true
	}
	return false
}

// Session is the persisted identity record. A session written after sign-up
// only carries the role, so Email and UserDetailsID may be empty.
type Session struct {
	Email         string `json:"email,omitempty"`
	Role          Role   `json:"role"`
	UserDetailsID int64  `json:"userDetailsId,omitempty"`
}
