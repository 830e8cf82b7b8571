package models

// Role is the closed set of admin roles. Authorization checks go through
// membership in this set, never raw string comparison.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

func (r Role) Known() bool {
	switch r {
	case RoleAdmin, RoleViewer:
		return true
	}
	return false
}

func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Known()
}
