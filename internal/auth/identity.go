package auth

import "strings"

// Role names granted through the token's role claim.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Identity is the authenticated caller: the token subject (an email) and
// the granted roles. It is threaded explicitly through call signatures;
// there is no ambient per-request security state.
type Identity struct {
	Email string
	Roles []string
}

// Anonymous reports whether no authenticated caller is present.
func (id *Identity) Anonymous() bool {
	return id == nil || id.Email == ""
}

// HasRole reports whether the identity carries the given role.
func (id *Identity) HasRole(role string) bool {
	if id == nil {
		return false
	}
	for _, r := range id.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the identity carries the admin role.
func (id *Identity) IsAdmin() bool {
	return id.HasRole(RoleAdmin)
}

// sameEmail compares two emails case-insensitively. Ownership comparisons
// are uniformly case-insensitive.
func sameEmail(a, b string) bool {
	return a != "" && strings.EqualFold(a, b)
}
