package model

import "github.com/google/uuid"

// Principal identifies the authenticated caller. It is built once by the
// auth middleware and passed into services explicitly; services never read
// identity from ambient state.
type Principal struct {
	UserID uuid.UUID
	Roles  []string
}

func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (p Principal) IsAdmin() bool { return p.HasRole("admin") }
