// Package authz holds the admin-rights predicate shared by every journal
// mutation path. It is stateless; callers re-evaluate it per request.
package authz

import "github.com/google/uuid"

// IsAdmin reports whether principal appears in the journal's admin list.
// An absent principal (uuid.Nil) never has admin rights.
func IsAdmin(principal uuid.UUID, admins []uuid.UUID) bool {
	if principal == uuid.Nil {
		return false
	}
	for _, id := range admins {
		if id == principal {
			return true
		}
	}
	return false
}
