// Package policy decides what a caller may do with a ledger row given who
// owns it. It is pure: no storage access, no side effects, so the ownership
// rules live in exactly one place instead of being copy-pasted per endpoint.
package policy

import "github.com/rehanFauzan/uangbro-api/internal/models"

// Decision is the set of operations permitted for one (caller, owner) pair.
type Decision struct {
	CanRead   bool
	CanWrite  bool
	CanDelete bool
}

// Decide applies the ownership rules.
//
//	caller    owner     read   write/delete
//	anonymous legacy    yes    no
//	anonymous owned     no     no
//	user U    legacy    yes    yes (write claims the row for U)
//	user U    owned(U)  yes    yes
//	user U    owned(V)  no     no
//
// Legacy means ownerID == nil: the row was written before anyone logged in.
// Any authenticated user may read legacy rows so they can find and claim
// them; writing one claims it as a side effect.
func Decide(caller *models.User, ownerID *uint) Decision {
	if ownerID == nil {
		if caller == nil {
			return Decision{CanRead: true}
		}
		return Decision{CanRead: true, CanWrite: true, CanDelete: true}
	}
	if caller != nil && caller.ID == *ownerID {
		return Decision{CanRead: true, CanWrite: true, CanDelete: true}
	}
	return Decision{}
}
