// Package auth centralizes the owner/worker role checks guarding every
// mutating workflow operation.
package auth

import (
	"github.com/LiamF-2261667/fruckr-sub001/internal/domain"
	"github.com/LiamF-2261667/fruckr-sub001/internal/foodtruck"
)

// Identity is the authenticated caller as derived from the request.
type Identity struct {
	UID   string
	Email string
}

type Role int

const (
	// RoleOwner requires the caller to own the foodtruck.
	RoleOwner Role = iota
	// RoleWorker requires worker membership; the owner always qualifies.
	RoleWorker
	// RoleAnyMember is the union of owner and workers.
	RoleAnyMember
)

func (r Role) String() string {
	switch r {
	case RoleOwner:
		return "owner"
	case RoleWorker:
		return "worker"
	default:
		return "member"
	}
}

// CanActOnFoodtruck reports whether id may act on the foodtruck in the
// required role. It returns an authorization error on failure so callers
// can short-circuit before applying any state change.
func CanActOnFoodtruck(id Identity, ft *foodtruck.Foodtruck, workers []foodtruck.Worker, required Role) error {
	if id.UID == "" {
		return domain.Authorization("not signed in")
	}

	isOwner := id.UID == ft.OwnerUID
	isWorker := isOwner
	if !isWorker {
		for _, w := range workers {
			if w.UID == id.UID {
				isWorker = true
				break
			}
		}
	}

	switch required {
	case RoleOwner:
		if isOwner {
			return nil
		}
	case RoleWorker, RoleAnyMember:
		if isWorker {
			return nil
		}
	}
	return domain.Authorization("%s role required for this foodtruck", required)
}
