package access

import (
	"arts-market/internal/apperr"
	"arts-market/internal/domain/users"
)

/*
	Capability policy
	-----------------
	One place answers "may this actor do this to this resource". Handlers
	consult Authorize before any mutating call instead of re-implementing
	role checks per route.
*/

type Action string

const (
	ActionRead     Action = "read"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionTransfer Action = "transfer"
	ActionManage   Action = "manage" // taxonomy, roles, user administration
)

type Actor struct {
	ID   string
	Role string
}

type Resource struct {
	OwnerID string
}

// Can reports whether the actor may perform action on resource.
// Admins may do anything; owners may act on their own resources;
// reads are open to any authenticated actor.
func Can(actor Actor, resource Resource, action Action) bool {
	if actor.Role == users.RoleAdmin {
		return true
	}
	switch action {
	case ActionRead:
		return true
	case ActionManage:
		return false
	default:
		return actor.ID != "" && actor.ID == resource.OwnerID
	}
}

// Authorize is Can with the standard error attached.
func Authorize(actor Actor, resource Resource, action Action) error {
	if !Can(actor, resource, action) {
		return apperr.New(apperr.Forbidden, "You are not allowed to perform this action")
	}
	return nil
}
