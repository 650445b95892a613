package authz

import (
	"errors"

	"github.com/google/uuid"
)

var ErrForbidden = errors.New("forbidden")

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Actor struct {
	ID   uuid.UUID
	Role string
}

type Action string

const (
	ActionView            Action = "view"
	ActionMutate          Action = "mutate"
	ActionCancel          Action = "cancel"
	ActionConfirm         Action = "confirm"
	ActionSetShippingCost Action = "set_shipping_cost"
	ActionUpdateStatus    Action = "update_status"
	ActionListAll         Action = "list_all"
	ActionManageUsers     Action = "manage_users"
)

// Resource is whatever the action targets; OwnerID is uuid.Nil for
// admin-scoped resources that have no single owner.
type Resource struct {
	Kind    string
	OwnerID uuid.UUID
}

// Authorize is the single policy consulted before any state-changing call on
// carts and orders. Admins may do everything except actions that are
// customer-only by definition.
func Authorize(actor Actor, action Action, res Resource) error {
	switch action {
	case ActionSetShippingCost, ActionUpdateStatus, ActionListAll, ActionManageUsers:
		if actor.Role != RoleAdmin {
			return ErrForbidden
		}
		return nil
	case ActionCancel, ActionConfirm, ActionMutate:
		// Cancel/confirm are customer operations on their own resource.
		if actor.ID == res.OwnerID {
			return nil
		}
		return ErrForbidden
	case ActionView:
		if actor.Role == RoleAdmin || actor.ID == res.OwnerID {
			return nil
		}
		return ErrForbidden
	}
	return ErrForbidden
}
