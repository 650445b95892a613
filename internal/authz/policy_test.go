package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	admin := Actor{ID: uuid.New(), Role: RoleAdmin}
	self := Actor{ID: owner, Role: RoleUser}
	stranger := Actor{ID: uuid.New(), Role: RoleUser}
	res := Resource{Kind: "order", OwnerID: owner}

	tests := []struct {
		name    string
		actor   Actor
		action  Action
		res     Resource
		allowed bool
	}{
		{"admin views any order", admin, ActionView, res, true},
		{"owner views own order", self, ActionView, res, true},
		{"stranger cannot view", stranger, ActionView, res, false},

		{"owner cancels own order", self, ActionCancel, res, true},
		{"admin cannot self-cancel for customer", admin, ActionCancel, res, false},
		{"stranger cannot cancel", stranger, ActionCancel, res, false},

		{"owner confirms own order", self, ActionConfirm, res, true},
		{"admin cannot confirm", admin, ActionConfirm, res, false},

		{"admin sets shipping cost", admin, ActionSetShippingCost, res, true},
		{"user cannot set shipping cost", self, ActionSetShippingCost, res, false},

		{"admin updates status", admin, ActionUpdateStatus, res, true},
		{"user cannot update status", self, ActionUpdateStatus, res, false},

		{"admin lists all", admin, ActionListAll, Resource{Kind: "order"}, true},
		{"user cannot list all", self, ActionListAll, Resource{Kind: "order"}, false},

		{"admin manages users", admin, ActionManageUsers, Resource{Kind: "user"}, true},
		{"user cannot manage users", self, ActionManageUsers, Resource{Kind: "user"}, false},

		{"unknown action denied", admin, Action("repaint"), res, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Authorize(tt.actor, tt.action, tt.res)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrForbidden)
			}
		})
	}
}
