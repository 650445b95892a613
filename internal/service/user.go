package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maastudio/storefront/internal/authz"
	"github.com/maastudio/storefront/internal/models"
	"github.com/maastudio/storefront/internal/repo"
	"github.com/maastudio/storefront/internal/transport"
)

// UserService covers the admin side of account management. Registration and
// login live in AuthService; this one exists so admins can see who is
// registered and grant or revoke the admin role without touching the database.
type UserService struct {
	Repo *repo.GormRepo
}

func (s *UserService) ListUsers(ctx context.Context, actor authz.Actor, page, limit int) (*transport.PaginatedUsers, error) {
	if err := authz.Authorize(actor, authz.ActionManageUsers, authz.Resource{Kind: "user"}); err != nil {
		return nil, ErrForbidden
	}
	page, limit, offset := paginate(page, limit)
	users, total, err := s.Repo.ListUsers(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return &transport.PaginatedUsers{
		Data:       users,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// GetUser is admin-or-self: the resource owner is the requested user.
func (s *UserService) GetUser(ctx context.Context, actor authz.Actor, id uuid.UUID) (*models.User, error) {
	if err := authz.Authorize(actor, authz.ActionView, authz.Resource{Kind: "user", OwnerID: id}); err != nil {
		return nil, ErrForbidden
	}
	u, err := s.Repo.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// UpdateRole switches a user between the customer and admin roles. An admin
// may not change their own role; locking yourself out takes a second admin.
func (s *UserService) UpdateRole(ctx context.Context, actor authz.Actor, id uuid.UUID, role string) (*models.User, error) {
	if err := authz.Authorize(actor, authz.ActionManageUsers, authz.Resource{Kind: "user"}); err != nil {
		return nil, ErrForbidden
	}
	if role != authz.RoleUser && role != authz.RoleAdmin {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	if actor.ID == id {
		return nil, fmt.Errorf("%w: cannot change own role", ErrValidation)
	}

	u, err := s.Repo.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if u.Role == role {
		return u, nil
	}
	u.Role = role
	if err := s.Repo.SaveUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
