package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWishlistService(t *testing.T) *WishlistService {
	t.Helper()
	r := newTestRepo(t)
	return &WishlistService{Repo: r, Cart: &CartService{Repo: r}}
}

func TestWishlistAddAndList(t *testing.T) {
	t.Parallel()

	svc := newWishlistService(t)
	ctx := context.Background()
	user := seedUser(t, svc.Repo, "user")
	p := seedProduct(t, svc.Repo, "deseado", 99, 3)

	_, err := svc.Add(ctx, user.ID, p.ID)
	require.NoError(t, err)

	// No duplicates.
	_, err = svc.Add(ctx, user.ID, p.ID)
	assert.ErrorIs(t, err, ErrConflict)

	list, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, p.ID, list[0].ProductID)

	found, err := svc.Contains(ctx, user.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestWishlistAddGuards(t *testing.T) {
	t.Parallel()

	svc := newWishlistService(t)
	ctx := context.Background()
	user := seedUser(t, svc.Repo, "user")
	p := seedProduct(t, svc.Repo, "retirado", 50, 3)
	require.NoError(t, svc.Repo.DB.Model(p).Update("is_active", false).Error)

	_, err := svc.Add(ctx, user.ID, p.ID)
	assert.ErrorIs(t, err, ErrProductUnavailable)

	_, err = svc.Add(ctx, user.ID, uuid.New())
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestWishlistToggle(t *testing.T) {
	t.Parallel()

	svc := newWishlistService(t)
	ctx := context.Background()
	user := seedUser(t, svc.Repo, "user")
	p := seedProduct(t, svc.Repo, "alternado", 80, 3)

	wished, err := svc.Toggle(ctx, user.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, wished)

	wished, err = svc.Toggle(ctx, user.ID, p.ID)
	require.NoError(t, err)
	assert.False(t, wished)

	list, err := svc.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.Toggle(ctx, user.ID, uuid.New())
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestWishlistRemove(t *testing.T) {
	t.Parallel()

	svc := newWishlistService(t)
	ctx := context.Background()
	user := seedUser(t, svc.Repo, "user")
	p := seedProduct(t, svc.Repo, "pasajero", 30, 3)

	_, err := svc.Add(ctx, user.ID, p.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, user.ID, p.ID))
	assert.ErrorIs(t, svc.Remove(ctx, user.ID, p.ID), ErrItemNotFound)
}

func TestWishlistMoveToCart(t *testing.T) {
	t.Parallel()

	svc := newWishlistService(t)
	ctx := context.Background()
	user := seedUser(t, svc.Repo, "user")
	p := seedProduct(t, svc.Repo, "migrado", 75, 3)

	_, err := svc.Add(ctx, user.ID, p.ID)
	require.NoError(t, err)

	item, err := svc.MoveToCart(ctx, user.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)

	found, err := svc.Contains(ctx, user.ID, p.ID)
	require.NoError(t, err)
	assert.False(t, found)

	view, err := svc.Cart.View(ctx, user.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, view.Data, 1)
	assert.Equal(t, p.ID, view.Data[0].Product.ID)
}

func TestWishlistMoveToCartOutOfStock(t *testing.T) {
	t.Parallel()

	svc := newWishlistService(t)
	ctx := context.Background()
	user := seedUser(t, svc.Repo, "user")
	p := seedProduct(t, svc.Repo, "agotado", 75, 0)

	_, err := svc.Add(ctx, user.ID, p.ID)
	require.NoError(t, err)

	// The cart's own stock check blocks the move; the wish stays.
	_, err = svc.MoveToCart(ctx, user.ID, p.ID)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	found, err := svc.Contains(ctx, user.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, found)
}
