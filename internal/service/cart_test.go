package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maastudio/storefront/internal/models"
)

func newCartService(t *testing.T) (*CartService, *InventoryService) {
	t.Helper()
	r := newTestRepo(t)
	return &CartService{Repo: r}, &InventoryService{Repo: r}
}

func TestCartAddItem(t *testing.T) {
	t.Parallel()

	svc, _ := newCartService(t)
	ctx := context.Background()
	user := seedUser(t, svc.Repo, "user")
	p := seedProduct(t, svc.Repo, "teclado", 50, 10)

	item, err := svc.AddItem(ctx, user.ID, p.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	// Adding the same product again merges into the existing line.
	item, err = svc.AddItem(ctx, user.ID, p.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)

	var count int64
	require.NoError(t, svc.Repo.DB.Model(&models.CartItem{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCartAddItemStockCheckCountsExistingLine(t *testing.T) {
	t.Parallel()

	svc, _ := newCartService(t)
	ctx := context.Background()
	user := seedUser(t, svc.Repo, "user")
	p := seedProduct(t, svc.Repo, "mouse", 25, 5)

	_, err := svc.AddItem(ctx, user.ID, p.ID, 4)
	require.NoError(t, err)

	// 4 already in the cart, only 1 more fits in stock.
	_, err = svc.AddItem(ctx, user.ID, p.ID, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Contains(t, err.Error(), "disponible: 5")

	_, err = svc.AddItem(ctx, user.ID, p.ID, 1)
	require.NoError(t, err)
}

func TestCartAddItemQuantityCap(t *testing.T) {
	t.Parallel()

	svc, _ := newCartService(t)
	svc.MaxPerProduct = 10
	ctx := context.Background()
	user := seedUser(t, svc.Repo, "user")
	p := seedProduct(t, svc.Repo, "monitor", 300, 100)

	_, err := svc.AddItem(ctx, user.ID, p.ID, 8)
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, user.ID, p.ID, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQuantityCapExceeded)
	assert.Contains(t, err.Error(), "máximo 10 unidades")

	// The line stays at its pre-failure quantity.
	cart, err := svc.GetOrCreate(ctx, user.ID)
	require.NoError(t, err)
	item, err := svc.Repo.GetCartItem(ctx, cart.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, item.Quantity)
}

func TestCartAddItemCapWinsOverStock(t *testing.T) {
	t.Parallel()

	svc, _ := newCartService(t)
	svc.MaxPerProduct = 10
	ctx := context.Background()
	user := seedUser(t, svc.Repo, "user")
	p := seedProduct(t, svc.Repo, "teclado", 45, 6)

	_, err := svc.AddItem(ctx, user.ID, p.ID, 5)
	require.NoError(t, err)

	// 5+6 breaks both the cap and the stock; the cap is reported because it
	// holds no matter how much stock arrives later.
	_, err = svc.AddItem(ctx, user.ID, p.ID, 6)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQuantityCapExceeded)
	assert.NotErrorIs(t, err, ErrInsufficientStock)
}

func TestCartAddItemValidation(t *testing.T) {
	t.Parallel()

	svc, _ := newCartService(t)
	ctx := context.Background()
	user := seedUser(t, svc.Repo, "user")
	p := seedProduct(t, svc.Repo, "cable", 5, 10)

	_, err := svc.AddItem(ctx, user.ID, p.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.AddItem(ctx, user.ID, uuid.New(), 1)
	assert.ErrorIs(t, err, ErrProductNotFound)

	require.NoError(t, svc.Repo.DB.Model(p).Update("is_active", false).Error)
	_, err = svc.AddItem(ctx, user.ID, p.ID, 1)
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestCartUpdateItemReplacesQuantity(t *testing.T) {
	t.Parallel()

	svc, _ := newCartService(t)
	ctx := context.Background()
	user := seedUser(t, svc.Repo, "user")
	p := seedProduct(t, svc.Repo, "auriculares", 80, 10)

	_, err := svc.AddItem(ctx, user.ID, p.ID, 5)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateItem(ctx, user.ID, p.ID, 2))

	cart, err := svc.GetOrCreate(ctx, user.ID)
	require.NoError(t, err)
	item, err := svc.Repo.GetCartItem(ctx, cart.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
}

func TestCartUpdateItemZeroRemovesLine(t *testing.T) {
	t.Parallel()

	svc, _ := newCartService(t)
	ctx := context.Background()
	user := seedUser(t, svc.Repo, "user")
	p := seedProduct(t, svc.Repo, "parlante", 60, 10)

	_, err := svc.AddItem(ctx, user.ID, p.ID, 3)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateItem(ctx, user.ID, p.ID, 0))

	cart, err := svc.GetOrCreate(ctx, user.ID)
	require.NoError(t, err)
	_, err = svc.Repo.GetCartItem(ctx, cart.ID, p.ID)
	require.Error(t, err)
}

func TestCartUpdateItemMissingLine(t *testing.T) {
	t.Parallel()

	svc, _ := newCartService(t)
	ctx := context.Background()
	user := seedUser(t, svc.Repo, "user")
	p := seedProduct(t, svc.Repo, "webcam", 45, 10)

	err := svc.UpdateItem(ctx, user.ID, p.ID, 2)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestCartRemoveItem(t *testing.T) {
	t.Parallel()

	svc, _ := newCartService(t)
	ctx := context.Background()
	user := seedUser(t, svc.Repo, "user")
	p := seedProduct(t, svc.Repo, "micrófono", 120, 10)

	_, err := svc.AddItem(ctx, user.ID, p.ID, 1)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveItem(ctx, user.ID, p.ID))
	assert.ErrorIs(t, svc.RemoveItem(ctx, user.ID, p.ID), ErrItemNotFound)
}

func TestCartClearIsIdempotent(t *testing.T) {
	t.Parallel()

	svc, _ := newCartService(t)
	ctx := context.Background()
	user := seedUser(t, svc.Repo, "user")
	p := seedProduct(t, svc.Repo, "hub usb", 30, 10)

	_, err := svc.AddItem(ctx, user.ID, p.ID, 2)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, user.ID))
	require.NoError(t, svc.Clear(ctx, user.ID))

	view, err := svc.View(ctx, user.ID, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, view.Data)
	assert.Zero(t, view.TotalAmount)
}

func TestCartViewHidesInactiveProducts(t *testing.T) {
	t.Parallel()

	svc, _ := newCartService(t)
	ctx := context.Background()
	user := seedUser(t, svc.Repo, "user")
	active := seedProduct(t, svc.Repo, "activo", 10, 10)
	retired := seedProduct(t, svc.Repo, "retirado", 20, 10)

	_, err := svc.AddItem(ctx, user.ID, active.ID, 2)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, user.ID, retired.ID, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Repo.DB.Model(retired).Update("is_active", false).Error)

	view, err := svc.View(ctx, user.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, view.Data, 1)
	assert.Equal(t, active.ID, view.Data[0].Product.ID)
	assert.InDelta(t, 20.0, view.TotalAmount, 0.001)
}

func TestCartViewTotalsArePageScoped(t *testing.T) {
	t.Parallel()

	svc, _ := newCartService(t)
	ctx := context.Background()
	user := seedUser(t, svc.Repo, "user")

	for i := 0; i < 3; i++ {
		p := seedProduct(t, svc.Repo, "producto", 10, 10)
		_, err := svc.AddItem(ctx, user.ID, p.ID, 1)
		require.NoError(t, err)
	}

	view, err := svc.View(ctx, user.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Total)
	assert.Equal(t, 2, view.TotalPages)
	require.Len(t, view.Data, 2)
	// Totals cover the two visible lines, not all three.
	assert.InDelta(t, 20.0, view.TotalAmount, 0.001)

	view, err = svc.View(ctx, user.ID, 2, 2)
	require.NoError(t, err)
	require.Len(t, view.Data, 1)
	assert.InDelta(t, 10.0, view.TotalAmount, 0.001)
}

func TestCartViewIsReadOnly(t *testing.T) {
	t.Parallel()

	svc, _ := newCartService(t)
	ctx := context.Background()
	user := seedUser(t, svc.Repo, "user")
	p := seedProduct(t, svc.Repo, "repetible", 15, 10)

	_, err := svc.AddItem(ctx, user.ID, p.ID, 2)
	require.NoError(t, err)

	first, err := svc.View(ctx, user.ID, 1, 10)
	require.NoError(t, err)
	second, err := svc.View(ctx, user.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
