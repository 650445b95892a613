package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maastudio/storefront/internal/models"
	"github.com/maastudio/storefront/internal/transport"
)

func (env *testEnv) addToCart(t *testing.T, user *models.User, p *models.Product, qty int) {
	t.Helper()

	_, c := env.doJSON(t, http.MethodPost, "/api/v1/cart/items", transport.AddToCartRequest{
		ProductID: p.ID,
		Quantity:  qty,
	}, user)
	require.NoError(t, env.Cart.AddItem(c))
}

func TestOrderHandlerCheckoutPickup(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	user := env.seedUser(t, "user")
	p := env.seedProduct(t, "teclado", 100, 10)
	env.addToCart(t, user, p, 2)

	rec, c := env.doJSON(t, http.MethodPost, "/api/v1/orders", transport.CheckoutRequest{
		DeliveryType: models.DeliveryTypePickup,
	}, user)
	require.NoError(t, env.Order.CreateOrder(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	order := decodeBody[models.Order](t, rec)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.InDelta(t, 242.0, order.Total, 0.001)
	assert.NotEmpty(t, order.OrderNumber)
}

func TestOrderHandlerCheckoutEmptyCart(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	user := env.seedUser(t, "user")

	_, c := env.doJSON(t, http.MethodPost, "/api/v1/orders", transport.CheckoutRequest{
		DeliveryType: models.DeliveryTypePickup,
	}, user)
	err := env.Order.CreateOrder(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, errorStatus(t, err))
	assert.Equal(t, "El carrito está vacío.", errorMessage(t, err))
}

func TestOrderHandlerCancelFlow(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	user := env.seedUser(t, "user")
	p := env.seedProduct(t, "cancelable", 60, 10)
	env.addToCart(t, user, p, 3)

	rec, c := env.doJSON(t, http.MethodPost, "/api/v1/orders", transport.CheckoutRequest{
		DeliveryType: models.DeliveryTypePickup,
	}, user)
	require.NoError(t, env.Order.CreateOrder(c))
	order := decodeBody[models.Order](t, rec)

	rec, c = env.doJSON(t, http.MethodPost, "/api/v1/orders/"+order.ID.String()+"/cancel", nil, user)
	c.SetParamNames("id")
	c.SetParamValues(order.ID.String())
	require.NoError(t, env.Order.CancelOrder(c))
	require.Equal(t, http.StatusOK, rec.Code)

	out := decodeBody[transport.CancelOrderResponse](t, rec)
	assert.Equal(t, models.OrderStatusCancelled, out.Order.Status)
	assert.Empty(t, out.Warnings)

	var got models.Product
	require.NoError(t, env.DB.First(&got, "id = ?", p.ID).Error)
	assert.Equal(t, 10, got.Stock)

	// A second cancel is rejected with the pending-only message.
	_, c = env.doJSON(t, http.MethodPost, "/api/v1/orders/"+order.ID.String()+"/cancel", nil, user)
	c.SetParamNames("id")
	c.SetParamValues(order.ID.String())
	err := env.Order.CancelOrder(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, errorStatus(t, err))
	assert.Equal(t, "Solo puedes cancelar órdenes pendientes.", errorMessage(t, err))
}

func TestOrderHandlerShippingCostFlow(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	user := env.seedUser(t, "user")
	admin := env.seedUser(t, "admin")
	p := env.seedProduct(t, "enviable", 200, 5)

	addr := &models.Address{
		UserID:     user.ID,
		FullName:   "Juan Pérez",
		Phone:      "099123456",
		Country:    "Uruguay",
		State:      "Montevideo",
		City:       "Montevideo",
		PostalCode: "11200",
		Line1:      "Av. 18 de Julio 1234",
	}
	require.NoError(t, env.DB.Create(addr).Error)

	env.addToCart(t, user, p, 1)
	rec, c := env.doJSON(t, http.MethodPost, "/api/v1/orders", transport.CheckoutRequest{
		DeliveryType:      models.DeliveryTypeDelivery,
		ShippingAddressID: &addr.ID,
	}, user)
	require.NoError(t, env.Order.CreateOrder(c))
	order := decodeBody[models.Order](t, rec)
	require.Equal(t, models.OrderStatusAwaitingShippingCost, order.Status)

	rec, c = env.doJSON(t, http.MethodPatch, "/api/v1/admin/orders/"+order.ID.String()+"/shipping-cost", transport.SetShippingCostRequest{
		ShippingCost: 20,
	}, admin)
	c.SetParamNames("id")
	c.SetParamValues(order.ID.String())
	require.NoError(t, env.Order.SetShippingCost(c))
	require.Equal(t, http.StatusOK, rec.Code)

	priced := decodeBody[models.Order](t, rec)
	assert.Equal(t, models.OrderStatusShippingCostSet, priced.Status)
	assert.InDelta(t, 262.0, priced.Total, 0.001)

	rec, c = env.doJSON(t, http.MethodPost, "/api/v1/orders/"+order.ID.String()+"/confirm", nil, user)
	c.SetParamNames("id")
	c.SetParamValues(order.ID.String())
	require.NoError(t, env.Order.ConfirmOrder(c))
	require.Equal(t, http.StatusOK, rec.Code)

	confirmed := decodeBody[models.Order](t, rec)
	assert.Equal(t, models.OrderStatusConfirmed, confirmed.Status)
}

func TestOrderHandlerForbiddenAccess(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	user := env.seedUser(t, "user")
	stranger := env.seedUser(t, "user")
	p := env.seedProduct(t, "ajeno", 40, 10)
	env.addToCart(t, user, p, 1)

	rec, c := env.doJSON(t, http.MethodPost, "/api/v1/orders", transport.CheckoutRequest{
		DeliveryType: models.DeliveryTypePickup,
	}, user)
	require.NoError(t, env.Order.CreateOrder(c))
	order := decodeBody[models.Order](t, rec)

	_, c = env.doJSON(t, http.MethodGet, "/api/v1/orders/"+order.ID.String(), nil, stranger)
	c.SetParamNames("id")
	c.SetParamValues(order.ID.String())
	err := env.Order.GetOrder(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, errorStatus(t, err))
	assert.Equal(t, "No tienes permisos suficientes.", errorMessage(t, err))
}
