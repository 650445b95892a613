package httpserver

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/maastudio/storefront/internal/models"
	"github.com/maastudio/storefront/internal/repo"
	"github.com/maastudio/storefront/internal/service"
)

type testEnv struct {
	DB       *gorm.DB
	Repo     *repo.GormRepo
	Echo     *echo.Echo
	Cart     *CartHTTP
	Order    *OrderHTTP
	Product  *ProductHTTP
	Address  *AddressHTTP
	Wishlist *WishlistHTTP
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	r := &repo.GormRepo{DB: db}
	inv := &service.InventoryService{Repo: r}
	cartSvc := &service.CartService{Repo: r}
	checkoutSvc := &service.CheckoutService{Repo: r, Inventory: inv, TaxRate: 0.21}
	orderSvc := &service.OrderService{Repo: r, Inventory: inv}
	catalogSvc := &service.CatalogService{Repo: r}
	addressSvc := &service.AddressService{Repo: r}
	wishlistSvc := &service.WishlistService{Repo: r, Cart: cartSvc}

	return &testEnv{
		DB:       db,
		Repo:     r,
		Echo:     echo.New(),
		Cart:     &CartHTTP{Svc: cartSvc},
		Order:    &OrderHTTP{Checkout: checkoutSvc, Svc: orderSvc},
		Product:  &ProductHTTP{Svc: catalogSvc},
		Address:  &AddressHTTP{Svc: addressSvc},
		Wishlist: &WishlistHTTP{Svc: wishlistSvc},
	}
}

func (env *testEnv) seedUser(t *testing.T, role string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     "user-" + uuid.NewString()[:8],
		Email:        uuid.NewString()[:8] + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, env.DB.Create(user).Error)
	return user
}

func (env *testEnv) seedProduct(t *testing.T, name string, price float64, stock int) *models.Product {
	t.Helper()

	p := &models.Product{
		Name:           name,
		Price:          price,
		Stock:          stock,
		IsActive:       true,
		TrackInventory: true,
	}
	require.NoError(t, env.DB.Create(p).Error)
	return p
}

// doJSON builds a request/recorder pair with the user already authenticated
// the way the auth middleware would leave it.
func (env *testEnv) doJSON(t *testing.T, method, target string, body any, user *models.User) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	var reader *strings.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.Echo.NewContext(req, rec)
	if user != nil {
		c.Set("user_id", user.ID.String())
		c.Set("role", user.Role)
	}
	return rec, c
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func errorMessage(t *testing.T, err error) string {
	t.Helper()

	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %T", err)
	raw, merr := json.Marshal(httpErr.Message)
	require.NoError(t, merr)
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body.Message
}

func errorStatus(t *testing.T, err error) int {
	t.Helper()

	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %T", err)
	return httpErr.Code
}
