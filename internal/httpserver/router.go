package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mwauth "github.com/maastudio/storefront/internal/middleware/auth"
)

type Deps struct {
	AuthHandler     *AuthHTTP
	ProductHandler  *ProductHTTP
	CartHandler     *CartHTTP
	OrderHandler    *OrderHTTP
	AddressHandler  *AddressHTTP
	WishlistHandler *WishlistHTTP
	UserHandler     *UserHTTP
	JWTSecret       []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMW := &mwauth.Middleware{JWTSecret: d.JWTSecret}
	api := e.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/refresh", d.AuthHandler.Refresh)
	auth.POST("/logout", d.AuthHandler.Logout)

	products := api.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.POST("", d.ProductHandler.CreateProduct, authMW.RequireAdmin)
	products.PATCH("/:id", d.ProductHandler.PatchProduct, authMW.RequireAdmin)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct, authMW.RequireAdmin)

	categories := api.Group("/categories")
	categories.GET("", d.ProductHandler.ListCategories)
	categories.POST("", d.ProductHandler.CreateCategory, authMW.RequireAdmin)
	categories.DELETE("/:id", d.ProductHandler.DeleteCategory, authMW.RequireAdmin)

	subcategories := api.Group("/subcategories")
	subcategories.GET("", d.ProductHandler.ListSubcategories)
	subcategories.POST("", d.ProductHandler.CreateSubcategory, authMW.RequireAdmin)
	subcategories.DELETE("/:id", d.ProductHandler.DeleteSubcategory, authMW.RequireAdmin)

	cart := api.Group("/cart", authMW.RequireLogin)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("/items", d.CartHandler.AddItem)
	cart.PATCH("/items/:productId", d.CartHandler.UpdateItem)
	cart.DELETE("/items/:productId", d.CartHandler.RemoveItem)
	cart.DELETE("", d.CartHandler.Clear)

	orders := api.Group("/orders", authMW.RequireLogin)
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("", d.OrderHandler.ListMine)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.POST("/:id/confirm", d.OrderHandler.ConfirmOrder)
	orders.POST("/:id/cancel", d.OrderHandler.CancelOrder)

	adminOrders := api.Group("/admin/orders", authMW.RequireAdmin)
	adminOrders.GET("", d.OrderHandler.ListAll)
	adminOrders.GET("/awaiting-shipping-cost", d.OrderHandler.AwaitingShippingCost)
	adminOrders.GET("/statistics", d.OrderHandler.Statistics)
	adminOrders.GET("/by-number/:orderNumber", d.OrderHandler.SearchByNumber)
	adminOrders.GET("/:id/history", d.OrderHandler.History)
	adminOrders.PATCH("/:id/shipping-cost", d.OrderHandler.SetShippingCost)
	adminOrders.PATCH("/:id/status", d.OrderHandler.UpdateStatus)

	adminUsers := api.Group("/admin/users", authMW.RequireAdmin)
	adminUsers.GET("", d.UserHandler.ListUsers)
	adminUsers.GET("/:id", d.UserHandler.GetUser)
	adminUsers.PATCH("/:id/role", d.UserHandler.UpdateUserRole)

	addresses := api.Group("/addresses", authMW.RequireLogin)
	addresses.POST("", d.AddressHandler.Create)
	addresses.GET("", d.AddressHandler.List)
	addresses.GET("/:id", d.AddressHandler.Get)
	addresses.PUT("/:id", d.AddressHandler.Update)
	addresses.DELETE("/:id", d.AddressHandler.Delete)

	wishlist := api.Group("/wishlist", authMW.RequireLogin)
	wishlist.GET("", d.WishlistHandler.List)
	wishlist.POST("/:productId", d.WishlistHandler.Add)
	wishlist.GET("/:productId", d.WishlistHandler.Contains)
	wishlist.DELETE("/:productId", d.WishlistHandler.Remove)
	wishlist.POST("/:productId/toggle", d.WishlistHandler.Toggle)
	wishlist.POST("/:productId/move-to-cart", d.WishlistHandler.MoveToCart)
}
