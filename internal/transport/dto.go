package transport

import (
	"github.com/google/uuid"

	"github.com/maastudio/storefront/internal/models"
)

type AddToCartRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type CartLineProduct struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Image    string    `json:"image"`
	Price    float64   `json:"price"`
	Brand    string    `json:"brand"`
	Weight   float64   `json:"weight"`
	Length   float64   `json:"length"`
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	IsActive bool      `json:"is_active"`
}

type CartLine struct {
	ID       uuid.UUID       `json:"id"`
	Product  CartLineProduct `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal float64         `json:"subtotal"`
}

// CartView is a page of the cart. The amount/weight/dimension totals cover the
// returned page only, not the whole cart.
type CartView struct {
	Data        []CartLine `json:"data"`
	Total       int        `json:"total"`
	Page        int        `json:"page"`
	Limit       int        `json:"limit"`
	TotalPages  int        `json:"total_pages"`
	TotalAmount float64    `json:"total_amount"`
	TotalWeight float64    `json:"total_weight"`
	TotalLength float64    `json:"total_length"`
	TotalWidth  float64    `json:"total_width"`
	TotalHeight float64    `json:"total_height"`
}

type CheckoutRequest struct {
	DeliveryType      models.DeliveryType `json:"delivery_type"`
	ShippingAddressID *uuid.UUID          `json:"shipping_address_id,omitempty"`
	Notes             string              `json:"notes,omitempty"`
	IdempotencyKey    string              `json:"idempotency_key,omitempty"`
}

type SetShippingCostRequest struct {
	ShippingCost float64 `json:"shipping_cost"`
}

type UpdateOrderStatusRequest struct {
	Status        models.OrderStatus   `json:"status,omitempty"`
	PaymentStatus models.PaymentStatus `json:"payment_status,omitempty"`
}

type PaginatedOrders struct {
	Data       []models.Order `json:"data"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

type PaginatedProducts struct {
	Data       []models.Product `json:"data"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

type CancelOrderResponse struct {
	Order    *models.Order `json:"order"`
	Warnings []string      `json:"warnings,omitempty"`
}

type CreateProductRequest struct {
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Price          float64    `json:"price"`
	Stock          int        `json:"stock"`
	TrackInventory *bool      `json:"track_inventory,omitempty"`
	Brand          string     `json:"brand"`
	Image          string     `json:"image"`
	Weight         float64    `json:"weight"`
	Length         float64    `json:"length"`
	Width          float64    `json:"width"`
	Height         float64    `json:"height"`
	SubcategoryID  *uuid.UUID `json:"subcategory_id,omitempty"`
}

type CreateAddressRequest struct {
	FullName      string `json:"full_name"`
	Phone         string `json:"phone"`
	AltPhone      string `json:"alt_phone,omitempty"`
	Email         string `json:"email,omitempty"`
	Country       string `json:"country"`
	State         string `json:"state"`
	City          string `json:"city"`
	PostalCode    string `json:"postal_code"`
	Line1         string `json:"line1"`
	Line2         string `json:"line2,omitempty"`
	Reference     string `json:"reference,omitempty"`
	DeliveryNotes string `json:"delivery_notes,omitempty"`
	IsPrincipal   bool   `json:"is_principal"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type PaginatedUsers struct {
	Data       []models.User `json:"data"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"total_pages"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role"`
}
