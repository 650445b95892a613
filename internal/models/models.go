package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"primaryKey"               json:"id"`
	Username     string    `gorm:"unique;not null"          json:"username"`
	Email        string    `gorm:"unique;not null"          json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Role         string    `gorm:"not null;default:user"    json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"      json:"id"`
	Token     string    `gorm:"unique;not null" json:"token"`
	UserID    uuid.UUID `gorm:"index;not null"  json:"user_id"`
	ExpiresAt time.Time `gorm:"not null"        json:"expires_at"`
	Revoked   bool      `gorm:"default:false"   json:"revoked"`
}

type Category struct {
	ID          uuid.UUID `gorm:"primaryKey"      json:"id"`
	Name        string    `gorm:"unique;not null" json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Subcategory struct {
	ID         uuid.UUID `gorm:"primaryKey"                               json:"id"`
	CategoryID uuid.UUID `gorm:"index;not null"                           json:"category_id"`
	Name       string    `gorm:"uniqueIndex:idx_category_subname;not null" json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

func (s *Subcategory) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type Product struct {
	ID             uuid.UUID  `gorm:"primaryKey"                json:"id"`
	Name           string     `gorm:"not null"                  json:"name"`
	Description    string     `json:"description"`
	Price          float64    `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock          int        `gorm:"not null;default:0;check:stock>=0" json:"stock"`
	IsActive       bool       `gorm:"not null;default:true"     json:"is_active"`
	TrackInventory bool       `gorm:"not null;default:true"     json:"track_inventory"`
	Brand          string     `json:"brand"`
	Image          string     `json:"image"`
	Weight         float64    `gorm:"type:decimal(10,2)"        json:"weight"`
	Length         float64    `gorm:"type:decimal(10,2)"        json:"length"`
	Width          float64    `gorm:"type:decimal(10,2)"        json:"width"`
	Height         float64    `gorm:"type:decimal(10,2)"        json:"height"`
	SubcategoryID  *uuid.UUID `gorm:"index"                     json:"subcategory_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type Address struct {
	ID             uuid.UUID `gorm:"primaryKey"     json:"id"`
	UserID         uuid.UUID `gorm:"index;not null" json:"user_id"`
	FullName       string    `gorm:"not null"       json:"full_name"`
	Phone          string    `gorm:"not null"       json:"phone"`
	AltPhone       string    `json:"alt_phone,omitempty"`
	Email          string    `json:"email,omitempty"`
	Country        string    `gorm:"not null"       json:"country"`
	State          string    `gorm:"not null"       json:"state"`
	City           string    `gorm:"not null"       json:"city"`
	PostalCode     string    `gorm:"not null"       json:"postal_code"`
	Line1          string    `gorm:"not null"       json:"line1"`
	Line2          string    `json:"line2,omitempty"`
	Reference      string    `json:"reference,omitempty"`
	DeliveryNotes  string    `json:"delivery_notes,omitempty"`
	IsPrincipal    bool      `gorm:"default:false"  json:"is_principal"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (a *Address) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Cart is created lazily on first access and is never deleted, only emptied.
type Cart struct {
	ID        uuid.UUID  `gorm:"primaryKey"           json:"id"`
	UserID    uuid.UUID  `gorm:"uniqueIndex;not null" json:"user_id"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CartItem struct {
	ID        uuid.UUID `gorm:"primaryKey"                                 json:"id"`
	CartID    uuid.UUID `gorm:"uniqueIndex:idx_cart_product;not null"      json:"cart_id"`
	ProductID uuid.UUID `gorm:"uniqueIndex:idx_cart_product;not null"      json:"product_id"`
	Quantity  int       `gorm:"not null;default:1;check:quantity>0"        json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type WishlistItem struct {
	ID        uuid.UUID `gorm:"primaryKey"                            json:"id"`
	UserID    uuid.UUID `gorm:"uniqueIndex:idx_user_wish;not null"    json:"user_id"`
	ProductID uuid.UUID `gorm:"uniqueIndex:idx_user_wish;not null"    json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (w *WishlistItem) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

type OrderStatus string

const (
	OrderStatusPending              OrderStatus = "pending"
	OrderStatusAwaitingShippingCost OrderStatus = "awaiting_shipping_cost"
	OrderStatusShippingCostSet      OrderStatus = "shipping_cost_set"
	OrderStatusConfirmed            OrderStatus = "confirmed"
	OrderStatusProcessing           OrderStatus = "processing"
	OrderStatusShipped              OrderStatus = "shipped"
	OrderStatusDelivered            OrderStatus = "delivered"
	OrderStatusCancelled            OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusAwaitingShippingCost, OrderStatusShippingCostSet,
		OrderStatusConfirmed, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusApproved  PaymentStatus = "approved"
	PaymentStatusRejected  PaymentStatus = "rejected"
	PaymentStatusCancelled PaymentStatus = "cancelled"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusApproved, PaymentStatusRejected,
		PaymentStatusCancelled, PaymentStatusRefunded:
		return true
	}
	return false
}

type DeliveryType string

const (
	DeliveryTypePickup   DeliveryType = "pickup"
	DeliveryTypeDelivery DeliveryType = "delivery"
)

// Order is a priced snapshot of a cart. After creation only status, payment
// status, shipping cost and their timestamp side-fields ever change.
type Order struct {
	ID                  uuid.UUID      `gorm:"primaryKey"                    json:"id"`
	OrderNumber         string         `gorm:"uniqueIndex;size:32;not null"  json:"order_number"`
	UserID              uuid.UUID      `gorm:"index;not null"                json:"user_id"`
	DeliveryType        DeliveryType   `gorm:"size:16;not null"              json:"delivery_type"`
	Subtotal            float64        `gorm:"type:decimal(10,2);not null"   json:"subtotal"`
	ShippingCost        float64        `gorm:"type:decimal(10,2);not null;default:0" json:"shipping_cost"`
	Tax                 float64        `gorm:"type:decimal(10,2);not null;default:0" json:"tax"`
	Total               float64        `gorm:"type:decimal(10,2);not null"   json:"total"`
	Status              OrderStatus    `gorm:"size:32;not null"              json:"status"`
	PaymentStatus       PaymentStatus  `gorm:"size:32;not null;default:pending" json:"payment_status"`
	ShippingAddressID   *uuid.UUID     `json:"shipping_address_id,omitempty"`
	ShippingSnapshot    datatypes.JSON `json:"shipping_snapshot,omitempty"`
	Notes               string         `gorm:"type:text"                     json:"notes,omitempty"`
	IdempotencyKey      *string        `gorm:"uniqueIndex;size:64"           json:"-"`
	ShippingCostSetAt   *time.Time     `json:"shipping_cost_set_at,omitempty"`
	CustomerConfirmedAt *time.Time     `json:"customer_confirmed_at,omitempty"`
	Items               []OrderItem    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderItem freezes unit price and product identity at purchase time so later
// catalog changes never alter historical orders.
type OrderItem struct {
	ID           uuid.UUID `gorm:"primaryKey"                  json:"id"`
	OrderID      uuid.UUID `gorm:"index;not null"              json:"order_id"`
	ProductID    uuid.UUID `gorm:"not null"                    json:"product_id"`
	ProductName  string    `gorm:"not null"                    json:"product_name"`
	ProductBrand string    `json:"product_brand,omitempty"`
	ProductImage string    `json:"product_image,omitempty"`
	Quantity     int       `gorm:"not null;check:quantity>0"   json:"quantity"`
	UnitPrice    float64   `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	TotalPrice   float64   `gorm:"type:decimal(10,2);not null" json:"total_price"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// OrderHistory is append-only, one row per explicit status transition.
type OrderHistory struct {
	ID          uuid.UUID   `gorm:"primaryKey"     json:"id"`
	OrderID     uuid.UUID   `gorm:"index;not null" json:"order_id"`
	OldStatus   OrderStatus `gorm:"size:32;not null" json:"old_status"`
	NewStatus   OrderStatus `gorm:"size:32;not null" json:"new_status"`
	ChangedByID uuid.UUID   `gorm:"not null"       json:"changed_by_id"`
	ChangedAt   time.Time   `gorm:"autoCreateTime" json:"changed_at"`
}

func (h *OrderHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// ShippingSnapshotFields is the frozen copy of the address an order ships to.
type ShippingSnapshotFields struct {
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Country    string `json:"country"`
	State      string `json:"state"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	Reference  string `json:"reference,omitempty"`
}

func All() []any {
	return []any{
		&User{}, &RefreshToken{},
		&Category{}, &Subcategory{}, &Product{},
		&Address{},
		&Cart{}, &CartItem{}, &WishlistItem{},
		&Order{}, &OrderItem{}, &OrderHistory{},
	}
}
