package service

import (
	"errors"
	"fmt"
)

// Taxonomy roots. Handlers branch on these with errors.Is to pick the HTTP
// status; the wrapped leaf errors below pick the user-facing message.
var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrState      = errors.New("invalid state")
	ErrForbidden  = errors.New("forbidden")
)

var (
	ErrInvalidQuantity     = fmt.Errorf("%w: invalid quantity", ErrValidation)
	ErrQuantityCapExceeded = fmt.Errorf("%w: quantity cap exceeded", ErrValidation)
	ErrInsufficientStock   = fmt.Errorf("%w: insufficient stock", ErrConflict)
	ErrProductUnavailable  = fmt.Errorf("%w: product unavailable", ErrValidation)
	ErrProductNotFound     = fmt.Errorf("%w: product", ErrNotFound)
	ErrItemNotFound        = fmt.Errorf("%w: cart item", ErrNotFound)
	ErrOrderNotFound       = fmt.Errorf("%w: order", ErrNotFound)
	ErrUserNotFound        = fmt.Errorf("%w: user", ErrNotFound)
	ErrAddressNotFound     = fmt.Errorf("%w: address", ErrNotFound)

	ErrEmptyCart               = fmt.Errorf("%w: empty cart", ErrValidation)
	ErrShippingAddressRequired = fmt.Errorf("%w: shipping address required", ErrValidation)
	ErrInvalidShippingAddress  = fmt.Errorf("%w: invalid shipping address", ErrValidation)

	ErrInvalidStateForOperation     = fmt.Errorf("%w: operation not allowed in current status", ErrState)
	ErrCannotCancelPaidOrder        = fmt.Errorf("%w: cannot cancel a paid order", ErrState)
	ErrOnlyPendingOrdersCancellable = fmt.Errorf("%w: only pending orders can be cancelled", ErrState)
)
