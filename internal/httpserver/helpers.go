package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/maastudio/storefront/internal/authz"
	"github.com/maastudio/storefront/internal/service"
)

// GetActor reads the authenticated user from the echo context populated by the
// auth middleware.
func GetActor(c echo.Context) (authz.Actor, error) {
	v, _ := c.Get("user_id").(string)
	if v == "" {
		return authz.Actor{}, errors.New("unauthorized")
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return authz.Actor{}, errors.New("unauthorized")
	}
	role, _ := c.Get("role").(string)
	if role == "" {
		role = authz.RoleUser
	}
	return authz.Actor{ID: id, Role: role}, nil
}

// httpError maps service failures onto distinct, human-readable Spanish
// messages so clients can tell an empty cart from missing stock from a bad
// address. The technical detail rides along for debugging.
func httpError(err error) *echo.HTTPError {
	type body struct {
		Message string `json:"message"`
		Detail  string `json:"detail,omitempty"`
	}

	msg := ""
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, service.ErrEmptyCart):
		status, msg = http.StatusBadRequest, "El carrito está vacío."
	case errors.Is(err, service.ErrInvalidQuantity):
		status, msg = http.StatusBadRequest, "La cantidad debe ser al menos 1."
	case errors.Is(err, service.ErrQuantityCapExceeded):
		status, msg = http.StatusBadRequest, "Superaste el máximo de unidades por producto."
	case errors.Is(err, service.ErrProductUnavailable):
		status, msg = http.StatusBadRequest, "El producto no está disponible."
	case errors.Is(err, service.ErrInsufficientStock):
		status, msg = http.StatusConflict, "No hay suficiente stock disponible."
	case errors.Is(err, service.ErrShippingAddressRequired):
		status, msg = http.StatusBadRequest, "Se requiere una dirección de envío."
	case errors.Is(err, service.ErrInvalidShippingAddress):
		status, msg = http.StatusBadRequest, "La dirección de envío no es válida."
	case errors.Is(err, service.ErrItemNotFound):
		status, msg = http.StatusNotFound, "El producto no está en la lista."
	case errors.Is(err, service.ErrProductNotFound):
		status, msg = http.StatusNotFound, "Producto no encontrado."
	case errors.Is(err, service.ErrOrderNotFound):
		status, msg = http.StatusNotFound, "Orden no encontrada."
	case errors.Is(err, service.ErrUserNotFound):
		status, msg = http.StatusNotFound, "Usuario no encontrado."
	case errors.Is(err, service.ErrAddressNotFound):
		status, msg = http.StatusNotFound, "Dirección no encontrada."
	case errors.Is(err, service.ErrCannotCancelPaidOrder):
		status, msg = http.StatusConflict, "No se puede cancelar una orden pagada."
	case errors.Is(err, service.ErrOnlyPendingOrdersCancellable):
		status, msg = http.StatusConflict, "Solo puedes cancelar órdenes pendientes."
	case errors.Is(err, service.ErrInvalidStateForOperation):
		status, msg = http.StatusConflict, "La operación no es válida en el estado actual de la orden."
	case errors.Is(err, service.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, "Usuario o contraseña incorrectos."
	case errors.Is(err, service.ErrForbidden):
		status, msg = http.StatusForbidden, "No tienes permisos suficientes."
	case errors.Is(err, service.ErrValidation):
		status, msg = http.StatusBadRequest, "Datos inválidos."
	case errors.Is(err, service.ErrNotFound):
		status, msg = http.StatusNotFound, "No encontrado."
	case errors.Is(err, service.ErrConflict):
		status, msg = http.StatusConflict, "Conflicto con el estado actual."
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, body{Message: "Error interno."})
	}

	return echo.NewHTTPError(status, body{Message: msg, Detail: err.Error()})
}

func pageParams(c echo.Context) (int, int) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 10)
	return page, limit
}

func intQuery(c echo.Context, name string, def int) int {
	v := c.QueryParam(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func uuidParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
