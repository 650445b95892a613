package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/maastudio/storefront/internal/logging"
	"github.com/maastudio/storefront/internal/service"
	"github.com/maastudio/storefront/internal/transport"
)

type ProductHTTP struct {
	Svc *service.CatalogService
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	p, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		l.Warn("get_product_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	page, limit := pageParams(c)
	role, _ := c.Get("role").(string)
	out, err := h.Svc.ListProducts(ctx, role == "admin", page, limit)
	if err != nil {
		l.Error("list_products_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	p, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		l.Warn("create_product_error", "error", err)
		return httpError(err)
	}

	l.Info("product_created", "product_id", p.ID)
	return c.JSON(http.StatusCreated, p)
}

func (h *ProductHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.patch")

	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var fields map[string]any
	if err := c.Bind(&fields); err != nil {
		l.Warn("patch_product_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}
	// Only whitelisted columns reach the store.
	allowed := map[string]bool{
		"name": true, "description": true, "price": true, "stock": true,
		"is_active": true, "track_inventory": true, "brand": true, "image": true,
		"weight": true, "length": true, "width": true, "height": true,
	}
	for k := range fields {
		if !allowed[k] {
			delete(fields, k)
		}
	}

	p, err := h.Svc.UpdateProduct(ctx, id, fields)
	if err != nil {
		l.Warn("patch_product_error", "error", err)
		return httpError(err)
	}

	l.Info("product_updated", "product_id", p.ID)
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.DeactivateProduct(ctx, id); err != nil {
		l.Warn("delete_product_error", "error", err)
		return httpError(err)
	}

	l.Info("product_deactivated", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHTTP) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()

	out, err := h.Svc.ListCategories(ctx)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.create")

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	cat, err := h.Svc.CreateCategory(ctx, req.Name, req.Description)
	if err != nil {
		l.Warn("create_category_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, cat)
}

func (h *ProductHTTP) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteCategory(ctx, id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHTTP) ListSubcategories(c echo.Context) error {
	ctx := c.Request().Context()

	categoryID := uuid.Nil
	if v := c.QueryParam("categoryId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, "invalid categoryId")
		}
		categoryID = id
	}

	out, err := h.Svc.ListSubcategories(ctx, categoryID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHTTP) CreateSubcategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "subcategory.create")

	var req struct {
		CategoryID uuid.UUID `json:"category_id"`
		Name       string    `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	sub, err := h.Svc.CreateSubcategory(ctx, req.CategoryID, req.Name)
	if err != nil {
		l.Warn("create_subcategory_error", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, sub)
}

func (h *ProductHTTP) DeleteSubcategory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteSubcategory(ctx, id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
