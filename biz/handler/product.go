package handler

import (
	"context"
	"errors"

	"catalogo/biz/service"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// ProductHandler exposes the product CRUD endpoints.
type ProductHandler struct {
	service *service.Service
}

func NewProductHandler(svc *service.Service) *ProductHandler {
	return &ProductHandler{service: svc}
}

// Create handles POST /products: multipart name, description and an optional
// image file.
func (h *ProductHandler) Create(ctx context.Context, c *app.RequestContext) {
	name := string(c.FormValue("name"))
	description := string(c.FormValue("description"))

	file, err := readImageFile(c)
	if err != nil {
		hlog.CtxErrorf(ctx, "create product: read upload: %v", err)
		writeInternalError(c, "Error al crear el producto")
		return
	}

	view, err := h.service.Create(ctx, name, description, file)
	if err != nil {
		hlog.CtxErrorf(ctx, "create product: %v", err)
		writeInternalError(c, "Error al crear el producto")
		return
	}

	c.JSON(consts.StatusCreated, view)
}

// List handles GET /products.
func (h *ProductHandler) List(ctx context.Context, c *app.RequestContext) {
	views, err := h.service.List(ctx)
	if err != nil {
		hlog.CtxErrorf(ctx, "list products: %v", err)
		writeInternalError(c, "Error al obtener productos")
		return
	}
	c.JSON(consts.StatusOK, views)
}

// Get handles GET /products/:id.
func (h *ProductHandler) Get(ctx context.Context, c *app.RequestContext) {
	id, ok := parseID(c)
	if !ok {
		writeNotFound(c)
		return
	}

	view, err := h.service.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			writeNotFound(c)
			return
		}
		hlog.CtxErrorf(ctx, "get product %d: %v", id, err)
		writeInternalError(c, "Error al obtener producto")
		return
	}
	c.JSON(consts.StatusOK, view)
}

// Update handles PUT /products/:id with the same multipart form as Create.
func (h *ProductHandler) Update(ctx context.Context, c *app.RequestContext) {
	id, ok := parseID(c)
	if !ok {
		writeNotFound(c)
		return
	}

	name := string(c.FormValue("name"))
	description := string(c.FormValue("description"))

	file, err := readImageFile(c)
	if err != nil {
		hlog.CtxErrorf(ctx, "update product %d: read upload: %v", id, err)
		writeInternalError(c, "Error al actualizar producto")
		return
	}

	view, err := h.service.Update(ctx, id, name, description, file)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			writeNotFound(c)
			return
		}
		hlog.CtxErrorf(ctx, "update product %d: %v", id, err)
		writeInternalError(c, "Error al actualizar producto")
		return
	}
	c.JSON(consts.StatusOK, view)
}

// Delete handles DELETE /products/:id.
func (h *ProductHandler) Delete(ctx context.Context, c *app.RequestContext) {
	id, ok := parseID(c)
	if !ok {
		writeNotFound(c)
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			writeNotFound(c)
			return
		}
		hlog.CtxErrorf(ctx, "delete product %d: %v", id, err)
		writeInternalError(c, "Error al eliminar producto")
		return
	}
	c.JSON(consts.StatusOK, map[string]string{"message": "Producto eliminado"})
}
