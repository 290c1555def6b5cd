package router

import (
	"catalogo/biz/handler"
	"catalogo/biz/middleware"

	"github.com/cloudwego/hertz/pkg/app/server"
)

// RegisterProductRoutes configures the HTTP routes for the product API.
// Mutating routes pass through the optional distributed write lock.
func RegisterProductRoutes(r *server.Hertz, h *handler.ProductHandler) {
	if h == nil {
		return
	}

	products := r.Group("/products")
	products.GET("", h.List)
	products.GET("/:id", h.Get)

	writeMws := middleware.WriteLockMw()
	products.POST("", append(writeMws, h.Create)...)
	products.PUT("/:id", append(writeMws, h.Update)...)
	products.DELETE("/:id", append(writeMws, h.Delete)...)

	r.GET("/ping", handler.Ping)
}
