package handler

import (
	"context"
	"io"
	"strconv"

	"catalogo/biz/service"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// Ping is a liveness probe endpoint.
func Ping(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, map[string]string{"message": "pong"})
}

// parseID extracts the numeric product id from the route parameter.
// A non-numeric id behaves like a missing product.
func parseID(c *app.RequestContext) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// readImageFile extracts the optional multipart "image" field.
// Returns nil when the request carries no file.
func readImageFile(c *app.RequestContext) (*service.FileInput, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		// multipart field absent: the upload is optional
		return nil, nil
	}
	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return &service.FileInput{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func writeNotFound(c *app.RequestContext) {
	c.JSON(consts.StatusNotFound, map[string]string{"error": "Producto no encontrado"})
}

func writeInternalError(c *app.RequestContext, msg string) {
	c.JSON(consts.StatusInternalServerError, map[string]string{"error": msg})
}
