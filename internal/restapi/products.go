package restapi

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/productcatalog/internal/catalog"
	"github.com/talkincode/productcatalog/internal/webserver"
)

type productHandler struct {
	svc catalog.Service
}

// RegisterProductRoutes registers the catalog endpoints on the echo server
func RegisterProductRoutes(srv *webserver.WebServer, svc catalog.Service) {
	h := &productHandler{svc: svc}
	srv.ApiGET("/products", h.listProducts)
	srv.ApiGET("/products/category/:category", h.listProductsByCategory)
	srv.ApiPOST("/products", h.createProduct)
}

func (h *productHandler) listProducts(c echo.Context) error {
	return h.list(c, c.QueryParam("category"))
}

func (h *productHandler) listProductsByCategory(c echo.Context) error {
	return h.list(c, pathParam(c, "category"))
}

func (h *productHandler) list(c echo.Context, category string) error {
	products, err := h.svc.List(c.Request().Context(), category)
	if err != nil {
		code, msg := catalog.StatusFor(err, catalog.ErrFetch)
		return fail(c, code, msg)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *productHandler) createProduct(c echo.Context) error {
	var payload catalog.CreateInput
	// decode regardless of Content-Type, like the original handlers did
	if err := c.Echo().JSONSerializer.Deserialize(c, &payload); err != nil {
		return fail(c, http.StatusBadRequest, catalog.MsgInvalidBody)
	}
	p, err := h.svc.Create(c.Request().Context(), payload)
	if err != nil {
		code, msg := catalog.StatusFor(err, catalog.ErrCreate)
		return fail(c, code, msg)
	}
	return c.JSON(http.StatusCreated, p)
}

func fail(c echo.Context, code int, msg string) error {
	return c.JSON(code, echo.Map{"error": msg})
}

// pathParam returns the unescaped value of a path parameter. echo keeps
// parameters escaped when the request path carried escapes.
func pathParam(c echo.Context, name string) string {
	raw := c.Param(name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
