package fiberapi

import (
	"fmt"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/talkincode/productcatalog/config"
	"github.com/talkincode/productcatalog/internal/catalog"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// NewApp creates the fiber application with the shared middleware stack.
func NewApp(cfg config.FiberConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout:          time.Duration(cfg.WriteTimeout) * time.Second,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler:          errorHandler,
	})

	allow := cfg.AllowOrigins
	if allow == "" {
		allow = "*"
	}
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: allow,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(requestLogger)
	return app
}

// Addr returns the listen address of the fiber binding
func Addr(cfg config.FiberConfig) string {
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
}

// RegisterRoutes registers the catalog endpoints on app
func RegisterRoutes(app *fiber.App, svc catalog.Service) {
	h := &productHandler{svc: svc}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Backend API is running!")
	})

	products := app.Group("/api/products")
	products.Get("/", h.listProducts)
	products.Get("/category/:category", h.listProductsByCategory)
	products.Post("/", h.createProduct)
}

type productHandler struct {
	svc catalog.Service
}

func (h *productHandler) listProducts(c *fiber.Ctx) error {
	return h.list(c, c.Query("category"))
}

func (h *productHandler) listProductsByCategory(c *fiber.Ctx) error {
	raw := c.Params("category")
	category, err := url.PathUnescape(raw)
	if err != nil {
		category = raw
	}
	return h.list(c, category)
}

func (h *productHandler) list(c *fiber.Ctx, category string) error {
	products, err := h.svc.List(c.UserContext(), category)
	if err != nil {
		code, msg := catalog.StatusFor(err, catalog.ErrFetch)
		return c.Status(code).JSON(fiber.Map{"error": msg})
	}
	return c.JSON(products)
}

func (h *productHandler) createProduct(c *fiber.Ctx) error {
	var payload catalog.CreateInput
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": catalog.MsgInvalidBody})
	}
	p, err := h.svc.Create(c.UserContext(), payload)
	if err != nil {
		code, msg := catalog.StatusFor(err, catalog.ErrCreate)
		return c.Status(code).JSON(fiber.Map{"error": msg})
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	zap.L().Debug("fiber request",
		zap.String("method", c.Method()),
		zap.String("path", c.OriginalURL()),
		zap.Int("status", c.Response().StatusCode()),
		zap.Duration("latency", time.Since(start)))
	return err
}

// errorHandler keeps every error response in the {"error": message} shape.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal Server Error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		msg = e.Message
	}
	if code >= fiber.StatusInternalServerError {
		zap.L().Error("fiber request failed", zap.String("path", c.OriginalURL()), zap.Error(err))
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}
