// Package catalogtest holds test helpers shared by the catalog HTTP bindings:
// an in-memory database and the HTTP contract every binding must satisfy.
package catalogtest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/talkincode/productcatalog/internal/catalog"
	"github.com/talkincode/productcatalog/internal/domain"
)

// NewDB opens a migrated in-memory sqlite database closed at test cleanup.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(domain.Tables...))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// NewService returns a service backed by NewDB, and its repository.
func NewService(t testing.TB) (*catalog.CatalogService, *catalog.GormRepository) {
	repo := catalog.NewGormRepository(NewDB(t))
	return catalog.NewService(repo), repo
}

// BrokenRepository fails every call.
type BrokenRepository struct{}

var ErrBroken = errors.New("connection refused")

func (BrokenRepository) Find(context.Context, string) ([]domain.Product, error) {
	return nil, ErrBroken
}

func (BrokenRepository) Create(context.Context, *domain.Product) error {
	return ErrBroken
}

func (BrokenRepository) CreateBatch(context.Context, []domain.Product) error {
	return ErrBroken
}

// Doer performs one request against a binding and returns status and body.
type Doer func(t *testing.T, method, path, body string) (int, []byte)

// Binding builds a binding serving svc.
type Binding func(t *testing.T, svc catalog.Service) Doer

func decodeProducts(t *testing.T, body []byte) []domain.Product {
	t.Helper()
	var products []domain.Product
	require.NoError(t, json.Unmarshal(body, &products), string(body))
	return products
}

func decodeProduct(t *testing.T, body []byte) domain.Product {
	t.Helper()
	var p domain.Product
	require.NoError(t, json.Unmarshal(body, &p), string(body))
	return p
}

func decodeError(t *testing.T, body []byte) string {
	t.Helper()
	var e struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &e), string(body))
	return e.Error
}

func names(products []domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	sort.Strings(out)
	return out
}

// RunContract runs the HTTP contract against the binding.
func RunContract(t *testing.T, binding Binding) {
	t.Run("empty list", func(t *testing.T) {
		svc, _ := NewService(t)
		do := binding(t, svc)

		code, body := do(t, http.MethodGet, "/api/products", "")
		assert.Equal(t, http.StatusOK, code)
		assert.JSONEq(t, `[]`, string(body))

		code, body = do(t, http.MethodGet, "/api/products/category/Nothing", "")
		assert.Equal(t, http.StatusOK, code)
		assert.JSONEq(t, `[]`, string(body))
	})

	t.Run("create applies defaults", func(t *testing.T) {
		svc, _ := NewService(t)
		do := binding(t, svc)

		code, body := do(t, http.MethodPost, "/api/products", `{"name":"Mug","price":9.99,"category":"Home"}`)
		require.Equal(t, http.StatusCreated, code, string(body))

		p := decodeProduct(t, body)
		assert.NotZero(t, p.ID)
		assert.Equal(t, "Mug", p.Name)
		assert.Equal(t, 9.99, p.Price)
		assert.Equal(t, "Home", p.Category)
		assert.Equal(t, []string{}, p.Variants)
		assert.True(t, p.Available)
		assert.Nil(t, p.ImageURL)
		assert.False(t, p.CreatedAt.IsZero())
		assert.False(t, p.UpdatedAt.IsZero())

		var raw map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &raw))
		assert.Equal(t, []interface{}{}, raw["variants"])
		assert.Contains(t, raw, "imageUrl")
		assert.Contains(t, raw, "createdAt")
	})

	t.Run("create keeps explicit fields", func(t *testing.T) {
		svc, _ := NewService(t)
		do := binding(t, svc)

		code, body := do(t, http.MethodPost, "/api/products",
			`{"name":"Lamp","price":"12.50","category":"Home","variants":["Red","Blue"],"available":false,"imageUrl":"https://img.example/lamp.png"}`)
		require.Equal(t, http.StatusCreated, code, string(body))

		created := decodeProduct(t, body)
		assert.Equal(t, 12.5, created.Price)
		assert.Equal(t, []string{"Red", "Blue"}, created.Variants)
		assert.False(t, created.Available)
		require.NotNil(t, created.ImageURL)
		assert.Equal(t, "https://img.example/lamp.png", *created.ImageURL)

		// round trip through List
		code, body = do(t, http.MethodGet, "/api/products?category=Home", "")
		require.Equal(t, http.StatusOK, code)
		listed := decodeProducts(t, body)
		require.Len(t, listed, 1)
		got := listed[0]
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, created.Name, got.Name)
		assert.Equal(t, created.Price, got.Price)
		assert.Equal(t, created.Category, got.Category)
		assert.Equal(t, created.Variants, got.Variants)
		assert.Equal(t, created.Available, got.Available)
		assert.Equal(t, created.ImageURL, got.ImageURL)
	})

	t.Run("create rejects missing fields", func(t *testing.T) {
		svc, _ := NewService(t)
		do := binding(t, svc)

		for _, payload := range []string{
			`{"name":"Mug","category":"Home"}`,
			`{"name":"Mug","price":null,"category":"Home"}`,
			`{"name":"Mug","price":"","category":"Home"}`,
			`{"price":9.99,"category":"Home"}`,
			`{"name":"","price":9.99,"category":"Home"}`,
			`{"name":"Mug","price":9.99}`,
			`{}`,
		} {
			code, body := do(t, http.MethodPost, "/api/products", payload)
			assert.Equal(t, http.StatusBadRequest, code, payload)
			assert.Equal(t, catalog.MsgRequiredFields, decodeError(t, body), payload)
		}

		code, body := do(t, http.MethodGet, "/api/products", "")
		require.Equal(t, http.StatusOK, code)
		assert.Empty(t, decodeProducts(t, body))
	})

	t.Run("create accepts zero price", func(t *testing.T) {
		svc, _ := NewService(t)
		do := binding(t, svc)

		code, body := do(t, http.MethodPost, "/api/products", `{"name":"Sticker","price":0,"category":"Freebies"}`)
		require.Equal(t, http.StatusCreated, code, string(body))
		assert.Equal(t, 0.0, decodeProduct(t, body).Price)
	})

	t.Run("create rejects non numeric price", func(t *testing.T) {
		svc, _ := NewService(t)
		do := binding(t, svc)

		for _, payload := range []string{
			`{"name":"Mug","price":"abc","category":"Home"}`,
			`{"name":"Mug","price":"NaN","category":"Home"}`,
			`{"name":"Mug","price":true,"category":"Home"}`,
			`{"name":"Mug","price":[1],"category":"Home"}`,
		} {
			code, body := do(t, http.MethodPost, "/api/products", payload)
			assert.Equal(t, http.StatusBadRequest, code, payload)
			assert.Equal(t, catalog.MsgInvalidPrice, decodeError(t, body), payload)
		}
	})

	t.Run("create rejects malformed body", func(t *testing.T) {
		svc, _ := NewService(t)
		do := binding(t, svc)

		code, body := do(t, http.MethodPost, "/api/products", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, catalog.MsgInvalidBody, decodeError(t, body))
	})

	t.Run("filter seeded catalog", func(t *testing.T) {
		svc, repo := NewService(t)
		n, err := catalog.Seed(context.Background(), repo)
		require.NoError(t, err)
		require.Equal(t, 6, n)
		do := binding(t, svc)

		code, body := do(t, http.MethodGet, "/api/products", "")
		require.Equal(t, http.StatusOK, code)
		assert.Len(t, decodeProducts(t, body), 6)

		electronics := []string{"Bluetooth Speaker", "Smart Watch", "Wireless Headphones"}
		for _, path := range []string{
			"/api/products?category=Electronics",
			"/api/products/category/Electronics",
		} {
			code, body = do(t, http.MethodGet, path, "")
			require.Equal(t, http.StatusOK, code, path)
			assert.Equal(t, electronics, names(decodeProducts(t, body)), path)
		}

		for _, path := range []string{
			"/api/products?category=Home%20%26%20Kitchen",
			"/api/products/category/Home%20%26%20Kitchen",
		} {
			code, body = do(t, http.MethodGet, path, "")
			require.Equal(t, http.StatusOK, code, path)
			assert.Equal(t, []string{"Coffee Maker"}, names(decodeProducts(t, body)), path)
		}

		// exact, case-sensitive match only
		for _, path := range []string{
			"/api/products?category=electronics",
			"/api/products?category=Elec",
			"/api/products/category/Toys",
		} {
			code, body = do(t, http.MethodGet, path, "")
			require.Equal(t, http.StatusOK, code, path)
			assert.JSONEq(t, `[]`, string(body), path)
		}

		// an empty filter is no filter
		code, body = do(t, http.MethodGet, "/api/products?category=", "")
		require.Equal(t, http.StatusOK, code)
		assert.Len(t, decodeProducts(t, body), 6)
	})

	t.Run("storage failures", func(t *testing.T) {
		do := binding(t, catalog.NewService(BrokenRepository{}))

		for _, path := range []string{"/api/products", "/api/products?category=Sports", "/api/products/category/Sports"} {
			code, body := do(t, http.MethodGet, path, "")
			assert.Equal(t, http.StatusInternalServerError, code, path)
			assert.Equal(t, "Failed to fetch products", decodeError(t, body), path)
		}

		code, body := do(t, http.MethodPost, "/api/products", `{"name":"Mug","price":9.99,"category":"Home"}`)
		assert.Equal(t, http.StatusInternalServerError, code)
		assert.Equal(t, "Failed to create product", decodeError(t, body))
		assert.NotContains(t, string(body), ErrBroken.Error())
	})
}
