package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkincode/productcatalog/config"
	"github.com/talkincode/productcatalog/internal/catalog"
	"github.com/talkincode/productcatalog/internal/catalog/catalogtest"
)

type testProvider struct {
	cfg *config.AppConfig
	svc catalog.Service
}

func (p testProvider) Config() *config.AppConfig { return p.cfg }
func (p testProvider) Catalog() catalog.Service  { return p.svc }

func TestStorefrontBaseURL(t *testing.T) {
	cfg := *config.DefaultAppConfig
	assert.Equal(t, "http://127.0.0.1:3000/api", storefrontBaseURL(&cfg))

	cfg.Web.Host = "10.0.0.5"
	cfg.Web.Port = 8080
	assert.Equal(t, "http://10.0.0.5:8080/api", storefrontBaseURL(&cfg))

	cfg.Storefront.ApiBaseURL = "https://shop.example/api"
	assert.Equal(t, "https://shop.example/api", storefrontBaseURL(&cfg))
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "catalogd dev")
}

func TestSeedCommandAgainstSqlite(t *testing.T) {
	t.Setenv("CATALOG_CONFIG", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("CATALOG_DB_TYPE", "sqlite")
	t.Setenv("CATALOG_DB_NAME", "catalog.db")
	t.Setenv("CATALOG_SYSTEM_WORKER_DIR", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"seed", "--reset"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Database seeded successfully (6 products)")
}

func TestNewServersShareCatalog(t *testing.T) {
	svc, _ := catalogtest.NewService(t)
	cfg := *config.DefaultAppConfig
	cfg.Storefront.Enabled = false
	srv, fiberApp := newServers(testProvider{cfg: &cfg, svc: svc})

	body := `{"name":"Mug","price":5,"category":"Home"}`
	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	resp, err := fiberApp.Test(httptest.NewRequest(http.MethodGet, "/api/products?category=Home", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `"name":"Mug"`)

	rec = httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
