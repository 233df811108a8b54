package storefront

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkincode/productcatalog/config"
	"github.com/talkincode/productcatalog/internal/catalog"
	"github.com/talkincode/productcatalog/internal/catalog/catalogtest"
	"github.com/talkincode/productcatalog/internal/domain"
	"github.com/talkincode/productcatalog/internal/restapi"
	"github.com/talkincode/productcatalog/internal/webserver"
)

type stubLister struct {
	byCategory map[string][]domain.Product
	all        []domain.Product
	err        error
	calls      []string
}

func (s *stubLister) ListProducts(_ context.Context, category string) ([]domain.Product, error) {
	s.calls = append(s.calls, category)
	if s.err != nil {
		return nil, s.err
	}
	if category == "" {
		return s.all, nil
	}
	return s.byCategory[category], nil
}

func product(name, category string, price float64, available bool, variants ...string) domain.Product {
	return domain.Product{Name: name, Category: category, Price: price, Available: available, Variants: variants}
}

func TestDistinctCategories(t *testing.T) {
	products := []domain.Product{
		product("a", "Sports", 1, true),
		product("b", "Electronics", 1, true),
		product("c", "Sports", 1, true),
		product("d", "sports", 1, true),
	}
	assert.Equal(t, []string{"Sports", "Electronics", "sports"}, DistinctCategories(products))
	assert.Equal(t, []string{}, DistinctCategories(nil))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$99.99", FormatPrice(99.99))
	assert.Equal(t, "$0.00", FormatPrice(0))
	assert.Equal(t, "$12.50", FormatPrice(12.5))
	assert.Equal(t, "$10.00", FormatPrice(9.999))
}

func TestAvailabilityLabel(t *testing.T) {
	assert.Equal(t, "In Stock", AvailabilityLabel(true))
	assert.Equal(t, "Out of Stock", AvailabilityLabel(false))
}

func TestCategoriesComeFromLastUnfilteredFetch(t *testing.T) {
	lister := &stubLister{
		all: []domain.Product{
			product("Smart Watch", "Electronics", 249.99, true),
			product("Yoga Mat", "Sports", 39.99, true),
		},
		byCategory: map[string][]domain.Product{
			"Sports": {product("Yoga Mat", "Sports", 39.99, true)},
		},
	}
	sf := New(lister)
	ctx := context.Background()

	state := sf.Load(ctx, "")
	assert.Equal(t, []string{"Electronics", "Sports"}, state.Categories)
	assert.Len(t, state.Cards, 2)

	// a filtered fetch keeps the options of the unfiltered one
	state = sf.Load(ctx, "Sports")
	assert.Equal(t, []string{"Electronics", "Sports"}, state.Categories)
	assert.Equal(t, "Sports", state.Selected)
	require.Len(t, state.Cards, 1)
	assert.Equal(t, "Yoga Mat", state.Cards[0].Name)

	// new categories only show up after the next unfiltered fetch
	lister.all = append(lister.all, product("Mug", "Home", 9.99, true))
	state = sf.Load(ctx, "Sports")
	assert.Equal(t, []string{"Electronics", "Sports"}, state.Categories)
	state = sf.Load(ctx, "")
	assert.Equal(t, []string{"Electronics", "Sports", "Home"}, state.Categories)

	assert.Equal(t, []string{"", "Sports", "Sports", ""}, lister.calls)
}

func TestLoadErrorAndEmptyStates(t *testing.T) {
	sf := New(&stubLister{err: errors.New("Failed to fetch products")})
	state := sf.Load(context.Background(), "")
	assert.Equal(t, "Failed to fetch products", state.Err)
	assert.False(t, state.Empty())

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, state))
	assert.Contains(t, buf.String(), "Error: Failed to fetch products")

	sf = New(&stubLister{all: []domain.Product{}})
	state = sf.Load(context.Background(), "")
	assert.True(t, state.Empty())

	buf.Reset()
	require.NoError(t, Render(&buf, state))
	assert.Contains(t, buf.String(), "No products found")

	buf.Reset()
	require.NoError(t, Render(&buf, ViewState{Loading: true}))
	assert.Contains(t, buf.String(), "Loading products...")
	assert.NotContains(t, buf.String(), "No products found")
}

func TestRenderCards(t *testing.T) {
	imageURL := "https://via.placeholder.com/300x200?text=Speaker"
	speaker := product("Bluetooth Speaker", "Electronics", 59.99, false, "Black", "White", "Red")
	speaker.ImageURL = &imageURL
	sf := New(&stubLister{all: []domain.Product{
		product("Coffee Maker", "Home & Kitchen", 79.99, true, "Black", "Silver"),
		speaker,
	}})

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sf.Load(context.Background(), "")))
	html := buf.String()

	assert.Contains(t, html, "Coffee Maker")
	assert.Contains(t, html, "Home &amp; Kitchen")
	assert.Contains(t, html, "$79.99")
	assert.Contains(t, html, "In Stock")
	assert.Contains(t, html, "Out of Stock")
	assert.Contains(t, html, `<span class="tag">Silver</span>`)
	assert.Contains(t, html, `<option value="Electronics">Electronics</option>`)
	assert.Contains(t, html, "text=Speaker")
}

func TestClientAgainstEchoBinding(t *testing.T) {
	svc, repo := catalogtest.NewService(t)
	_, err := catalog.Seed(context.Background(), repo)
	require.NoError(t, err)

	cfg := *config.DefaultAppConfig
	srv := webserver.NewWebServer(&cfg)
	restapi.RegisterProductRoutes(srv, svc)
	api := httptest.NewServer(srv.Echo())
	defer api.Close()

	client := NewClient(api.URL+"/api/", 5*time.Second)

	all, err := client.ListProducts(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 6)

	kitchen, err := client.ListProducts(context.Background(), "Home & Kitchen")
	require.NoError(t, err)
	require.Len(t, kitchen, 1)
	assert.Equal(t, "Coffee Maker", kitchen[0].Name)

	none, err := client.ListProducts(context.Background(), "Toys")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestClientSurfacesErrorMessage(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to fetch products"}`))
	}))
	defer api.Close()

	_, err := NewClient(api.URL+"/api", time.Second).ListProducts(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch products", err.Error())
}

func TestClientRejectsMalformedSuccessBody(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer api.Close()

	products, err := NewClient(api.URL+"/api", time.Second).ListProducts(context.Background(), "")
	require.Error(t, err)
	assert.Nil(t, products)
	assert.Contains(t, err.Error(), "decode products")
}

func TestClientFallsBackToStatusText(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`upstream down`))
	}))
	defer api.Close()

	_, err := NewClient(api.URL+"/api", time.Second).ListProducts(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, "Bad Gateway", err.Error())
}

func TestHandle(t *testing.T) {
	sf := New(&stubLister{
		all:        []domain.Product{product("Yoga Mat", "Sports", 39.99, true, "Purple")},
		byCategory: map[string][]domain.Product{"Sports": {product("Yoga Mat", "Sports", 39.99, true, "Purple")}},
	})
	e := echo.New()
	e.GET("/", sf.Handle)

	for _, target := range []string{"/", "/?category=Sports"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, target)
		assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
		assert.Contains(t, rec.Body.String(), "Yoga Mat", target)
	}
}
