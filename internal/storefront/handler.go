// Package storefront renders the product grid page. It is a pure consumer
// of the catalog list endpoint.
package storefront

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

//go:embed templates/grid.html
var templatesFS embed.FS

var gridTemplate = template.Must(template.ParseFS(templatesFS, "templates/grid.html"))

// Storefront keeps the category options derived from the last unfiltered
// fetch. A filtered fetch leaves them unchanged.
type Storefront struct {
	lister ProductLister

	mu         sync.RWMutex
	categories []string
}

func New(lister ProductLister) *Storefront {
	return &Storefront{lister: lister}
}

// Load fetches the products for category ("" for all) and builds the view.
func (s *Storefront) Load(ctx context.Context, category string) ViewState {
	state := ViewState{Selected: category}

	products, err := s.lister.ListProducts(ctx, category)
	if err != nil {
		zap.L().Warn("storefront fetch failed", zap.String("category", category), zap.Error(err))
		state.Err = err.Error()
		state.Categories = s.Categories()
		return state
	}

	if category == "" {
		s.mu.Lock()
		s.categories = DistinctCategories(products)
		s.mu.Unlock()
	}
	state.Categories = s.Categories()
	state.Cards = toCards(products)
	return state
}

// Categories returns a copy of the current category options.
func (s *Storefront) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.categories))
	copy(out, s.categories)
	return out
}

// Render writes the grid page for state.
func Render(w *bytes.Buffer, state ViewState) error {
	return gridTemplate.Execute(w, state)
}

// Handle serves GET / with an optional ?category= filter.
func (s *Storefront) Handle(c echo.Context) error {
	state := s.Load(c.Request().Context(), c.QueryParam("category"))
	var buf bytes.Buffer
	if err := Render(&buf, state); err != nil {
		zap.L().Error("storefront render failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to render page")
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}
