package storefront

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/guonaihong/gout"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/talkincode/productcatalog/internal/domain"
)

// ProductLister fetches products, optionally filtered by category.
type ProductLister interface {
	ListProducts(ctx context.Context, category string) ([]domain.Product, error)
}

// Client consumes the catalog list endpoint over HTTP.
type Client struct {
	baseURL string
	timeout time.Duration
}

var _ ProductLister = (*Client)(nil)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// NewClient creates a client for the API rooted at baseURL, e.g. http://host:3000/api
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), timeout: timeout}
}

func (c *Client) ListProducts(ctx context.Context, category string) ([]domain.Product, error) {
	var (
		body []byte
		code int
	)

	req := gout.GET(c.baseURL + "/products").WithContext(ctx)
	if c.timeout > 0 {
		req = req.SetTimeout(c.timeout)
	}
	if category != "" {
		req = req.SetQuery(gout.H{"category": category})
	}
	if err := req.Code(&code).BindBody(&body).Do(); err != nil {
		return nil, errors.Wrap(err, "fetch products")
	}

	if code < 200 || code >= 300 {
		var failure struct {
			Error string `json:"error"`
		}
		// error bodies are best effort
		if json.Unmarshal(body, &failure) != nil || failure.Error == "" {
			return nil, errors.New(http.StatusText(code))
		}
		return nil, errors.New(failure.Error)
	}

	var products []domain.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}
