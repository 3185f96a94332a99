package router

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The list endpoints must be reachable at their exact paths, not via a
// trailing-slash redirect.
func TestRoutesRegisteredWithoutTrailingSlash(t *testing.T) {
	t.Setenv("ENV", "production")
	InitEngine()
	InitializeRoutes(&API{})

	registered := make(map[string]bool)
	for _, route := range Router.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		http.MethodGet + " /api/health",
		http.MethodGet + " /api/products",
		http.MethodGet + " /api/products/:id/:slug",
		http.MethodGet + " /api/categories",
		http.MethodGet + " /api/cart",
		http.MethodPost + " /api/cart/items",
		http.MethodDelete + " /api/cart/items/:productId",
		http.MethodDelete + " /api/cart",
		http.MethodPost + " /api/checkout",
		http.MethodPost + " /api/payment/verify",
		http.MethodGet + " /api/orders/:id",
		http.MethodGet + " /api/orders/:id/invoice",
		http.MethodPost + " /api/customers",
		http.MethodGet + " /api/analytics/sales",
		http.MethodGet + " /api/analytics/ai/sales-report",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}

	for key := range registered {
		assert.NotRegexp(t, `/$`, key, "trailing-slash registration: %s", key)
	}
}
