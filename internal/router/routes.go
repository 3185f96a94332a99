package router

import (
	"github.com/anupamdas/gokart/pkg/checkout"
	"github.com/anupamdas/gokart/pkg/invoice"
	"github.com/anupamdas/gokart/pkg/mongo"
	"github.com/anupamdas/gokart/pkg/redis"
)

// API bundles the handlers' dependencies. Everything is constructed once in
// main and injected; handlers hold no package-level clients.
type API struct {
	Checkout  *checkout.Service
	Cart      *redis.CartStore
	Catalog   *mongo.CatalogStore
	Customers *mongo.CustomerStore
	Invoices  invoice.Builder
	Renderer  invoice.Renderer
}

func InitializeRoutes(a *API) {
	api := Router.Group("/api")
	api.Use(SessionMiddleware())
	{
		api.GET("/health", a.HealthCheck)

		products := api.Group("/products")
		{
			products.GET("", a.GetAllProducts)
			products.GET("/:id/:slug", a.GetProductDetail)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", a.GetAllCategories)
		}

		cart := api.Group("/cart")
		{
			cart.GET("", a.GetCart)
			cart.POST("/items", a.AddToCart)
			cart.DELETE("/items/:productId", a.RemoveFromCart)
			cart.DELETE("", a.ClearCart)
		}

		api.POST("/checkout", a.PostCheckout)

		payment := api.Group("/payment")
		{
			payment.POST("/verify", a.VerifyPayment)
		}

		orders := api.Group("/orders")
		{
			orders.GET("/:id", a.GetPaidOrder)
			orders.GET("/:id/invoice", a.DownloadInvoice)
		}

		customers := api.Group("/customers")
		{
			customers.POST("", a.CreateCustomer)
		}

		analytics := api.Group("/analytics")
		{
			analytics.GET("/sales", a.GetSalesAnalytics)
			analytics.GET("/ai/sales-report", a.GenerateAISalesReport)
		}
	}
}
