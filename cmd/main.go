package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/anupamdas/gokart/internal/router"
	"github.com/anupamdas/gokart/pkg/ai"
	"github.com/anupamdas/gokart/pkg/checkout"
	"github.com/anupamdas/gokart/pkg/global"
	"github.com/anupamdas/gokart/pkg/invoice"
	"github.com/anupamdas/gokart/pkg/mongo"
	"github.com/anupamdas/gokart/pkg/payment"
	"github.com/anupamdas/gokart/pkg/redis"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	mongo.InitMongoDB()
	mongo.EnsureIndexesOnStartup()
	ai.InitializeAIService()

	keyID := os.Getenv("RAZORPAY_KEY_ID")
	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	if keyID == "" || keySecret == "" {
		log.Fatal("RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET must be set")
	}
	gateway := payment.New(payment.Config{
		KeyID:     keyID,
		KeySecret: keySecret,
		BaseURL:   os.Getenv("RAZORPAY_BASE_URL"),
	})

	gstRate, err := decimal.NewFromString(global.GetEnvOrDefault("GST_RATE", "18.00"))
	if err != nil {
		log.Fatalf("Invalid GST_RATE: %v", err)
	}

	cartStore := redis.NewCartStore(redis.RedisClient())
	catalogStore := mongo.NewCatalogStore()
	orderStore := mongo.NewOrderStore()
	customerStore := mongo.NewCustomerStore()

	checkoutService := &checkout.Service{
		Cart:     cartStore,
		Catalog:  catalogStore,
		Orders:   orderStore,
		Gateway:  gateway,
		GSTRate:  gstRate,
		Currency: "INR",
	}

	api := &router.API{
		Checkout:  checkoutService,
		Cart:      cartStore,
		Catalog:   catalogStore,
		Customers: customerStore,
		Invoices: invoice.Builder{
			StoreName:      global.GetEnvOrDefault("STORE_NAME", "GoKart Store"),
			GSTIN:          global.GetEnvOrDefault("STORE_GSTIN", "XXXXXXXXXXXXXX"),
			CurrencySymbol: global.GetEnvOrDefault("CURRENCY_SYMBOL", "Rs."),
		},
		Renderer: invoice.PDFRenderer{},
	}

	router.InitEngine()
	router.InitializeRoutes(api)

	port := global.GetEnvOrDefault("PORT", "8000")
	log.Printf("Server is running on port %s", port)

	if err := router.Router.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
