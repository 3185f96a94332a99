package router

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/anupamdas/gokart/pkg/global"
	"github.com/anupamdas/gokart/pkg/mongo"
)

func (a *API) HealthCheck(c *gin.Context) {
	if err := mongo.GetClient().Ping(c.Request.Context(), nil); err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Database connection failed", nil))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"status": "OK", "database": "Connected"}))
}

// GetAllProducts lists available products, optionally filtered by the
// category query parameter (a slug).
func (a *API) GetAllProducts(c *gin.Context) {
	ctx := c.Request.Context()

	var categoryID *bson.ObjectID
	if slug := c.Query("category"); slug != "" {
		category, err := a.Catalog.CategoryBySlug(ctx, slug)
		if errors.Is(err, global.ErrNotFound) {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Category not found", []global.ValidationError{
				{Field: "category", Message: "No category exists with this slug", Code: "not_found"},
			}))
			return
		}
		if err != nil {
			log.Printf("Error fetching category: %v", err)
			c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get products", nil))
			return
		}
		categoryID = &category.ID
	}

	products, err := a.Catalog.ListAvailable(ctx, categoryID)
	if err != nil {
		log.Printf("Error fetching products: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get products", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(products))
}

// GetProductDetail looks a product up by id and slug; both must match and the
// product must be available.
func (a *API) GetProductDetail(c *gin.Context) {
	product, err := a.Catalog.ProductByIDSlug(c.Request.Context(), c.Param("id"), c.Param("slug"))
	if errors.Is(err, global.ErrNotFound) {
		c.JSON(http.StatusNotFound, global.ErrorResponse("Product not found", []global.ValidationError{
			{Field: "id", Message: "No available product matches this id and slug", Code: "not_found"},
		}))
		return
	}
	if err != nil {
		log.Printf("Error fetching product: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch product", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(product))
}

func (a *API) GetAllCategories(c *gin.Context) {
	categories, err := a.Catalog.ListCategories(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching categories: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get categories", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(categories))
}
