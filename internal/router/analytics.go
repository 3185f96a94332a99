package router

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anupamdas/gokart/pkg/ai"
	"github.com/anupamdas/gokart/pkg/global"
	"github.com/anupamdas/gokart/pkg/mongo"
)

func (a *API) GetSalesAnalytics(c *gin.Context) {
	summary, err := mongo.GetSalesSummary(c.Request.Context())
	if err != nil {
		log.Printf("Error aggregating sales: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to aggregate sales", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(gin.H{
		"total_orders":        summary.TotalOrders,
		"paid_orders":         summary.PaidOrders,
		"unpaid_orders":       summary.UnpaidOrders,
		"items_sold":          summary.ItemsSold,
		"revenue":             summary.Revenue().StringFixed(2),
		"average_order_value": summary.AverageOrderValue().StringFixed(2),
	}))
}

func (a *API) GenerateAISalesReport(c *gin.Context) {
	if !ai.IsEnabled() {
		c.JSON(http.StatusServiceUnavailable, global.ErrorResponse("AI service is not configured", nil))
		return
	}

	summary, err := mongo.GetSalesSummary(c.Request.Context())
	if err != nil {
		log.Printf("Error aggregating sales for AI report: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to aggregate sales", nil))
		return
	}

	report, err := ai.GenerateSalesReport(c.Request.Context(), summary)
	if err != nil {
		log.Printf("Error generating AI sales report: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to generate AI report", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(gin.H{
		"report":  report,
		"figures": summary,
	}))
}
