package ai

import (
	"context"
	"fmt"

	"github.com/anupamdas/gokart/pkg/mongo"
)

const salesReportSystemPrompt = `You are a retail analyst for a small online
storefront. Write a short, plain-language summary of the sales figures you are
given: overall revenue, how many orders converted to payment, and average
order value. Mention anything unusual such as a high share of unpaid orders.
Keep it under 200 words and do not invent numbers.`

// GenerateSalesReport asks the model for a narrative summary of the paid-order
// aggregation.
func GenerateSalesReport(ctx context.Context, summary *mongo.SalesSummary) (string, error) {
	userMessage := fmt.Sprintf(
		"Sales figures:\n- total orders: %d\n- paid orders: %d\n- unpaid orders: %d\n"+
			"- revenue: %s\n- items sold: %d\n- average order value: %s\n",
		summary.TotalOrders,
		summary.PaidOrders,
		summary.UnpaidOrders,
		summary.Revenue().StringFixed(2),
		summary.ItemsSold,
		summary.AverageOrderValue().StringFixed(2),
	)

	return generateCompletion(ctx, salesReportSystemPrompt, userMessage)
}
