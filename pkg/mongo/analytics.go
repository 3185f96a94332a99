package mongo

import (
	"context"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// SalesSummary aggregates paid orders. Revenue is summed over the integer
// amount_minor field so the aggregation stays exact.
type SalesSummary struct {
	TotalOrders  int64 `json:"total_orders" bson:"total_orders"`
	PaidOrders   int64 `json:"paid_orders" bson:"paid_orders"`
	UnpaidOrders int64 `json:"unpaid_orders" bson:"unpaid_orders"`
	RevenueMinor int64 `json:"revenue_minor" bson:"revenue_minor"`
	ItemsSold    int64 `json:"items_sold" bson:"items_sold"`
}

// Revenue converts the minor-unit sum back to a decimal amount.
func (s *SalesSummary) Revenue() decimal.Decimal {
	return decimal.New(s.RevenueMinor, -2)
}

// AverageOrderValue is revenue divided by paid order count, 2dp.
func (s *SalesSummary) AverageOrderValue() decimal.Decimal {
	if s.PaidOrders == 0 {
		return decimal.Zero
	}
	return s.Revenue().Div(decimal.NewFromInt(s.PaidOrders)).Round(2)
}

func GetSalesSummary(ctx context.Context) (*SalesSummary, error) {
	collection := GetCollection("orders")

	pipeline := bson.A{
		bson.D{
			{Key: "$group", Value: bson.D{
				{Key: "_id", Value: nil},
				{Key: "total_orders", Value: bson.D{{Key: "$sum", Value: 1}}},
				{Key: "paid_orders", Value: bson.D{{Key: "$sum", Value: bson.D{
					{Key: "$cond", Value: bson.A{"$paid", 1, 0}},
				}}}},
				{Key: "revenue_minor", Value: bson.D{{Key: "$sum", Value: bson.D{
					{Key: "$cond", Value: bson.A{"$paid", "$amount_minor", 0}},
				}}}},
				{Key: "items_sold", Value: bson.D{{Key: "$sum", Value: bson.D{
					{Key: "$cond", Value: bson.A{
						"$paid",
						bson.D{{Key: "$sum", Value: "$items.quantity"}},
						0,
					}},
				}}}},
			}},
		},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []SalesSummary
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &SalesSummary{}, nil
	}

	summary := results[0]
	summary.UnpaidOrders = summary.TotalOrders - summary.PaidOrders
	return &summary, nil
}
