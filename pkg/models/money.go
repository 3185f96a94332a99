package models

import (
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Money is a fixed-point amount. It embeds decimal.Decimal for arithmetic and
// round-trips through BSON as a string so prices never pass through binary
// floating point.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{d}
}

func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

func (m Money) MarshalBSONValue() (byte, []byte, error) {
	t, data, err := bson.MarshalValue(m.Decimal.String())
	return byte(t), data, err
}

func (m *Money) UnmarshalBSONValue(t byte, data []byte) error {
	var s string
	if err := bson.UnmarshalValue(bson.Type(t), data, &s); err != nil {
		return err
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return err
	}
	m.Decimal = d
	return nil
}
