package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redisclient "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/anupamdas/gokart/pkg/global"
	"github.com/anupamdas/gokart/pkg/models"
)

// CartStore keeps one Redis hash per session: cart:{sessionID}, one field per
// product id, value a JSON-encoded line. Every mutation refreshes the TTL so
// an active session's cart keeps persisting.
type CartStore struct {
	Client *redisclient.Client
	TTL    time.Duration
}

func NewCartStore(client *redisclient.Client) *CartStore {
	return &CartStore{
		Client: client,
		TTL:    24 * time.Hour,
	}
}

// cartLine is the wire format inside the hash. UnitPrice is serialized as a
// string so the snapshot never passes through floating point.
type cartLine struct {
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

// Add puts a product into the cart. With replace=false the quantity is added
// to any existing line; with replace=true it overwrites it. The unit price is
// snapshotted the first time the product enters the cart and kept on later
// updates.
func (s *CartStore) Add(ctx context.Context, sessionID string, product *models.Product, quantity int, replace bool) error {
	if quantity <= 0 {
		return global.ErrInvalidQuantity
	}

	key := cartKey(sessionID)
	field := product.ID.Hex()

	line := cartLine{
		Quantity:  quantity,
		UnitPrice: product.Price.String(),
	}

	raw, err := s.Client.HGet(ctx, key, field).Result()
	if err != nil && !errors.Is(err, redisclient.Nil) {
		return err
	}
	if err == nil {
		var existing cartLine
		if err := json.Unmarshal([]byte(raw), &existing); err != nil {
			return fmt.Errorf("corrupt cart line for product %s: %w", field, err)
		}
		line.UnitPrice = existing.UnitPrice
		if !replace {
			line.Quantity = existing.Quantity + quantity
		}
	}

	encoded, err := json.Marshal(line)
	if err != nil {
		return err
	}

	pipe := s.Client.TxPipeline()
	pipe.HSet(ctx, key, field, encoded)
	pipe.Expire(ctx, key, s.TTL)
	_, err = pipe.Exec(ctx)
	return err
}

// Remove deletes a product's line. Removing a product that is not in the cart
// is a no-op, not an error.
func (s *CartStore) Remove(ctx context.Context, sessionID, productID string) error {
	pipe := s.Client.TxPipeline()
	pipe.HDel(ctx, cartKey(sessionID), productID)
	pipe.Expire(ctx, cartKey(sessionID), s.TTL)
	_, err := pipe.Exec(ctx)
	return err
}

// Lines returns the raw cart lines with their snapshotted prices.
func (s *CartStore) Lines(ctx context.Context, sessionID string) ([]models.CartLine, error) {
	raw, err := s.Client.HGetAll(ctx, cartKey(sessionID)).Result()
	if err != nil {
		return nil, err
	}

	lines := make([]models.CartLine, 0, len(raw))
	for productID, value := range raw {
		var line cartLine
		if err := json.Unmarshal([]byte(value), &line); err != nil {
			return nil, fmt.Errorf("corrupt cart line for product %s: %w", productID, err)
		}
		price, err := decimal.NewFromString(line.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("corrupt unit price for product %s: %w", productID, err)
		}
		lines = append(lines, models.CartLine{
			ProductID: productID,
			Quantity:  line.Quantity,
			UnitPrice: price,
		})
	}
	return lines, nil
}

// Total sums unit_price * quantity over the snapshot prices, independent of
// current catalog prices.
func (s *CartStore) Total(ctx context.Context, sessionID string) (decimal.Decimal, error) {
	lines, err := s.Lines(ctx, sessionID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.LineTotal())
	}
	return total, nil
}

func (s *CartStore) Clear(ctx context.Context, sessionID string) error {
	return s.Client.Del(ctx, cartKey(sessionID)).Err()
}
