package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Category struct {
	ID   bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string        `bson:"name" json:"name"`
	Slug string        `bson:"slug" json:"slug"`
}

// Product is a catalog entry. Price is the current catalog price; orders and
// carts keep their own snapshots and are never affected by later edits here.
type Product struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	CategoryID  bson.ObjectID `bson:"category_id" json:"category_id"`
	Name        string        `bson:"name" json:"name"`
	Slug        string        `bson:"slug" json:"slug"`
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
	Price       Money         `bson:"price" json:"price"`
	Stock       int           `bson:"stock" json:"stock"`
	Available   bool          `bson:"available" json:"available"`
	CreatedAt   time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at" json:"updated_at"`
}

// SetTimestamps sets created_at on first call and always updates updated_at
func (p *Product) SetTimestamps() {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}
