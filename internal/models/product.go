package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalogued item. CategoryID is the reference of record; Category
// holds the category name and is refreshed from CategoryID whenever the product
// is read. Products without a CategoryID keep the name they were created with.
type Product struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name         string              `bson:"name" json:"name"`
	CategoryID   *primitive.ObjectID `bson:"categoryId,omitempty" json:"categoryId,omitempty"`
	Category     string              `bson:"category" json:"category"`
	PurchaseDate time.Time           `bson:"purchaseDate" json:"purchaseDate"`
	Cost         float64             `bson:"cost" json:"cost"`
	Description  string              `bson:"description,omitempty" json:"description,omitempty"`
	UPC          string              `bson:"upc,omitempty" json:"upc,omitempty"`
	OwnerID      primitive.ObjectID  `bson:"userId" json:"ownerId"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// ProductWithReview is the aggregate returned by every product endpoint: the
// product, its owner and the review attached to it (nil when there is none).
type ProductWithReview struct {
	Product
	Owner  *UserSummary `json:"owner,omitempty"`
	Review *Review      `json:"review"`
}
