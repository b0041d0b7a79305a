package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	OwnerID   primitive.ObjectID `bson:"userId" json:"ownerId"`
	Rating    int                `bson:"rating" json:"rating"`
	Blurb     string             `bson:"blurb" json:"blurb"`
	Photos    StringList         `bson:"photos" json:"photos"`
	Cost      float64            `bson:"cost" json:"cost"`
	TimeUsed  string             `bson:"timeUsed" json:"timeUsed"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}
