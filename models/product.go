package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductCategory string

const (
	CategoryExterior    ProductCategory = "exterior"
	CategoryInterior    ProductCategory = "interior"
	CategoryPerformance ProductCategory = "performance"
)

type Review struct {
	Author string    `bson:"author" json:"author"`
	Rating int       `bson:"rating" json:"rating"`
	Review string    `bson:"review" json:"review"`
	Date   time.Time `bson:"date" json:"date"`
}

type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Image         string             `bson:"image" json:"image"`
	Images        []string           `bson:"images" json:"images"`
	Description   string             `bson:"description" json:"description"`
	Price         float64            `bson:"price" json:"price"`
	Currency      string             `bson:"currency" json:"currency"`
	Featured      bool               `bson:"featured" json:"featured"`
	Reviews       []Review           `bson:"reviews" json:"reviews"`
	Quantity      int                `bson:"quantity" json:"quantity"`
	Availability  bool               `bson:"availability" json:"availability"`
	Category      ProductCategory    `bson:"category" json:"category"`
	Stock         int                `bson:"stock" json:"stock"`
	Brand         string             `bson:"brand" json:"brand"`
	RatingAverage float64            `bson:"ratingAverage" json:"ratingAverage"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
