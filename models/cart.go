package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem mirrors the tagged order line shape: standard items reference
// a catalog product, custom items carry an inline snapshot.
type CartItem struct {
	ItemType   ItemType           `bson:"itemType" json:"itemType"`
	Product    primitive.ObjectID `bson:"product,omitempty" json:"product,omitempty"`
	CustomData *CustomItemData    `bson:"customData,omitempty" json:"customData,omitempty"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	Price      float64            `bson:"price,omitempty" json:"price,omitempty"`
}

// Cart is the per-user pending item list. The document survives order
// submission; only its products array is emptied.
type Cart struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID   primitive.ObjectID `bson:"user" json:"user"`
	Products []CartItem         `bson:"products" json:"products"`
}
