package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentMethodCreditCard     PaymentMethod = "credit_card"
	PaymentMethodPaypal         PaymentMethod = "paypal"
	PaymentMethodCashOnDelivery PaymentMethod = "cash_on_delivery"
)

type ItemType string

const (
	ItemTypeStandard ItemType = "standard"
	ItemTypeCustom   ItemType = "custom"
)

// CustomItemData is the inline snapshot carried by a custom line item
// instead of a catalog product reference.
type CustomItemData struct {
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description" json:"description"`
	Image       string `bson:"image" json:"image"`
}

// OrderItem is one priced line in an order. A standard item carries a
// product reference and no customData; a custom item carries customData
// and no product reference.
type OrderItem struct {
	ItemType   ItemType           `bson:"itemType" json:"itemType"`
	Product    primitive.ObjectID `bson:"product,omitempty" json:"product,omitempty"`
	CustomData *CustomItemData    `bson:"customData,omitempty" json:"customData,omitempty"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	Price      float64            `bson:"price" json:"price"`
}

type ShippingAddress struct {
	Street  string `bson:"street" json:"street"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	ZipCode string `bson:"zipCode,omitempty" json:"zipCode,omitempty"`
	Country string `bson:"country" json:"country"`
}

// PaymentResult holds the gateway's confirmation metadata, recorded when
// an order is marked paid.
type PaymentResult struct {
	ID           string `bson:"id" json:"id"`
	Status       string `bson:"status" json:"status"`
	UpdateTime   string `bson:"update_time" json:"update_time"`
	EmailAddress string `bson:"email_address" json:"email_address"`
}

// TrackingEvent is one append-only entry in an order's tracking history.
type TrackingEvent struct {
	Date        time.Time `bson:"date" json:"date"`
	Description string    `bson:"description" json:"description"`
	Location    string    `bson:"location,omitempty" json:"location,omitempty"`
}

type Order struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            primitive.ObjectID `bson:"user" json:"user"`
	Items             []OrderItem        `bson:"items" json:"items"`
	Email             string             `bson:"email" json:"email"`
	PhoneNumber       string             `bson:"phoneNumber" json:"phoneNumber"`
	ShippingAddress   ShippingAddress    `bson:"shippingAddress" json:"shippingAddress"`
	PaymentMethod     PaymentMethod      `bson:"paymentMethod" json:"paymentMethod"`
	PaymentResult     *PaymentResult     `bson:"paymentResult,omitempty" json:"paymentResult,omitempty"`
	ShippingCharges   float64            `bson:"shippingCharges" json:"shippingCharges"`
	TotalPrice        float64            `bson:"totalPrice" json:"totalPrice"`
	Status            OrderStatus        `bson:"status" json:"status"`
	IsPaid            bool               `bson:"isPaid" json:"isPaid"`
	PaidAt            *time.Time         `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	IsDelivered       bool               `bson:"isDelivered" json:"isDelivered"`
	DeliveredAt       *time.Time         `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
	TrackingNumber    string             `bson:"trackingNumber,omitempty" json:"trackingNumber,omitempty"`
	EstimatedDelivery *time.Time         `bson:"estimatedDelivery,omitempty" json:"estimatedDelivery,omitempty"`
	ProcessingDate    *time.Time         `bson:"processingDate,omitempty" json:"processingDate,omitempty"`
	ShippedDate       *time.Time         `bson:"shippedDate,omitempty" json:"shippedDate,omitempty"`
	TrackingEvents    []TrackingEvent    `bson:"trackingEvents" json:"trackingEvents"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
}

// RecalculateTotal derives totalPrice from the line items and shipping
// charges. The total is never taken from client input; callers invoke
// this before every persist.
func (o *Order) RecalculateTotal() {
	total := 0.0
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
	}
	o.TotalPrice = total + o.ShippingCharges
}
