package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CarModStatus string

const (
	CarModPending  CarModStatus = "pending"
	CarModReviewed CarModStatus = "reviewed"
	CarModAccepted CarModStatus = "accepted"
	CarModRejected CarModStatus = "rejected"
)

// ValidCarModStatus reports whether s is one of the four request states.
func ValidCarModStatus(s CarModStatus) bool {
	switch s {
	case CarModPending, CarModReviewed, CarModAccepted, CarModRejected:
		return true
	}
	return false
}

// CarModRequest is a customer inquiry for a car modification package.
// The user reference is set when the requester is logged in.
type CarModRequest struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User       primitive.ObjectID `bson:"user,omitempty" json:"user,omitempty"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Phone      string             `bson:"phone" json:"phone"`
	CarPackage string             `bson:"carPackage" json:"carPackage"`
	Message    string             `bson:"message" json:"message"`
	Status     CarModStatus       `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
