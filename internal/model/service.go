package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Service is a bookable treatment offered on a given date. Slots are
// the full schedule as stored; availability is derived at read time
// and never written back.
type Service struct {
	ID    primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name  string             `json:"name" bson:"name"`
	Date  string             `json:"date" bson:"date"`
	Price int                `json:"price" bson:"price"`
	Slots []string           `json:"slots" bson:"slots"`
}

// ServiceName is the public listing projection.
type ServiceName struct {
	ID   primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name string             `json:"name" bson:"name"`
}

// CreateServiceRequest carries a new service. Price arrives as JSON
// number and is coerced to an integer amount.
type CreateServiceRequest struct {
	Name  string   `json:"name" binding:"required"`
	Date  string   `json:"date" binding:"required"`
	Price float64  `json:"price" binding:"required"`
	Slots []string `json:"slots" binding:"required"`
}
