package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Review is an append-only free-form rating.
type Review struct {
	ID      primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name    string             `json:"name,omitempty" bson:"name,omitempty"`
	Email   string             `json:"email,omitempty" bson:"email,omitempty"`
	Rating  int                `json:"rating,omitempty" bson:"rating,omitempty"`
	Comment string             `json:"comment,omitempty" bson:"comment,omitempty"`
}
