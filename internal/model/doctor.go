package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Doctor is an admin-managed directory record, keyed by email.
type Doctor struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Specialty string             `json:"specialty,omitempty" bson:"specialty,omitempty"`
	Image     string             `json:"image,omitempty" bson:"image,omitempty"`
}

// CreateDoctorRequest carries a new directory record.
type CreateDoctorRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Specialty string `json:"specialty"`
	Image     string `json:"image"`
}
