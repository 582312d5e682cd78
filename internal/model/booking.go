package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Payment status constants
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// Booking is an appointment for a treatment slot. At most one booking
// exists per (treatment, date, patient) triple.
type Booking struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Treatment   string             `json:"treatment" bson:"treatment"`
	Date        string             `json:"date" bson:"date"`
	Slot        string             `json:"slot" bson:"slot"`
	Patient     string             `json:"patient" bson:"patient"`
	PatientName string             `json:"patientName,omitempty" bson:"patientName,omitempty"`
	Phone       string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Payment     string             `json:"payment" bson:"payment"`
}

// CreateBookingRequest carries a new appointment.
type CreateBookingRequest struct {
	Treatment   string `json:"treatment" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Slot        string `json:"slot" binding:"required"`
	Patient     string `json:"patient" binding:"required,email"`
	PatientName string `json:"patientName"`
	Phone       string `json:"phone"`
}

// CreateBookingResponse reports whether a new booking was inserted.
// On a duplicate triple Success is false and Booking holds the
// existing record.
type CreateBookingResponse struct {
	Success bool     `json:"success"`
	Booking *Booking `json:"booking"`
}
