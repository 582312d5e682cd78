package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/doctorsportal/booking-api/internal/model"
	"github.com/doctorsportal/booking-api/internal/repository"
)

type bookingRepository struct {
	collection *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) repository.BookingRepository {
	return &bookingRepository{collection: db.Collection(collBookings)}
}

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	booking.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *bookingRepository) Get(ctx context.Context, id string) (*model.Booking, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid booking id: %w", err)
	}

	var booking model.Booking
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) FindByTriple(ctx context.Context, treatment, date, patient string) (*model.Booking, error) {
	filter := bson.M{"treatment": treatment, "date": date, "patient": patient}

	var booking model.Booking
	if err := r.collection.FindOne(ctx, filter).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) List(ctx context.Context) ([]*model.Booking, error) {
	return r.find(ctx, bson.M{})
}

func (r *bookingRepository) ListByPatient(ctx context.Context, patient string) ([]*model.Booking, error) {
	return r.find(ctx, bson.M{"patient": patient})
}

func (r *bookingRepository) ListByDate(ctx context.Context, date string) ([]*model.Booking, error) {
	return r.find(ctx, bson.M{"date": date})
}

func (r *bookingRepository) find(ctx context.Context, filter bson.M) ([]*model.Booking, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []*model.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid booking id: %w", err)
	}

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID}); err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	return nil
}

func (r *bookingRepository) SetPayment(ctx context.Context, id, status string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid booking id: %w", err)
	}

	update := bson.M{"$set": bson.M{"payment": status}}
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update); err != nil {
		return fmt.Errorf("failed to update booking payment: %w", err)
	}
	return nil
}
