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

type doctorRepository struct {
	collection *mongo.Collection
}

func NewDoctorRepository(db *mongo.Database) repository.DoctorRepository {
	return &doctorRepository{collection: db.Collection(collDoctors)}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	result, err := r.collection.InsertOne(ctx, doctor)
	if err != nil {
		return fmt.Errorf("failed to insert doctor: %w", err)
	}
	doctor.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	defer cursor.Close(ctx)

	doctors := []*model.Doctor{}
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, fmt.Errorf("failed to decode doctors: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) DeleteByEmail(ctx context.Context, email string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"email": email}); err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}
	return nil
}
