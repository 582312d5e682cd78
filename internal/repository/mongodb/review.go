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

type reviewRepository struct {
	collection *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) repository.ReviewRepository {
	return &reviewRepository{collection: db.Collection(collReviews)}
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	result, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}
	review.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *reviewRepository) List(ctx context.Context) ([]*model.Review, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []*model.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}
