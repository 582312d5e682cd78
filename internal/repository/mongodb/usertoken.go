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

type userTokenRepository struct {
	collection *mongo.Collection
}

func NewUserTokenRepository(db *mongo.Database) repository.UserTokenRepository {
	return &userTokenRepository{collection: db.Collection(collUserTokens)}
}

func (r *userTokenRepository) Create(ctx context.Context, userToken *model.UserToken) error {
	result, err := r.collection.InsertOne(ctx, userToken)
	if err != nil {
		return fmt.Errorf("failed to insert user token: %w", err)
	}
	userToken.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *userTokenRepository) FindByToken(ctx context.Context, token string) (*model.UserToken, error) {
	var userToken model.UserToken
	if err := r.collection.FindOne(ctx, bson.M{"token": token}).Decode(&userToken); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user token: %w", err)
	}
	return &userToken, nil
}

func (r *userTokenRepository) ListByEmail(ctx context.Context, email string) ([]*model.UserToken, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to list user tokens: %w", err)
	}
	defer cursor.Close(ctx)

	userTokens := []*model.UserToken{}
	if err := cursor.All(ctx, &userTokens); err != nil {
		return nil, fmt.Errorf("failed to decode user tokens: %w", err)
	}
	return userTokens, nil
}

func (r *userTokenRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid user token id: %w", err)
	}

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID}); err != nil {
		return fmt.Errorf("failed to delete user token: %w", err)
	}
	return nil
}
