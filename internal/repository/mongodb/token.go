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

type tokenRepository struct {
	collection *mongo.Collection
}

func NewTokenRepository(db *mongo.Database) repository.TokenRepository {
	return &tokenRepository{collection: db.Collection(collTokens)}
}

func (r *tokenRepository) Create(ctx context.Context, token *model.Token) error {
	result, err := r.collection.InsertOne(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to insert token: %w", err)
	}
	token.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *tokenRepository) FindUnsoldByPrice(ctx context.Context, price int) (*model.Token, error) {
	filter := bson.M{"price": price, "status": model.TokenStatusUnsold}

	var token model.Token
	if err := r.collection.FindOne(ctx, filter).Decode(&token); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find token: %w", err)
	}
	return &token, nil
}

func (r *tokenRepository) MarkSold(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid token id: %w", err)
	}

	// Conditional on the current status so a token is sold at most
	// once even if two sales race past the find.
	filter := bson.M{"_id": objectID, "status": model.TokenStatusUnsold}
	update := bson.M{"$set": bson.M{"status": model.TokenStatusSold}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to mark token sold: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("token already sold")
	}
	return nil
}

func (r *tokenRepository) DistinctUnsoldPrices(ctx context.Context) ([]int, error) {
	values, err := r.collection.Distinct(ctx, "price", bson.M{"status": model.TokenStatusUnsold})
	if err != nil {
		return nil, fmt.Errorf("failed to list token prices: %w", err)
	}

	prices := make([]int, 0, len(values))
	for _, v := range values {
		switch p := v.(type) {
		case int32:
			prices = append(prices, int(p))
		case int64:
			prices = append(prices, int(p))
		case float64:
			prices = append(prices, int(p))
		}
	}
	return prices, nil
}

func (r *tokenRepository) List(ctx context.Context) ([]*model.Token, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}
	defer cursor.Close(ctx)

	tokens := []*model.Token{}
	if err := cursor.All(ctx, &tokens); err != nil {
		return nil, fmt.Errorf("failed to decode tokens: %w", err)
	}
	return tokens, nil
}

func (r *tokenRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid token id: %w", err)
	}

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID}); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}
