package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/doctorsportal/booking-api/internal/model"
	"github.com/doctorsportal/booking-api/internal/repository"
)

type walletRepository struct {
	collection *mongo.Collection
}

func NewWalletRepository(db *mongo.Database) repository.WalletRepository {
	return &walletRepository{collection: db.Collection(collWallets)}
}

func (r *walletRepository) GetByEmail(ctx context.Context, email string) (*model.Wallet, error) {
	var wallet model.Wallet
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&wallet); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) Credit(ctx context.Context, email string, amount int) error {
	filter := bson.M{"email": email}
	update := bson.M{
		"$inc":         bson.M{"amount": amount},
		"$setOnInsert": bson.M{"email": email},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to credit wallet: %w", err)
	}
	return nil
}

func (r *walletRepository) Debit(ctx context.Context, email string, amount int) (bool, error) {
	// Conditional on the balance covering the debit, so a racing
	// payment cannot push the amount negative.
	filter := bson.M{"email": email, "amount": bson.M{"$gte": amount}}
	update := bson.M{"$inc": bson.M{"amount": -amount}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to debit wallet: %w", err)
	}
	return result.MatchedCount > 0, nil
}
