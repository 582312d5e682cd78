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

type userRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) repository.UserRepository {
	return &userRepository{collection: db.Collection(collUsers)}
}

func (r *userRepository) Upsert(ctx context.Context, user *model.User) (*model.User, error) {
	filter := bson.M{"email": user.Email}
	set := bson.M{
		"email":     user.Email,
		"name":      user.Name,
		"phone":     user.Phone,
		"education": user.Education,
		"district":  user.District,
	}

	// Role is managed by the promote endpoint only, so it is not part
	// of the profile upsert.
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored model.User
	err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&stored)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return &stored, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]*model.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []*model.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

func (r *userRepository) SetRole(ctx context.Context, email string, role model.Role) error {
	update := bson.M{"$set": bson.M{"role": role}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return fmt.Errorf("failed to update user role: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("no user with email %s", email)
	}
	return nil
}
