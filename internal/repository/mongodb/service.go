package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/doctorsportal/booking-api/internal/model"
	"github.com/doctorsportal/booking-api/internal/repository"
)

type serviceRepository struct {
	collection *mongo.Collection
}

func NewServiceRepository(db *mongo.Database) repository.ServiceRepository {
	return &serviceRepository{collection: db.Collection(collServices)}
}

func (r *serviceRepository) Create(ctx context.Context, service *model.Service) error {
	result, err := r.collection.InsertOne(ctx, service)
	if err != nil {
		return fmt.Errorf("failed to insert service: %w", err)
	}
	service.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *serviceRepository) GetByNameAndDate(ctx context.Context, name, date string) (*model.Service, error) {
	var service model.Service
	err := r.collection.FindOne(ctx, bson.M{"name": name, "date": date}).Decode(&service)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find service: %w", err)
	}
	return &service, nil
}

func (r *serviceRepository) ListNames(ctx context.Context) ([]*model.ServiceName, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"name": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer cursor.Close(ctx)

	names := []*model.ServiceName{}
	if err := cursor.All(ctx, &names); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return names, nil
}

func (r *serviceRepository) ListByDate(ctx context.Context, date string) ([]*model.Service, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"date": date})
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer cursor.Close(ctx)

	services := []*model.Service{}
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}
