package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/doctorsportal/booking-api/internal/config"
)

// Collection names
const (
	collServices   = "services"
	collBookings   = "bookings"
	collUsers      = "users"
	collDoctors    = "doctors"
	collReviews    = "reviews"
	collTokens     = "tokens"
	collUserTokens = "user_tokens"
	collWallets    = "wallets"
)

// NewDB connects to the document store and verifies the connection.
func NewDB(ctx context.Context, cfg config.MongoConfig) (*mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client.Database(cfg.Database), nil
}
