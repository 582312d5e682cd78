package repository

import (
	"context"

	"github.com/doctorsportal/booking-api/internal/model"
)

// Absent-record convention: lookups return (nil, nil) when no document
// matches, never an error. Callers branch explicitly instead of
// dereferencing a missing record.

type ServiceRepository interface {
	Create(ctx context.Context, service *model.Service) error
	GetByNameAndDate(ctx context.Context, name, date string) (*model.Service, error)
	ListNames(ctx context.Context) ([]*model.ServiceName, error)
	ListByDate(ctx context.Context, date string) ([]*model.Service, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	Get(ctx context.Context, id string) (*model.Booking, error)
	FindByTriple(ctx context.Context, treatment, date, patient string) (*model.Booking, error)
	List(ctx context.Context) ([]*model.Booking, error)
	ListByPatient(ctx context.Context, patient string) ([]*model.Booking, error)
	ListByDate(ctx context.Context, date string) ([]*model.Booking, error)
	Delete(ctx context.Context, id string) error
	SetPayment(ctx context.Context, id, status string) error
}

type UserRepository interface {
	Upsert(ctx context.Context, user *model.User) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	SetRole(ctx context.Context, email string, role model.Role) error
}

type DoctorRepository interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	List(ctx context.Context) ([]*model.Doctor, error)
	DeleteByEmail(ctx context.Context, email string) error
}

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	List(ctx context.Context) ([]*model.Review, error)
}

type TokenRepository interface {
	Create(ctx context.Context, token *model.Token) error
	FindUnsoldByPrice(ctx context.Context, price int) (*model.Token, error)
	MarkSold(ctx context.Context, id string) error
	DistinctUnsoldPrices(ctx context.Context) ([]int, error)
	List(ctx context.Context) ([]*model.Token, error)
	Delete(ctx context.Context, id string) error
}

type UserTokenRepository interface {
	Create(ctx context.Context, userToken *model.UserToken) error
	FindByToken(ctx context.Context, token string) (*model.UserToken, error)
	ListByEmail(ctx context.Context, email string) ([]*model.UserToken, error)
	Delete(ctx context.Context, id string) error
}

type WalletRepository interface {
	GetByEmail(ctx context.Context, email string) (*model.Wallet, error)
	// Credit adds amount to the wallet, inserting it if absent.
	Credit(ctx context.Context, email string, amount int) error
	// Debit subtracts amount only if the current balance covers it;
	// it reports whether the conditional update matched.
	Debit(ctx context.Context, email string, amount int) (bool, error)
}
