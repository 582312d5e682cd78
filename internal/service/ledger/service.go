package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/doctorsportal/booking-api/internal/model"
	"github.com/doctorsportal/booking-api/internal/repository"
	apperrors "github.com/doctorsportal/booking-api/pkg/errors"
	"github.com/doctorsportal/booking-api/pkg/locker"
)

// lockTTL bounds how long a crashed request can hold a ledger lock.
const lockTTL = 5 * time.Second

type Service struct {
	tokens     repository.TokenRepository
	userTokens repository.UserTokenRepository
	wallets    repository.WalletRepository
	bookings   repository.BookingRepository
	locks      locker.Locker
}

func NewService(tokens repository.TokenRepository, userTokens repository.UserTokenRepository,
	wallets repository.WalletRepository, bookings repository.BookingRepository, locks locker.Locker) *Service {
	return &Service{
		tokens:     tokens,
		userTokens: userTokens,
		wallets:    wallets,
		bookings:   bookings,
		locks:      locks,
	}
}

// AddToken mints an unsold prepaid token at the given price.
func (s *Service) AddToken(ctx context.Context, price int) (*model.Token, error) {
	token := &model.Token{
		Token:  fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()),
		Price:  price,
		Status: model.TokenStatusUnsold,
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to mint token: %w", err)
	}
	return token, nil
}

// BuyToken sells one unsold token at the requested price to the given
// email. The sale is serialized per price so two buyers cannot take
// the same token.
func (s *Service) BuyToken(ctx context.Context, email string, price int) (*model.UserToken, error) {
	lockKey := fmt.Sprintf("token-sale:%d", price)
	lockValue, err := s.locks.Acquire(ctx, lockKey, lockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to lock token sale: %w", err)
	}
	defer s.release(lockKey, lockValue)

	token, err := s.tokens.FindUnsoldByPrice(ctx, price)
	if err != nil {
		return nil, fmt.Errorf("failed to find unsold token: %w", err)
	}
	if token == nil {
		return nil, &apperrors.AppError{Code: apperrors.ErrNotFound, Message: "no token available"}
	}

	if err := s.tokens.MarkSold(ctx, token.ID.Hex()); err != nil {
		return nil, fmt.Errorf("failed to mark token sold: %w", err)
	}

	userToken := &model.UserToken{
		Email: email,
		Token: token.Token,
		Price: token.Price,
	}
	if err := s.userTokens.Create(ctx, userToken); err != nil {
		return nil, fmt.Errorf("failed to record token sale: %w", err)
	}
	return userToken, nil
}

// Prices lists the distinct prices among currently unsold tokens.
func (s *Service) Prices(ctx context.Context) ([]int, error) {
	prices, err := s.tokens.DistinctUnsoldPrices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list prices: %w", err)
	}
	sort.Ints(prices)
	return prices, nil
}

// UserTokens lists the unredeemed purchases for an email.
func (s *Service) UserTokens(ctx context.Context, email string) ([]*model.UserToken, error) {
	userTokens, err := s.userTokens.ListByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list user tokens: %w", err)
	}
	return userTokens, nil
}

// Tokens lists all minted tokens.
func (s *Service) Tokens(ctx context.Context) ([]*model.Token, error) {
	tokens, err := s.tokens.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}
	return tokens, nil
}

// DeleteToken removes a minted token by id.
func (s *Service) DeleteToken(ctx context.Context, id string) error {
	if err := s.tokens.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

// Recharge redeems a purchased token into its buyer's wallet. The
// UserToken record is deleted on redemption, so a token string can be
// redeemed exactly once.
func (s *Service) Recharge(ctx context.Context, tokenString string) (*model.Wallet, error) {
	userToken, err := s.userTokens.FindByToken(ctx, tokenString)
	if err != nil {
		return nil, fmt.Errorf("failed to find user token: %w", err)
	}
	if userToken == nil {
		return nil, &apperrors.AppError{Code: apperrors.ErrNotFound, Message: "token not found or already used"}
	}

	lockKey := "wallet:" + userToken.Email
	lockValue, err := s.locks.Acquire(ctx, lockKey, lockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	defer s.release(lockKey, lockValue)

	// Re-read under the lock: a concurrent redemption of the same
	// token string may have consumed it already.
	userToken, err = s.userTokens.FindByToken(ctx, tokenString)
	if err != nil {
		return nil, fmt.Errorf("failed to find user token: %w", err)
	}
	if userToken == nil {
		return nil, &apperrors.AppError{Code: apperrors.ErrNotFound, Message: "token not found or already used"}
	}

	// Credit before consuming the purchase record: a failed credit
	// leaves the token still redeemable. A crash between the two
	// writes leaves a retryable double credit, not a lost redemption.
	if err := s.wallets.Credit(ctx, userToken.Email, userToken.Price); err != nil {
		return nil, fmt.Errorf("failed to credit wallet: %w", err)
	}

	if err := s.userTokens.Delete(ctx, userToken.ID.Hex()); err != nil {
		return nil, fmt.Errorf("failed to consume user token: %w", err)
	}

	wallet, err := s.wallets.GetByEmail(ctx, userToken.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}
	return wallet, nil
}

// Wallet returns the balance record for an email.
func (s *Service) Wallet(ctx context.Context, email string) (*model.Wallet, error) {
	wallet, err := s.wallets.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}
	if wallet == nil {
		return nil, apperrors.NotFound("wallet", nil)
	}
	return wallet, nil
}

// Pay debits the wallet by the booking price and marks the booking
// paid. A balance below the price leaves both untouched.
func (s *Service) Pay(ctx context.Context, req *model.PaymentRequest) (*model.Booking, error) {
	booking, err := s.bookings.Get(ctx, req.AppointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if booking == nil {
		return nil, apperrors.NotFound("booking", nil)
	}

	lockKey := "wallet:" + req.Email
	lockValue, err := s.locks.Acquire(ctx, lockKey, lockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	defer s.release(lockKey, lockValue)

	debited, err := s.wallets.Debit(ctx, req.Email, req.Price)
	if err != nil {
		return nil, fmt.Errorf("failed to debit wallet: %w", err)
	}
	if !debited {
		return nil, apperrors.BadRequest("insufficient amount", nil)
	}

	if err := s.bookings.SetPayment(ctx, req.AppointmentID, model.PaymentStatusPaid); err != nil {
		return nil, fmt.Errorf("failed to mark booking paid: %w", err)
	}

	booking.Payment = model.PaymentStatusPaid
	return booking, nil
}

func (s *Service) release(key, value string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.locks.Release(ctx, key, value); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to release ledger lock")
	}
}
