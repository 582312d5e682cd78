package ledger

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/doctorsportal/booking-api/internal/model"
	apperrors "github.com/doctorsportal/booking-api/pkg/errors"
	"github.com/doctorsportal/booking-api/pkg/locker"
)

type fakeTokenRepo struct {
	tokens []*model.Token
}

func (r *fakeTokenRepo) Create(_ context.Context, t *model.Token) error {
	t.ID = primitive.NewObjectID()
	r.tokens = append(r.tokens, t)
	return nil
}

func (r *fakeTokenRepo) FindUnsoldByPrice(_ context.Context, price int) (*model.Token, error) {
	for _, t := range r.tokens {
		if t.Price == price && t.Status == model.TokenStatusUnsold {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeTokenRepo) MarkSold(_ context.Context, id string) error {
	for _, t := range r.tokens {
		if t.ID.Hex() == id {
			if t.Status != model.TokenStatusUnsold {
				return fmt.Errorf("token already sold")
			}
			t.Status = model.TokenStatusSold
			return nil
		}
	}
	return fmt.Errorf("no token with id %s", id)
}

func (r *fakeTokenRepo) DistinctUnsoldPrices(_ context.Context) ([]int, error) {
	seen := map[int]bool{}
	prices := []int{}
	for _, t := range r.tokens {
		if t.Status == model.TokenStatusUnsold && !seen[t.Price] {
			seen[t.Price] = true
			prices = append(prices, t.Price)
		}
	}
	return prices, nil
}

func (r *fakeTokenRepo) List(_ context.Context) ([]*model.Token, error) {
	return r.tokens, nil
}

func (r *fakeTokenRepo) Delete(_ context.Context, id string) error {
	for i, t := range r.tokens {
		if t.ID.Hex() == id {
			r.tokens = append(r.tokens[:i], r.tokens[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeUserTokenRepo struct {
	userTokens []*model.UserToken
}

func (r *fakeUserTokenRepo) Create(_ context.Context, ut *model.UserToken) error {
	ut.ID = primitive.NewObjectID()
	r.userTokens = append(r.userTokens, ut)
	return nil
}

func (r *fakeUserTokenRepo) FindByToken(_ context.Context, token string) (*model.UserToken, error) {
	for _, ut := range r.userTokens {
		if ut.Token == token {
			return ut, nil
		}
	}
	return nil, nil
}

func (r *fakeUserTokenRepo) ListByEmail(_ context.Context, email string) ([]*model.UserToken, error) {
	out := []*model.UserToken{}
	for _, ut := range r.userTokens {
		if ut.Email == email {
			out = append(out, ut)
		}
	}
	return out, nil
}

func (r *fakeUserTokenRepo) Delete(_ context.Context, id string) error {
	for i, ut := range r.userTokens {
		if ut.ID.Hex() == id {
			r.userTokens = append(r.userTokens[:i], r.userTokens[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeWalletRepo struct {
	wallets map[string]*model.Wallet
}

func (r *fakeWalletRepo) GetByEmail(_ context.Context, email string) (*model.Wallet, error) {
	if w, ok := r.wallets[email]; ok {
		return w, nil
	}
	return nil, nil
}

func (r *fakeWalletRepo) Credit(_ context.Context, email string, amount int) error {
	if r.wallets == nil {
		r.wallets = map[string]*model.Wallet{}
	}
	if w, ok := r.wallets[email]; ok {
		w.Amount += amount
		return nil
	}
	r.wallets[email] = &model.Wallet{ID: primitive.NewObjectID(), Email: email, Amount: amount}
	return nil
}

func (r *fakeWalletRepo) Debit(_ context.Context, email string, amount int) (bool, error) {
	w, ok := r.wallets[email]
	if !ok || w.Amount < amount {
		return false, nil
	}
	w.Amount -= amount
	return true, nil
}

type fakeLedgerBookingRepo struct {
	bookings []*model.Booking
}

func (r *fakeLedgerBookingRepo) Create(_ context.Context, b *model.Booking) error {
	b.ID = primitive.NewObjectID()
	r.bookings = append(r.bookings, b)
	return nil
}

func (r *fakeLedgerBookingRepo) Get(_ context.Context, id string) (*model.Booking, error) {
	for _, b := range r.bookings {
		if b.ID.Hex() == id {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeLedgerBookingRepo) FindByTriple(_ context.Context, _, _, _ string) (*model.Booking, error) {
	return nil, nil
}

func (r *fakeLedgerBookingRepo) List(_ context.Context) ([]*model.Booking, error) {
	return r.bookings, nil
}

func (r *fakeLedgerBookingRepo) ListByPatient(_ context.Context, _ string) ([]*model.Booking, error) {
	return nil, nil
}

func (r *fakeLedgerBookingRepo) ListByDate(_ context.Context, _ string) ([]*model.Booking, error) {
	return nil, nil
}

func (r *fakeLedgerBookingRepo) Delete(_ context.Context, _ string) error { return nil }

func (r *fakeLedgerBookingRepo) SetPayment(_ context.Context, id, status string) error {
	for _, b := range r.bookings {
		if b.ID.Hex() == id {
			b.Payment = status
		}
	}
	return nil
}

type ledgerFixture struct {
	tokens     *fakeTokenRepo
	userTokens *fakeUserTokenRepo
	wallets    *fakeWalletRepo
	bookings   *fakeLedgerBookingRepo
	svc        *Service
}

func newLedgerFixture() *ledgerFixture {
	f := &ledgerFixture{
		tokens:     &fakeTokenRepo{},
		userTokens: &fakeUserTokenRepo{},
		wallets:    &fakeWalletRepo{},
		bookings:   &fakeLedgerBookingRepo{},
	}
	f.svc = NewService(f.tokens, f.userTokens, f.wallets, f.bookings, locker.NewMemoryLocker())
	return f
}

func TestBuyTokenSellsAtMostOnce(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()

	minted, err := f.svc.AddToken(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, model.TokenStatusUnsold, minted.Status)

	bought, err := f.svc.BuyToken(ctx, "a@x.com", 30)
	require.NoError(t, err)
	assert.Equal(t, minted.Token, bought.Token)
	assert.Equal(t, 30, bought.Price)

	// The only token at this price is sold now.
	_, err = f.svc.BuyToken(ctx, "b@x.com", 30)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "no token available")
}

func TestBuyTokenNoStockAtPrice(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()

	_, err := f.svc.AddToken(ctx, 30)
	require.NoError(t, err)

	_, err = f.svc.BuyToken(ctx, "a@x.com", 50)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestPricesDistinctAndSorted(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()

	for _, price := range []int{50, 30, 50, 10} {
		_, err := f.svc.AddToken(ctx, price)
		require.NoError(t, err)
	}

	prices, err := f.svc.Prices(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 30, 50}, prices)
}

func TestRechargeIsSingleUse(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()

	_, err := f.svc.AddToken(ctx, 50)
	require.NoError(t, err)
	bought, err := f.svc.BuyToken(ctx, "a@x.com", 50)
	require.NoError(t, err)

	wallet, err := f.svc.Recharge(ctx, bought.Token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", wallet.Email)
	assert.Equal(t, 50, wallet.Amount)

	// The purchase record is consumed on redemption.
	_, err = f.svc.Recharge(ctx, bought.Token)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "token not found or already used")

	remaining, err := f.svc.UserTokens(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

type flakyWalletRepo struct {
	fakeWalletRepo
	creditFailures int
}

func (r *flakyWalletRepo) Credit(ctx context.Context, email string, amount int) error {
	if r.creditFailures > 0 {
		r.creditFailures--
		return fmt.Errorf("write failed")
	}
	return r.fakeWalletRepo.Credit(ctx, email, amount)
}

func TestRechargeFailedCreditKeepsToken(t *testing.T) {
	wallets := &flakyWalletRepo{creditFailures: 1}
	userTokens := &fakeUserTokenRepo{}
	svc := NewService(&fakeTokenRepo{}, userTokens, wallets, &fakeLedgerBookingRepo{}, locker.NewMemoryLocker())
	ctx := context.Background()

	_, err := svc.AddToken(ctx, 50)
	require.NoError(t, err)
	bought, err := svc.BuyToken(ctx, "a@x.com", 50)
	require.NoError(t, err)

	_, err = svc.Recharge(ctx, bought.Token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to credit wallet")

	// The purchase record survives the failed credit and the wallet
	// holds nothing, so the retry redeems normally.
	remaining, err := svc.UserTokens(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
	_, err = svc.Wallet(ctx, "a@x.com")
	assert.True(t, apperrors.IsNotFound(err))

	wallet, err := svc.Recharge(ctx, bought.Token)
	require.NoError(t, err)
	assert.Equal(t, 50, wallet.Amount)

	remaining, err = svc.UserTokens(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestRechargeAccumulates(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := f.svc.AddToken(ctx, 30)
		require.NoError(t, err)
		bought, err := f.svc.BuyToken(ctx, "a@x.com", 30)
		require.NoError(t, err)
		_, err = f.svc.Recharge(ctx, bought.Token)
		require.NoError(t, err)
	}

	wallet, err := f.svc.Wallet(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, 60, wallet.Amount)
}

func TestPayDebitsWalletAndMarksPaid(t *testing.T) {
	f := newLedgerFixture()
	ctx := context.Background()

	booking := &model.Booking{Treatment: "Cleaning", Date: "2024-01-01", Patient: "a@x.com", Payment: model.PaymentStatusUnpaid}
	require.NoError(t, f.bookings.Create(ctx, booking))
	require.NoError(t, f.wallets.Credit(ctx, "a@x.com", 50))

	paid, err := f.svc.Pay(ctx, &model.PaymentRequest{
		AppointmentID: booking.ID.Hex(),
		Email:         "a@x.com",
		Price:         30,
	})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, paid.Payment)

	wallet, err := f.svc.Wallet(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, 20, wallet.Amount)

	// A second appointment at the same price no longer fits the balance.
	second := &model.Booking{Treatment: "Whitening", Date: "2024-01-02", Patient: "a@x.com", Payment: model.PaymentStatusUnpaid}
	require.NoError(t, f.bookings.Create(ctx, second))

	_, err = f.svc.Pay(ctx, &model.PaymentRequest{
		AppointmentID: second.ID.Hex(),
		Email:         "a@x.com",
		Price:         30,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient amount")
	assert.Equal(t, model.PaymentStatusUnpaid, second.Payment)

	wallet, err = f.svc.Wallet(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, 20, wallet.Amount)
}

func TestPayUnknownBooking(t *testing.T) {
	f := newLedgerFixture()

	_, err := f.svc.Pay(context.Background(), &model.PaymentRequest{
		AppointmentID: primitive.NewObjectID().Hex(),
		Email:         "a@x.com",
		Price:         30,
	})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestWalletMissing(t *testing.T) {
	f := newLedgerFixture()

	_, err := f.svc.Wallet(context.Background(), "nobody@x.com")
	assert.True(t, apperrors.IsNotFound(err))
}
