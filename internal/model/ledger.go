package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Token status constants. A token transitions unsold to sold exactly
// once.
const (
	TokenStatusUnsold = "unsold"
	TokenStatusSold   = "sold"
)

// Token is a prepaid redeemable unit minted by an admin. Distinct
// from the session credential.
type Token struct {
	ID     primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Token  string             `json:"token" bson:"token"`
	Price  int                `json:"price" bson:"price"`
	Status string             `json:"status" bson:"status"`
}

// UserToken links a sold token to a buyer until it is redeemed into
// the buyer's wallet.
type UserToken struct {
	ID    primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Email string             `json:"email" bson:"email"`
	Token string             `json:"token" bson:"token"`
	Price int                `json:"price" bson:"price"`
}

// Wallet is a per-email running balance, credited by token redemption
// and debited by booking payment.
type Wallet struct {
	ID     primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Email  string             `json:"email" bson:"email"`
	Amount int                `json:"amount" bson:"amount"`
}

// AddTokenRequest mints a new prepaid token.
type AddTokenRequest struct {
	Price int `json:"price" binding:"required,gt=0"`
}

// BuyTokenRequest purchases an unsold token at the given price.
type BuyTokenRequest struct {
	Email string `json:"email" binding:"required,email"`
	Price int    `json:"price" binding:"required,gt=0"`
}

// RechargeWalletRequest redeems a purchased token into the buyer's
// wallet.
type RechargeWalletRequest struct {
	Token string `json:"token" binding:"required"`
}

// PaymentRequest debits a wallet and marks a booking paid.
type PaymentRequest struct {
	AppointmentID string `json:"appointmentId" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Price         int    `json:"price" binding:"required,gt=0"`
}
