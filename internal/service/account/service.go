package account

import (
	"context"
	"fmt"

	"github.com/doctorsportal/booking-api/internal/model"
	"github.com/doctorsportal/booking-api/internal/repository"
	"github.com/doctorsportal/booking-api/pkg/auth"
	apperrors "github.com/doctorsportal/booking-api/pkg/errors"
)

type Service struct {
	users  repository.UserRepository
	tokens auth.TokenService
}

func NewService(users repository.UserRepository, tokens auth.TokenService) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
	}
}

// Upsert stores the profile keyed by email and issues a fresh session
// credential bound to it.
func (s *Service) Upsert(ctx context.Context, email string, req *model.UpsertUserRequest) (*model.UpsertUserResponse, error) {
	user := &model.User{
		Email:     email,
		Name:      req.Name,
		Phone:     req.Phone,
		Education: req.Education,
		District:  req.District,
	}

	stored, err := s.users.Upsert(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	token, err := s.tokens.Generate(email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session credential: %w", err)
	}

	return &model.UpsertUserResponse{User: stored, Token: token}, nil
}

// IsAdmin reports whether the account has the admin role. An absent
// account is not admin.
func (s *Service) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("failed to look up user: %w", err)
	}
	return user != nil && user.Role.IsAdmin(), nil
}

// Promote grants the admin role to an existing account.
func (s *Service) Promote(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return apperrors.NotFound("user", nil)
	}

	if err := s.users.SetRole(ctx, email, model.RoleAdmin); err != nil {
		return fmt.Errorf("failed to promote user: %w", err)
	}
	return nil
}

// List returns all accounts.
func (s *Service) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
