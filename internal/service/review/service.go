package review

import (
	"context"
	"fmt"

	"github.com/doctorsportal/booking-api/internal/model"
	"github.com/doctorsportal/booking-api/internal/repository"
)

type Service struct {
	repo repository.ReviewRepository
}

func NewService(repo repository.ReviewRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, review *model.Review) error {
	if err := s.repo.Create(ctx, review); err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]*model.Review, error) {
	reviews, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}
