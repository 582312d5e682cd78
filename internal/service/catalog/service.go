package catalog

import (
	"context"
	"fmt"

	"github.com/doctorsportal/booking-api/internal/model"
	"github.com/doctorsportal/booking-api/internal/repository"
	apperrors "github.com/doctorsportal/booking-api/pkg/errors"
)

type Service struct {
	repo repository.ServiceRepository
}

func NewService(repo repository.ServiceRepository) *Service {
	return &Service{repo: repo}
}

// Create stores a new service. A service already existing for the
// same (date, name) pair is a conflict.
func (s *Service) Create(ctx context.Context, req *model.CreateServiceRequest) (*model.Service, error) {
	existing, err := s.repo.GetByNameAndDate(ctx, req.Name, req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing service: %w", err)
	}
	if existing != nil {
		return nil, apperrors.Conflict(fmt.Sprintf("service %q already exists for %s", req.Name, req.Date), nil)
	}

	service := &model.Service{
		Name:  req.Name,
		Date:  req.Date,
		Price: int(req.Price),
		Slots: req.Slots,
	}
	if err := s.repo.Create(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return service, nil
}

// ListNames returns the public name-only listing.
func (s *Service) ListNames(ctx context.Context) ([]*model.ServiceName, error) {
	names, err := s.repo.ListNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return names, nil
}

// ListByDate returns full service records for a date.
func (s *Service) ListByDate(ctx context.Context, date string) ([]*model.Service, error) {
	services, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}
