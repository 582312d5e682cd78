package doctor

import (
	"context"
	"fmt"

	"github.com/doctorsportal/booking-api/internal/model"
	"github.com/doctorsportal/booking-api/internal/repository"
)

type Service struct {
	repo repository.DoctorRepository
}

func NewService(repo repository.DoctorRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	doctor := &model.Doctor{
		Name:      req.Name,
		Email:     req.Email,
		Specialty: req.Specialty,
		Image:     req.Image,
	}
	if err := s.repo.Create(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}
	return doctor, nil
}

func (s *Service) List(ctx context.Context) ([]*model.Doctor, error) {
	doctors, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (s *Service) Delete(ctx context.Context, email string) error {
	if err := s.repo.DeleteByEmail(ctx, email); err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}
	return nil
}
