package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/doctorsportal/booking-api/internal/email"
	"github.com/doctorsportal/booking-api/internal/model"
	"github.com/doctorsportal/booking-api/internal/repository"
	apperrors "github.com/doctorsportal/booking-api/pkg/errors"
)

const (
	availabilityCacheTTL     = 30 * time.Second
	availabilityCacheCleanup = time.Minute
)

type Service struct {
	bookings repository.BookingRepository
	services repository.ServiceRepository
	users    repository.UserRepository
	mailer   email.Sender

	// availability per date, derived at read time
	availability *cache.Cache
}

func NewService(bookings repository.BookingRepository, services repository.ServiceRepository,
	users repository.UserRepository, mailer email.Sender) *Service {
	return &Service{
		bookings:     bookings,
		services:     services,
		users:        users,
		mailer:       mailer,
		availability: cache.New(availabilityCacheTTL, availabilityCacheCleanup),
	}
}

// Create inserts a booking unless one already exists for the same
// (treatment, date, patient) triple. A duplicate is not an error: the
// existing record is returned with Success false.
func (s *Service) Create(ctx context.Context, req *model.CreateBookingRequest) (*model.CreateBookingResponse, error) {
	existing, err := s.bookings.FindByTriple(ctx, req.Treatment, req.Date, req.Patient)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing booking: %w", err)
	}
	if existing != nil {
		return &model.CreateBookingResponse{Success: false, Booking: existing}, nil
	}

	booking := &model.Booking{
		Treatment:   req.Treatment,
		Date:        req.Date,
		Slot:        req.Slot,
		Patient:     req.Patient,
		PatientName: req.PatientName,
		Phone:       req.Phone,
		Payment:     model.PaymentStatusUnpaid,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.availability.Delete(req.Date)

	if err := s.mailer.SendBookingConfirmation(booking); err != nil {
		log.Warn().Err(err).
			Str("patient", booking.Patient).
			Str("treatment", booking.Treatment).
			Msg("failed to send booking confirmation")
	}

	return &model.CreateBookingResponse{Success: true, Booking: booking}, nil
}

// List returns all bookings for admin callers and only the caller's
// own bookings otherwise. An absent account is treated as non-admin.
func (s *Service) List(ctx context.Context, callerEmail string) ([]*model.Booking, error) {
	user, err := s.users.GetByEmail(ctx, callerEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to look up caller: %w", err)
	}

	if user != nil && user.Role.IsAdmin() {
		bookings, err := s.bookings.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list bookings: %w", err)
		}
		return bookings, nil
	}

	bookings, err := s.bookings.ListByPatient(ctx, callerEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// Delete removes a booking by id. Ownership is not checked.
func (s *Service) Delete(ctx context.Context, id string) error {
	booking, err := s.bookings.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get booking: %w", err)
	}
	if booking == nil {
		return apperrors.NotFound("booking", nil)
	}

	if err := s.bookings.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.availability.Delete(booking.Date)
	return nil
}

// Availability returns the services offered on a date with their
// slots reduced to the ones not yet booked. Slot labels are the
// equality key.
func (s *Service) Availability(ctx context.Context, date string) ([]*model.Service, error) {
	if cached, ok := s.availability.Get(date); ok {
		return cached.([]*model.Service), nil
	}

	services, err := s.services.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	bookings, err := s.bookings.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookedByTreatment := make(map[string]map[string]bool)
	for _, b := range bookings {
		if bookedByTreatment[b.Treatment] == nil {
			bookedByTreatment[b.Treatment] = make(map[string]bool)
		}
		bookedByTreatment[b.Treatment][b.Slot] = true
	}

	for _, svc := range services {
		booked := bookedByTreatment[svc.Name]
		if len(booked) == 0 {
			continue
		}
		available := make([]string, 0, len(svc.Slots))
		for _, slot := range svc.Slots {
			if !booked[slot] {
				available = append(available, slot)
			}
		}
		svc.Slots = available
	}

	s.availability.Set(date, services, cache.DefaultExpiration)
	return services, nil
}
