package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/doctorsportal/booking-api/internal/config"
	"github.com/doctorsportal/booking-api/internal/model"
)

// Sender delivers booking confirmations. Delivery is best-effort;
// callers log failures and continue.
type Sender interface {
	SendBookingConfirmation(booking *model.Booking) error
}

// NewSender returns a gomail-backed sender, or a noop sender when no
// SMTP host is configured.
func NewSender(cfg config.SMTPConfig) Sender {
	if cfg.Host == "" {
		return noopSender{}
	}
	return &smtpSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

type smtpSender struct {
	dialer *gomail.Dialer
	from   string
}

func (s *smtpSender) SendBookingConfirmation(booking *model.Booking) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", booking.Patient)
	m.SetHeader("Subject", fmt.Sprintf("Your appointment for %s on %s is confirmed", booking.Treatment, booking.Date))
	m.SetBody("text/plain", fmt.Sprintf(
		"Hello %s,\n\nYour appointment for %s on %s at %s is confirmed.\n\nDoctors Portal",
		booking.PatientName, booking.Treatment, booking.Date, booking.Slot,
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	return nil
}

type noopSender struct{}

func (noopSender) SendBookingConfirmation(*model.Booking) error {
	return nil
}
