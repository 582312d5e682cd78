package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/doctorsportal/booking-api/internal/model"
	bookingService "github.com/doctorsportal/booking-api/internal/service/booking"
)

type stubBookingRepo struct {
	bookings []*model.Booking
}

func (r *stubBookingRepo) Create(_ context.Context, b *model.Booking) error {
	b.ID = primitive.NewObjectID()
	r.bookings = append(r.bookings, b)
	return nil
}

func (r *stubBookingRepo) Get(_ context.Context, id string) (*model.Booking, error) {
	for _, b := range r.bookings {
		if b.ID.Hex() == id {
			return b, nil
		}
	}
	return nil, nil
}

func (r *stubBookingRepo) FindByTriple(_ context.Context, treatment, date, patient string) (*model.Booking, error) {
	for _, b := range r.bookings {
		if b.Treatment == treatment && b.Date == date && b.Patient == patient {
			return b, nil
		}
	}
	return nil, nil
}

func (r *stubBookingRepo) List(_ context.Context) ([]*model.Booking, error) {
	return r.bookings, nil
}

func (r *stubBookingRepo) ListByPatient(_ context.Context, _ string) ([]*model.Booking, error) {
	return nil, nil
}

func (r *stubBookingRepo) ListByDate(_ context.Context, date string) ([]*model.Booking, error) {
	out := []*model.Booking{}
	for _, b := range r.bookings {
		if b.Date == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *stubBookingRepo) Delete(_ context.Context, _ string) error { return nil }

func (r *stubBookingRepo) SetPayment(_ context.Context, _, _ string) error { return nil }

type stubServiceRepo struct{}

func (stubServiceRepo) Create(_ context.Context, _ *model.Service) error { return nil }

func (stubServiceRepo) GetByNameAndDate(_ context.Context, _, _ string) (*model.Service, error) {
	return nil, nil
}

func (stubServiceRepo) ListNames(_ context.Context) ([]*model.ServiceName, error) {
	return nil, nil
}

func (stubServiceRepo) ListByDate(_ context.Context, _ string) ([]*model.Service, error) {
	return nil, nil
}

type stubUserRepo struct{}

func (stubUserRepo) Upsert(_ context.Context, u *model.User) (*model.User, error) { return u, nil }

func (stubUserRepo) GetByEmail(_ context.Context, _ string) (*model.User, error) { return nil, nil }

func (stubUserRepo) List(_ context.Context) ([]*model.User, error) { return nil, nil }

func (stubUserRepo) SetRole(_ context.Context, _ string, _ model.Role) error { return nil }

type stubMailer struct{}

func (stubMailer) SendBookingConfirmation(*model.Booking) error { return nil }

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := bookingService.NewService(&stubBookingRepo{}, stubServiceRepo{}, stubUserRepo{}, stubMailer{})
	h := NewHandler(svc)

	r := gin.New()
	r.POST("/booking", h.CreateBooking)
	r.GET("/available", h.GetAvailability)
	return r
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateBookingStatusCodes(t *testing.T) {
	r := newTestRouter()

	body := model.CreateBookingRequest{
		Treatment:   "Cleaning",
		Date:        "2024-01-01",
		Slot:        "9am",
		Patient:     "a@x.com",
		PatientName: "Alice",
		Phone:       "123",
	}

	w := postJSON(r, "/booking", body)
	assert.Equal(t, http.StatusCreated, w.Code)

	var first model.CreateBookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.True(t, first.Success)

	// The duplicate is acknowledged, not rejected.
	w = postJSON(r, "/booking", body)
	assert.Equal(t, http.StatusOK, w.Code)

	var second model.CreateBookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.False(t, second.Success)
	assert.Equal(t, first.Booking.ID, second.Booking.ID)
}

func TestCreateBookingMissingFields(t *testing.T) {
	r := newTestRouter()

	w := postJSON(r, "/booking", map[string]string{"treatment": "Cleaning"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAvailabilityRequiresDate(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/available", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
