package account

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/doctorsportal/booking-api/internal/model"
	"github.com/doctorsportal/booking-api/pkg/auth"
	apperrors "github.com/doctorsportal/booking-api/pkg/errors"
)

type fakeUserRepo struct {
	users map[string]*model.User
}

func (r *fakeUserRepo) Upsert(_ context.Context, u *model.User) (*model.User, error) {
	if r.users == nil {
		r.users = map[string]*model.User{}
	}
	if existing, ok := r.users[u.Email]; ok {
		role := existing.Role
		id := existing.ID
		*existing = *u
		existing.Role = role
		existing.ID = id
		return existing, nil
	}
	u.ID = primitive.NewObjectID()
	r.users[u.Email] = u
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return r.users[email], nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*model.User, error) {
	out := []*model.User{}
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) SetRole(_ context.Context, email string, role model.Role) error {
	if u, ok := r.users[email]; ok {
		u.Role = role
	}
	return nil
}

func newTestService(users *fakeUserRepo) *Service {
	return NewService(users, auth.NewTokenService("test-secret", time.Hour))
}

func TestUpsertIssuesToken(t *testing.T) {
	users := &fakeUserRepo{}
	svc := newTestService(users)

	resp, err := svc.Upsert(context.Background(), "a@x.com", &model.UpsertUserRequest{
		Name:  "Alice",
		Phone: "123",
	})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", resp.User.Email)
	assert.Equal(t, "Alice", resp.User.Name)
	assert.NotEmpty(t, resp.Token)

	claims, err := auth.NewTokenService("test-secret", time.Hour).Validate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestUpsertPreservesRole(t *testing.T) {
	users := &fakeUserRepo{}
	svc := newTestService(users)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, "a@x.com", &model.UpsertUserRequest{Name: "Alice"})
	require.NoError(t, err)
	require.NoError(t, svc.Promote(ctx, "a@x.com"))

	// Re-upserting the profile must not strip the admin role.
	resp, err := svc.Upsert(ctx, "a@x.com", &model.UpsertUserRequest{Name: "Alice B"})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", resp.User.Name)
	assert.Equal(t, model.RoleAdmin, resp.User.Role)
}

func TestIsAdmin(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*model.User{
		"admin@x.com":   {Email: "admin@x.com", Role: model.RoleAdmin},
		"patient@x.com": {Email: "patient@x.com", Role: model.RolePatient},
	}}
	svc := newTestService(users)
	ctx := context.Background()

	admin, err := svc.IsAdmin(ctx, "admin@x.com")
	require.NoError(t, err)
	assert.True(t, admin)

	admin, err = svc.IsAdmin(ctx, "patient@x.com")
	require.NoError(t, err)
	assert.False(t, admin)

	// Absent account checks as non-admin, not as an error.
	admin, err = svc.IsAdmin(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.False(t, admin)
}

func TestPromoteMissingUser(t *testing.T) {
	svc := newTestService(&fakeUserRepo{})

	err := svc.Promote(context.Background(), "nobody@x.com")
	assert.True(t, apperrors.IsNotFound(err))
}
