package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-rooms/models"
	"hotel-rooms/stores"
)

func newAuthFixture(t *testing.T) (*AuthService, models.Admin) {
	t.Helper()
	mem := stores.NewMemoryDB()
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	admin := mem.PutAdmin(models.Admin{FullName: "Front Desk", Username: "desk@hotel.local", Password: hash, Role: models.RoleStaff})

	svc := NewAuthService(mem.Admins(), mem.Sessions(), time.Hour)
	svc.NewToken = func() string { return "tok-1" }
	return svc, admin
}

func TestLoginAndAuthenticate(t *testing.T) {
	svc, admin := newAuthFixture(t)
	ctx := context.Background()

	token, expires, err := svc.Login(ctx, " desk@hotel.local ", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

	got, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)
	assert.Equal(t, models.RoleStaff, got.Role)

	require.NoError(t, svc.Logout(ctx, token))
	_, err = svc.Authenticate(ctx, token)
	assert.True(t, IsKind(err, KindUnauthorized))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, _, err := svc.Login(ctx, "desk@hotel.local", "wrong")
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))

	_, _, err = svc.Login(ctx, "nobody@hotel.local", "s3cret")
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))

	_, _, err = svc.Login(ctx, "", "")
	assert.True(t, IsKind(err, KindValidation))
}

func TestAuthenticateExpiredSession(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	token, _, err := svc.Login(ctx, "desk@hotel.local", "s3cret")
	require.NoError(t, err)

	svc.Now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.Authenticate(ctx, token)
	require.Error(t, err)
	assert.Equal(t, "Session expired", err.Error())

	_, err = svc.Authenticate(ctx, "")
	assert.True(t, IsKind(err, KindUnauthorized))
}
