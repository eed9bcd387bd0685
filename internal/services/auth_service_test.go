package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"employee-system/internal/dto"
	"employee-system/pkg/config"
	apperrors "employee-system/pkg/errors"
	"employee-system/pkg/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type authFixture struct {
	repo  *fakeEmployeeRepo
	cache *fakeCache
	jwt   service.JWTService
	svc   AuthServiceInterface
}

func newAuthFixture(t *testing.T) *authFixture {
	admin := newEmployee(1, "A1", "Ada", "Admin")
	admin.Job.IsAdmin = true
	admin.Job.PasswordHash = hashed(t, "adminpass")
	emp := newEmployee(2, "E2", "Bob", "Ray")
	emp.Job.PasswordHash = hashed(t, "bobpass1")

	f := &authFixture{
		repo:  newFakeEmployeeRepo(admin, emp),
		cache: newFakeCache(),
		jwt:   service.NewJWTService("test-secret", time.Hour, 2*time.Hour, zap.NewNop()),
	}
	cfg := config.AuthConfig{MaxLoginAttempts: 3, LockoutDuration: 15 * time.Minute}
	f.svc = NewAuthService(f.repo, f.cache, f.jwt, cfg, zap.NewNop())
	return f
}

func TestAuthService_LoginAdmin(t *testing.T) {
	f := newAuthFixture(t)

	resp, err := f.svc.LoginAdmin(context.Background(), dto.LoginDTO{Email: "ada@example.com", Password: "adminpass"})
	require.NoError(t, err)
	assert.True(t, resp.IsAdmin)
	assert.Equal(t, "Ada Admin", resp.Name)

	claims, err := f.jwt.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), claims.EmployeeID)
	assert.True(t, claims.IsAdmin)
	assert.True(t, f.repo.get(1).Status.Logged)
}

func TestAuthService_RoleMismatch(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.LoginAdmin(ctx, dto.LoginDTO{Email: "bob@example.com", Password: "bobpass1"})
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))

	_, err = f.svc.LoginEmployee(ctx, dto.LoginDTO{Email: "ada@example.com", Password: "adminpass"})
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))

	_, found := f.cache.values["login_attempts:2"]
	assert.False(t, found, "a wrong entry point is not a failed attempt")
}

func TestAuthService_UnknownEmailAndDisabledAccount(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.LoginEmployee(ctx, dto.LoginDTO{Email: "ghost@example.com", Password: "x"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))

	f.repo.get(2).Status.IsDeleted = true
	_, err = f.svc.LoginEmployee(ctx, dto.LoginDTO{Email: "bob@example.com", Password: "bobpass1"})
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))
}

func TestAuthService_LockoutAfterRepeatedFailures(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.svc.LoginEmployee(ctx, dto.LoginDTO{Email: "bob@example.com", Password: "wrong"})
		assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials), "attempt %d", i+1)
	}
	locked, _ := f.cache.Exists(ctx, "lockout:2")
	assert.True(t, locked)
	assert.Equal(t, 15*time.Minute, f.cache.expires["lockout:2"])

	_, err := f.svc.LoginEmployee(ctx, dto.LoginDTO{Email: "bob@example.com", Password: "bobpass1"})
	assert.Equal(t, http.StatusTooManyRequests, httpStatus(t, err))

	require.NoError(t, f.cache.Del(ctx, "lockout:2"))
	_, err = f.svc.LoginEmployee(ctx, dto.LoginDTO{Email: "bob@example.com", Password: "bobpass1"})
	assert.NoError(t, err)
}

func TestAuthService_SuccessResetsAttempts(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.LoginEmployee(ctx, dto.LoginDTO{Email: "bob@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, "1", f.cache.values["login_attempts:2"])

	_, err = f.svc.LoginEmployee(ctx, dto.LoginDTO{Email: "bob@example.com", Password: "bobpass1"})
	require.NoError(t, err)
	_, found := f.cache.values["login_attempts:2"]
	assert.False(t, found)
}
