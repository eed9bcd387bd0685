package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"employee-system/internal/dto"
	"employee-system/internal/entities"
	"employee-system/internal/repositories"
	"employee-system/pkg/config"
	"employee-system/pkg/constants"
	apperrors "employee-system/pkg/errors"
	"employee-system/pkg/service"
	"employee-system/pkg/utils"

	"go.uber.org/zap"
)

type AuthServiceInterface interface {
	LoginAdmin(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error)
	LoginEmployee(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error)
}

type AuthService struct {
	repo       repositories.EmployeeRepositoryInterface
	cacheRepo  repositories.CacheRepositoryInterface
	jwtService service.JWTService
	cfg        config.AuthConfig
	logger     *zap.Logger
	now        func() time.Time
}

func NewAuthService(
	repo repositories.EmployeeRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	cfg config.AuthConfig,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		repo:       repo,
		cacheRepo:  cacheRepo,
		jwtService: jwtService,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *AuthService) LoginAdmin(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error) {
	return s.login(ctx, payload, true)
}

func (s *AuthService) LoginEmployee(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error) {
	return s.login(ctx, payload, false)
}

func invalidCredentials() error {
	return apperrors.NewHttpError(http.StatusUnauthorized, "Invalid email or password", apperrors.ErrInvalidCredentials, nil)
}

// login checks the entry point's role before the password, so a wrong role
// never counts as a failed attempt.
func (s *AuthService) login(ctx context.Context, payload dto.LoginDTO, asAdmin bool) (*dto.LoginResponseDTO, error) {
	employee, err := s.repo.FindByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn("login with unknown email", zap.String("email", payload.Email))
			return nil, invalidCredentials()
		}
		return nil, err
	}
	logger := s.logger.With(zap.Uint64("empID", employee.ID), zap.Bool("asAdmin", asAdmin))

	if err := s.checkLockout(ctx, employee.ID); err != nil {
		logger.Warn("login attempt on a locked account")
		return nil, err
	}

	if employee.Status.IsDeleted {
		return nil, apperrors.NewUnauthorizedError("Account is disabled")
	}
	if employee.Job.IsAdmin != asAdmin {
		if asAdmin {
			return nil, apperrors.NewUnauthorizedError("Access denied: not an admin account")
		}
		return nil, apperrors.NewUnauthorizedError("Admins must sign in through the admin login")
	}

	if err := utils.ComparePasswords(employee.Job.PasswordHash, payload.Password); err != nil {
		s.registerFailedAttempt(ctx, logger, employee.ID)
		return nil, invalidCredentials()
	}

	if err := s.cacheRepo.Del(ctx, fmt.Sprintf(constants.CacheKeyLoginAttempts, employee.ID)); err != nil {
		logger.Warn("failed to reset login attempts", zap.Error(err))
	}

	if err := s.repo.MarkLoggedIn(ctx, employee.ID, s.now()); err != nil {
		return nil, err
	}

	accessToken, _, err := s.jwtService.GenerateTokens(employee.ID, asAdmin)
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusInternalServerError, "Failed to issue access token", err, nil)
	}

	logger.Info("login succeeded")
	return toLoginResponse(employee, asAdmin, accessToken), nil
}

func (s *AuthService) checkLockout(ctx context.Context, id uint64) error {
	locked, err := s.cacheRepo.Exists(ctx, fmt.Sprintf(constants.CacheKeyLockout, id))
	if err != nil {
		return err
	}
	if locked {
		return apperrors.NewHttpError(
			http.StatusTooManyRequests,
			fmt.Sprintf("Too many failed attempts. Try again in %.0f minutes.", s.cfg.LockoutDuration.Minutes()),
			apperrors.ErrTooManyRequests,
			nil,
		)
	}
	return nil
}

func (s *AuthService) registerFailedAttempt(ctx context.Context, logger *zap.Logger, id uint64) {
	attemptsKey := fmt.Sprintf(constants.CacheKeyLoginAttempts, id)
	attempts, err := s.cacheRepo.Incr(ctx, attemptsKey)
	if err != nil {
		logger.Error("failed to count login attempt", zap.Error(err))
		return
	}
	if attempts == 1 {
		if _, err := s.cacheRepo.Expire(ctx, attemptsKey, s.cfg.LockoutDuration); err != nil {
			logger.Warn("failed to set login attempt window", zap.Error(err))
		}
	}
	logger.Warn("wrong password", zap.Int64("attempts", attempts))

	if attempts >= int64(s.cfg.MaxLoginAttempts) {
		if err := s.cacheRepo.Set(ctx, fmt.Sprintf(constants.CacheKeyLockout, id), "locked", s.cfg.LockoutDuration); err != nil {
			logger.Error("failed to lock account", zap.Error(err))
			return
		}
		if err := s.cacheRepo.Del(ctx, attemptsKey); err != nil {
			logger.Warn("failed to reset login attempts", zap.Error(err))
		}
		logger.Warn("account locked")
	}
}

func toLoginResponse(e *entities.Employee, isAdmin bool, accessToken string) *dto.LoginResponseDTO {
	return &dto.LoginResponseDTO{
		ID:          e.ID,
		Name:        e.FullName(),
		Email:       e.Contact.Email,
		PhotoLink:   e.Profile.PhotoLink,
		IsAdmin:     isAdmin,
		AccessToken: accessToken,
	}
}
