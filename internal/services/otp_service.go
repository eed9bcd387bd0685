package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"employee-system/internal/dto"
	"employee-system/internal/repositories"
	"employee-system/pkg/config"
	"employee-system/pkg/constants"
	apperrors "employee-system/pkg/errors"
	"employee-system/pkg/mailer"

	"go.uber.org/zap"
)

type OTPServiceInterface interface {
	SendToAdmin(ctx context.Context, email string) (*dto.OTPResponseDTO, error)
	SendToEmployee(ctx context.Context, email string) (*dto.OTPResponseDTO, error)
	Verify(ctx context.Context, empID uint64, code string) error
}

type OTPService struct {
	repo      repositories.EmployeeRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	mailer    mailer.Mailer
	cfg       config.AuthConfig
	logger    *zap.Logger
	now       func() time.Time
	generate  func() (string, error)
}

func NewOTPService(
	repo repositories.EmployeeRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	m mailer.Mailer,
	cfg config.AuthConfig,
	logger *zap.Logger,
) OTPServiceInterface {
	return &OTPService{
		repo:      repo,
		cacheRepo: cacheRepo,
		mailer:    m,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
		generate:  GenerateOTP,
	}
}

var otpUpperBound = big.NewInt(1_000_000)

// GenerateOTP returns a zero padded code drawn uniformly from [000000, 999999].
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpUpperBound)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", constants.OTPLength, n.Int64()), nil
}

func (s *OTPService) SendToAdmin(ctx context.Context, email string) (*dto.OTPResponseDTO, error) {
	return s.send(ctx, email, true)
}

func (s *OTPService) SendToEmployee(ctx context.Context, email string) (*dto.OTPResponseDTO, error) {
	return s.send(ctx, email, false)
}

func (s *OTPService) send(ctx context.Context, email string, toAdmin bool) (*dto.OTPResponseDTO, error) {
	employee, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewInvalidInputError("Employee not found with email: %s", email)
		}
		return nil, err
	}
	if toAdmin && !employee.Job.IsAdmin {
		return nil, apperrors.NewInvalidInputError("Email does not belong to an admin")
	}
	if !toAdmin && employee.Job.IsAdmin {
		return nil, apperrors.NewInvalidInputError("Email must belong to a non-admin employee")
	}
	logger := s.logger.With(zap.Uint64("empID", employee.ID))

	if err := s.throttle(ctx, employee.ID); err != nil {
		logger.Warn("OTP requests throttled")
		return nil, err
	}

	code, err := s.generate()
	if err != nil {
		return nil, fmt.Errorf("generate OTP: %w", err)
	}
	expiry := s.now().Add(s.cfg.VerificationCodeTTL)
	if err := s.repo.SetOTP(ctx, employee.ID, code, expiry); err != nil {
		return nil, err
	}

	body := fmt.Sprintf("Dear %s,\n\nYour OTP is %s. It is valid for %.0f minutes.\n",
		employee.FullName(), code, s.cfg.VerificationCodeTTL.Minutes())
	if err := s.mailer.Send(ctx, employee.Contact.Email, constants.OTPMailSubject, body); err != nil {
		return nil, apperrors.NewHttpError(http.StatusInternalServerError, "Failed to send OTP", err, nil)
	}

	logger.Info("OTP sent")
	return &dto.OTPResponseDTO{
		EmpID:   employee.ID,
		Message: "OTP sent successfully to " + employee.Contact.Email,
		Status:  "success",
	}, nil
}

// throttle allows MaxOTPRequests sends per employee per LockoutDuration.
func (s *OTPService) throttle(ctx context.Context, empID uint64) error {
	if s.cfg.MaxOTPRequests <= 0 {
		return nil
	}
	key := fmt.Sprintf(constants.CacheKeyOTPRequests, empID)
	count, err := s.cacheRepo.Incr(ctx, key)
	if err != nil {
		return err
	}
	if count == 1 {
		if _, err := s.cacheRepo.Expire(ctx, key, s.cfg.LockoutDuration); err != nil {
			return err
		}
	}
	if count > int64(s.cfg.MaxOTPRequests) {
		return apperrors.NewHttpError(
			http.StatusTooManyRequests,
			fmt.Sprintf("Too many OTP requests. Try again in %.0f minutes.", s.cfg.LockoutDuration.Minutes()),
			apperrors.ErrTooManyRequests,
			nil,
		)
	}
	return nil
}

// Verify is single use: a matching code is cleared and an expired one is discarded.
func (s *OTPService) Verify(ctx context.Context, empID uint64, code string) error {
	employee, err := s.repo.FindByID(ctx, empID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return employeeNotFound(empID)
		}
		return err
	}
	logger := s.logger.With(zap.Uint64("empID", empID))

	stored := employee.Status.OTP
	if stored == nil || *stored == "" || employee.Status.OTPExpiry == nil {
		return apperrors.NewHttpError(http.StatusBadRequest, "No OTP record found", apperrors.ErrOTPNotIssued, nil)
	}

	if subtle.ConstantTimeCompare([]byte(*stored), []byte(code)) != 1 {
		logger.Warn("invalid OTP")
		return apperrors.NewHttpError(http.StatusBadRequest, "Invalid OTP", apperrors.ErrOTPInvalid, nil)
	}

	if s.now().After(*employee.Status.OTPExpiry) {
		if err := s.repo.ClearOTP(ctx, empID); err != nil {
			logger.Warn("failed to clear expired OTP", zap.Error(err))
		}
		return apperrors.NewHttpError(http.StatusBadRequest, "OTP expired", apperrors.ErrOTPExpired, nil)
	}

	if err := s.repo.ClearOTP(ctx, empID); err != nil {
		return err
	}
	if err := s.cacheRepo.Set(ctx, fmt.Sprintf(constants.CacheKeyOTPVerified, empID), "1", s.cfg.ResetTokenTTL); err != nil {
		return err
	}
	if err := s.cacheRepo.Del(ctx, fmt.Sprintf(constants.CacheKeyOTPRequests, empID)); err != nil {
		logger.Warn("failed to reset OTP request counter", zap.Error(err))
	}

	logger.Info("OTP verified")
	return nil
}
