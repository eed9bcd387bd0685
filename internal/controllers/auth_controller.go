package controllers

import (
	"context"
	"net/http"

	"employee-system/internal/dto"
	"employee-system/internal/services"
	apperrors "employee-system/pkg/errors"
	"employee-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthController serves login, OTP and password recovery. None of its routes require a token.
type AuthController struct {
	authService     services.AuthServiceInterface
	otpService      services.OTPServiceInterface
	employeeService services.EmployeeServiceInterface
	logger          *zap.Logger
}

func NewAuthController(
	authService services.AuthServiceInterface,
	otpService services.OTPServiceInterface,
	employeeService services.EmployeeServiceInterface,
	logger *zap.Logger,
) *AuthController {
	return &AuthController{
		authService:     authService,
		otpService:      otpService,
		employeeService: employeeService,
		logger:          logger,
	}
}

func (ctrl *AuthController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *AuthController) bindLogin(c echo.Context) (dto.LoginDTO, error) {
	var payload dto.LoginDTO
	if err := c.Bind(&payload); err != nil {
		return payload, apperrors.NewBadRequestError("Invalid login payload")
	}
	if err := c.Validate(&payload); err != nil {
		return payload, err
	}
	return payload, nil
}

func (ctrl *AuthController) LoginAdmin(c echo.Context) error {
	payload, err := ctrl.bindLogin(c)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.authService.LoginAdmin(c.Request().Context(), payload)
	if err != nil {
		ctrl.logger.Warn("LoginAdmin: rejected", zap.String("email", payload.Email), zap.Error(err))
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Login successful", http.StatusOK)
}

func (ctrl *AuthController) LoginEmployee(c echo.Context) error {
	payload, err := ctrl.bindLogin(c)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.authService.LoginEmployee(c.Request().Context(), payload)
	if err != nil {
		ctrl.logger.Warn("LoginEmployee: rejected", zap.String("email", payload.Email), zap.Error(err))
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Login successful", http.StatusOK)
}

func (ctrl *AuthController) SendAdminOTP(c echo.Context) error {
	return ctrl.sendOTP(c, ctrl.otpService.SendToAdmin)
}

func (ctrl *AuthController) SendEmployeeOTP(c echo.Context) error {
	return ctrl.sendOTP(c, ctrl.otpService.SendToEmployee)
}

func (ctrl *AuthController) sendOTP(c echo.Context, send func(ctx context.Context, email string) (*dto.OTPResponseDTO, error)) error {
	var payload dto.OTPRequestDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewBadRequestError("Invalid OTP request"))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := send(c.Request().Context(), payload.Email)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, res.Message, http.StatusOK)
}

func (ctrl *AuthController) VerifyOTP(c echo.Context) error {
	var payload dto.VerifyOTPDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewBadRequestError("Invalid OTP payload"))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	if err := ctrl.otpService.Verify(c.Request().Context(), payload.EmpID, payload.OTP); err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, nil, "OTP verified successfully", http.StatusOK)
}

func (ctrl *AuthController) ForgotPassword(c echo.Context) error {
	var payload dto.ForgotPasswordDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewBadRequestError("Invalid password reset payload"))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	if err := ctrl.employeeService.ResetPassword(c.Request().Context(), payload.Email, payload.NewPassword); err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, nil, "Password updated successfully", http.StatusOK)
}
