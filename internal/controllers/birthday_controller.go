package controllers

import (
	"net/http"

	"employee-system/internal/dto"
	"employee-system/internal/services"
	apperrors "employee-system/pkg/errors"
	"employee-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type BirthdayController struct {
	birthdayService services.BirthdayServiceInterface
	logger          *zap.Logger
}

func NewBirthdayController(birthdayService services.BirthdayServiceInterface, logger *zap.Logger) *BirthdayController {
	return &BirthdayController{birthdayService: birthdayService, logger: logger}
}

func (ctrl *BirthdayController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *BirthdayController) GetTodayData(c echo.Context) error {
	res, err := ctrl.birthdayService.BirthdaysToday(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Birthdays fetched successfully", http.StatusOK)
}

func (ctrl *BirthdayController) SendMessage(c echo.Context) error {
	var payload dto.BirthdayMessageRequestDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewBadRequestError("Invalid message payload"))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.birthdayService.Send(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Message sent successfully", http.StatusOK)
}

func (ctrl *BirthdayController) InboxData(c echo.Context) error {
	receiverID, err := utils.QueryUint64(c, "receiverId")
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	res, err := ctrl.birthdayService.Inbox(c.Request().Context(), receiverID)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Inbox fetched successfully", http.StatusOK)
}

func (ctrl *BirthdayController) ViewSenderMessages(c echo.Context) error {
	receiverID, err := utils.QueryUint64(c, "receiverId")
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	senderID, err := utils.QueryUint64(c, "senderId")
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.birthdayService.ViewSenderMessages(c.Request().Context(), receiverID, senderID)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Messages fetched successfully", http.StatusOK)
}

func (ctrl *BirthdayController) IsBirthday(c echo.Context) error {
	empID, err := utils.QueryUint64(c, "emp_id", "empId")
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	isBirthday, err := ctrl.birthdayService.CheckAndUpdateBirthdayStatus(c.Request().Context(), empID)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.BirthdayStatusDTO{IsBirthday: isBirthday}, "Birthday status fetched successfully", http.StatusOK)
}

func (ctrl *BirthdayController) CleanMessages(c echo.Context) error {
	deleted, err := ctrl.birthdayService.CleanOldMessages(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.DeletedCountDTO{Deleted: deleted}, "Old messages cleaned", http.StatusOK)
}
