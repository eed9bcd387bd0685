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

// EmployeeRequestController handles edit requests and the decision shown to the requester.
type EmployeeRequestController struct {
	requestService services.EmployeeRequestServiceInterface
	logger         *zap.Logger
}

func NewEmployeeRequestController(requestService services.EmployeeRequestServiceInterface, logger *zap.Logger) *EmployeeRequestController {
	return &EmployeeRequestController{requestService: requestService, logger: logger}
}

func (ctrl *EmployeeRequestController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *EmployeeRequestController) RequestUpdate(c echo.Context) error {
	id, err := employeeID(c)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	var payload dto.EmployeeUpdateDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewBadRequestError("Invalid request payload"))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.requestService.Submit(c.Request().Context(), id, payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Update request submitted", http.StatusOK)
}

func (ctrl *EmployeeRequestController) RequestsData(c echo.Context) error {
	res, err := ctrl.requestService.List(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Requests fetched successfully", http.StatusOK)
}

func (ctrl *EmployeeRequestController) RequestsDataSpecific(c echo.Context) error {
	requestID, err := utils.QueryUint64(c, "requestId")
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	res, err := ctrl.requestService.Get(c.Request().Context(), requestID)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Request fetched successfully", http.StatusOK)
}

func (ctrl *EmployeeRequestController) DeleteRequest(c echo.Context) error {
	requestID, err := utils.QueryUint64(c, "requestId")
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	if err := ctrl.requestService.Delete(c.Request().Context(), requestID); err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, nil, "Request deleted successfully", http.StatusOK)
}

func (ctrl *EmployeeRequestController) RequestCount(c echo.Context) error {
	count, err := ctrl.requestService.Count(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.CountDTO{Count: count}, "Request count fetched successfully", http.StatusOK)
}

func (ctrl *EmployeeRequestController) MyRequestStatus(c echo.Context) error {
	empID, err := utils.QueryUint64(c, "emp_id", "empId")
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	res, err := ctrl.requestService.GetState(c.Request().Context(), empID)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Request status fetched successfully", http.StatusOK)
}

func (ctrl *EmployeeRequestController) SetRequestStatus(c echo.Context) error {
	var payload dto.RequestStatusDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewBadRequestError("Invalid request status payload"))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	if err := ctrl.requestService.SetState(c.Request().Context(), payload); err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, nil, "Request status updated", http.StatusOK)
}

func (ctrl *EmployeeRequestController) DeleteMyRequestStatus(c echo.Context) error {
	empID, err := utils.QueryUint64(c, "empId", "emp_id")
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	if err := ctrl.requestService.DeleteState(c.Request().Context(), empID); err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, nil, "Request status deleted", http.StatusOK)
}
