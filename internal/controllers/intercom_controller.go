package controllers

import (
	"net/http"

	"employee-system/internal/dto"
	"employee-system/internal/services"
	"employee-system/pkg/constants"
	apperrors "employee-system/pkg/errors"
	"employee-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type IntercomController struct {
	intercomService services.IntercomServiceInterface
	importService   services.IntercomImportServiceInterface
	logger          *zap.Logger
}

func NewIntercomController(
	intercomService services.IntercomServiceInterface,
	importService services.IntercomImportServiceInterface,
	logger *zap.Logger,
) *IntercomController {
	return &IntercomController{intercomService: intercomService, importService: importService, logger: logger}
}

func (ctrl *IntercomController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *IntercomController) bindPayload(c echo.Context) (dto.EmployeeIntercomDTO, error) {
	var payload dto.EmployeeIntercomDTO
	if err := c.Bind(&payload); err != nil {
		return payload, apperrors.NewBadRequestError("Invalid intercom payload")
	}
	if err := c.Validate(&payload); err != nil {
		return payload, err
	}
	return payload, nil
}

func (ctrl *IntercomController) AddNewIntercomData(c echo.Context) error {
	payload, err := ctrl.bindPayload(c)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	res, err := ctrl.intercomService.AddOrUpdate(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Intercom data saved successfully", http.StatusOK)
}

func (ctrl *IntercomController) IntercomData(c echo.Context) error {
	res, err := ctrl.intercomService.List(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Intercom data fetched successfully", http.StatusOK)
}

func (ctrl *IntercomController) UpdateIntercomData(c echo.Context) error {
	id, err := utils.QueryUint64(c, "id")
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	payload, err := ctrl.bindPayload(c)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	res, err := ctrl.intercomService.Update(c.Request().Context(), id, payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Intercom data updated successfully", http.StatusOK)
}

func (ctrl *IntercomController) DeleteIntercomBulk(c echo.Context) error {
	ids, err := bindIDs(c)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	deleted, err := ctrl.intercomService.DeleteBulk(c.Request().Context(), ids)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.DeletedCountDTO{Deleted: deleted}, "Intercom data deleted successfully", http.StatusOK)
}

func (ctrl *IntercomController) ImportIntercomBulk(c echo.Context) error {
	src, fileHeader, err := openUpload(c, constants.UploadContextIntercomImport)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	defer src.Close()

	ctrl.logger.Info("intercom import started", zap.String("filename", fileHeader.Filename))
	res, err := ctrl.importService.Import(c.Request().Context(), src)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Intercom data imported", http.StatusOK)
}
