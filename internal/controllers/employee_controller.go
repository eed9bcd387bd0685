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

type EmployeeController struct {
	employeeService services.EmployeeServiceInterface
	importService   services.EmployeeImportServiceInterface
	logger          *zap.Logger
}

func NewEmployeeController(
	employeeService services.EmployeeServiceInterface,
	importService services.EmployeeImportServiceInterface,
	logger *zap.Logger,
) *EmployeeController {
	return &EmployeeController{employeeService: employeeService, importService: importService, logger: logger}
}

func (ctrl *EmployeeController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

// employeeID reads the "id" query parameter and falls back to the authenticated employee.
func employeeID(c echo.Context) (uint64, error) {
	id, err := utils.QueryUint64(c, "id", "empId", "emp_id")
	if err == nil {
		return id, nil
	}
	if ctxID, ctxErr := utils.EmployeeIDFromContext(c.Request().Context()); ctxErr == nil {
		return ctxID, nil
	}
	return 0, err
}

func bindIDs(c echo.Context) ([]uint64, error) {
	var payload dto.IDsDTO
	if err := c.Bind(&payload); err != nil {
		return nil, apperrors.NewBadRequestError("Invalid id list")
	}
	return payload.IDs, nil
}

func (ctrl *EmployeeController) Create(c echo.Context) error {
	var payload dto.EmployeeCreateDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewBadRequestError("Invalid employee payload"))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.employeeService.Create(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Employee created successfully", http.StatusCreated)
}

func (ctrl *EmployeeController) Update(c echo.Context) error {
	id, err := employeeID(c)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	var payload dto.EmployeeUpdateDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewBadRequestError("Invalid employee payload"))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.employeeService.Update(c.Request().Context(), id, payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Employee updated successfully", http.StatusOK)
}

func (ctrl *EmployeeController) MoveToRecycleBin(c echo.Context) error {
	id, err := utils.QueryUint64(c, "id")
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	if err := ctrl.employeeService.MoveToRecycleBin(c.Request().Context(), id); err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, nil, "Employee moved to recycle bin", http.StatusOK)
}

func (ctrl *EmployeeController) MoveMultipleToRecycleBin(c echo.Context) error {
	ids, err := bindIDs(c)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	if err := ctrl.employeeService.MoveMultipleToRecycleBin(c.Request().Context(), ids); err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, nil, "Employees moved to recycle bin", http.StatusOK)
}

func (ctrl *EmployeeController) RestoreFromRecycleBin(c echo.Context) error {
	ids, err := bindIDs(c)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	res, err := ctrl.employeeService.RestoreFromRecycleBin(c.Request().Context(), ids)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Employees restored successfully", http.StatusOK)
}

func (ctrl *EmployeeController) DeleteForever(c echo.Context) error {
	ids, err := bindIDs(c)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	deleted, err := ctrl.employeeService.DeleteForever(c.Request().Context(), ids)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.DeletedCountDTO{Deleted: deleted}, "Employees deleted permanently", http.StatusOK)
}

func (ctrl *EmployeeController) GetEmployeeChunk(c echo.Context) error {
	chunk, err := utils.QueryInt(c, "chunk", 1)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	res, err := ctrl.employeeService.GetChunk(c.Request().Context(), chunk)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Employees fetched successfully", http.StatusOK)
}

func (ctrl *EmployeeController) TotalChunks(c echo.Context) error {
	total, err := ctrl.employeeService.TotalChunks(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.ChunkCountDTO{TotalChunks: total}, "Total chunks fetched successfully", http.StatusOK)
}

func (ctrl *EmployeeController) GetAllEmployees(c echo.Context) error {
	res, err := ctrl.employeeService.GetAll(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Employees fetched successfully", http.StatusOK)
}

func (ctrl *EmployeeController) GetSpecificData(c echo.Context) error {
	id, err := employeeID(c)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	res, err := ctrl.employeeService.GetDetails(c.Request().Context(), id)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Employee fetched successfully", http.StatusOK)
}

func (ctrl *EmployeeController) GetRecycledData(c echo.Context) error {
	res, err := ctrl.employeeService.GetRecycled(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Recycled employees fetched successfully", http.StatusOK)
}

func (ctrl *EmployeeController) RecycleCount(c echo.Context) error {
	count, err := ctrl.employeeService.RecycleCount(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.CountDTO{Count: count}, "Recycle bin count fetched successfully", http.StatusOK)
}

func (ctrl *EmployeeController) ChangePassword(c echo.Context) error {
	id, err := employeeID(c)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	var payload dto.ChangePasswordDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewBadRequestError("Invalid password payload"))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	if err := ctrl.employeeService.ChangePassword(c.Request().Context(), id, payload); err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, nil, "Password changed successfully", http.StatusOK)
}

func (ctrl *EmployeeController) UploadPhoto(c echo.Context) error {
	id, err := employeeID(c)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	src, fileHeader, err := openUpload(c, constants.UploadContextProfilePhoto)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	defer src.Close()

	res, err := ctrl.employeeService.UploadPhoto(c.Request().Context(), id, fileHeader.Filename, src)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Photo uploaded successfully", http.StatusOK)
}

func (ctrl *EmployeeController) Import(c echo.Context) error {
	src, fileHeader, err := openUpload(c, constants.UploadContextEmployeeImport)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	defer src.Close()

	ctrl.logger.Info("employee import started", zap.String("filename", fileHeader.Filename), zap.Int64("size", fileHeader.Size))
	res, err := ctrl.importService.Import(c.Request().Context(), src)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Employees imported", http.StatusOK)
}
