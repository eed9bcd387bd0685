package controllers

import (
	"net/http"

	"employee-system/internal/services"
	"employee-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// StatsController serves the dashboard charts and the birth-month listing.
type StatsController struct {
	statsService services.EmployeeStatsServiceInterface
	logger       *zap.Logger
}

func NewStatsController(statsService services.EmployeeStatsServiceInterface, logger *zap.Logger) *StatsController {
	return &StatsController{statsService: statsService, logger: logger}
}

func (ctrl *StatsController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *StatsController) GetEmpByMonth(c echo.Context) error {
	month, err := utils.QueryInt(c, "month", 0)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	res, err := ctrl.statsService.ByBirthMonth(c.Request().Context(), month)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Employees fetched successfully", http.StatusOK)
}

func (ctrl *StatsController) GetLineChartData(c echo.Context) error {
	res, err := ctrl.statsService.DivisionCounts(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Division data fetched successfully", http.StatusOK)
}

func (ctrl *StatsController) GetPieChartData(c echo.Context) error {
	res, err := ctrl.statsService.GenderByFunction(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Gender data fetched successfully", http.StatusOK)
}

func (ctrl *StatsController) GetBloodGroupData(c echo.Context) error {
	res, err := ctrl.statsService.BloodGroupCounts(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, "Blood group data fetched successfully", http.StatusOK)
}
