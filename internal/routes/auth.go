package routes

import (
	"employee-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

// runAuthRouter registers the routes that must stay reachable without a token.
func runAuthRouter(api *echo.Group, authCtrl *controllers.AuthController) {
	api.POST("/auth/login", authCtrl.LoginEmployee)

	employees := api.Group("/employees")
	{
		employees.POST("/loginAdmin", authCtrl.LoginAdmin)
		employees.POST("/loginEmployee", authCtrl.LoginEmployee)
		employees.POST("/sendAdminOTP", authCtrl.SendAdminOTP)
		employees.POST("/sendEmployeeOTP", authCtrl.SendEmployeeOTP)
		employees.POST("/verifyOTP", authCtrl.VerifyOTP)
		employees.POST("/forgotPassword", authCtrl.ForgotPassword)
	}
}
