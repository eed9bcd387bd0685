package routes

import (
	"employee-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runIntercomRouter(secureGroup *echo.Group, intercomCtrl *controllers.IntercomController) {
	employees := secureGroup.Group("/employees")
	{
		employees.POST("/addNewIntercomData", intercomCtrl.AddNewIntercomData)
		employees.GET("/intercomData", intercomCtrl.IntercomData)
		employees.PUT("/updateIntercomData", intercomCtrl.UpdateIntercomData)
		employees.DELETE("/deleteIntercomBulk", intercomCtrl.DeleteIntercomBulk)
		employees.POST("/importIntercomBulk", intercomCtrl.ImportIntercomBulk)
	}
}
