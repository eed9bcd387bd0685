package routes

import (
	"employee-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runEmployeeRouter(secureGroup *echo.Group, employeeCtrl *controllers.EmployeeController, statsCtrl *controllers.StatsController) {
	employees := secureGroup.Group("/employees")
	{
		employees.POST("", employeeCtrl.Create)
		employees.POST("/import", employeeCtrl.Import)
		employees.PUT("/updateEmployee", employeeCtrl.Update)
		employees.PUT("/changePassword", employeeCtrl.ChangePassword)
		employees.POST("/uploadPhoto", employeeCtrl.UploadPhoto)

		employees.PUT("/moveToRecycleBin", employeeCtrl.MoveToRecycleBin)
		employees.PUT("/moveMultipleToRecycleBin", employeeCtrl.MoveMultipleToRecycleBin)
		employees.PUT("/restoreFromRecycleBin", employeeCtrl.RestoreFromRecycleBin)
		employees.DELETE("/deleteForever", employeeCtrl.DeleteForever)
		employees.GET("/getRecycledData", employeeCtrl.GetRecycledData)
		employees.GET("/recycleCount", employeeCtrl.RecycleCount)

		employees.GET("/getEmployeeChunk", employeeCtrl.GetEmployeeChunk)
		employees.GET("/totalChunks", employeeCtrl.TotalChunks)
		employees.GET("/getAllEmployees", employeeCtrl.GetAllEmployees)
		employees.GET("/getSpecificData", employeeCtrl.GetSpecificData)

		employees.GET("/getEmpByMonth", statsCtrl.GetEmpByMonth)
		employees.GET("/getLineChartData", statsCtrl.GetLineChartData)
		employees.GET("/getPieChartData", statsCtrl.GetPieChartData)
		employees.GET("/getBloodGroupData", statsCtrl.GetBloodGroupData)
	}
}
