package routes

import (
	"employee-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runEmployeeRequestRouter(secureGroup *echo.Group, requestCtrl *controllers.EmployeeRequestController) {
	employees := secureGroup.Group("/employees")
	{
		employees.POST("/requestUpdate", requestCtrl.RequestUpdate)
		employees.GET("/requestsData", requestCtrl.RequestsData)
		employees.GET("/requestsDataSpecific", requestCtrl.RequestsDataSpecific)
		employees.DELETE("/deleteRequest", requestCtrl.DeleteRequest)
		employees.GET("/requestCount", requestCtrl.RequestCount)

		employees.GET("/myRequestStatus", requestCtrl.MyRequestStatus)
		employees.POST("/setRequestStatus", requestCtrl.SetRequestStatus)
		employees.DELETE("/deleteMyRequestStatus", requestCtrl.DeleteMyRequestStatus)
	}
}
