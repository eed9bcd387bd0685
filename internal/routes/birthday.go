package routes

import (
	"employee-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runBirthdayRouter(secureGroup *echo.Group, birthdayCtrl *controllers.BirthdayController) {
	birthday := secureGroup.Group("/birthday")
	{
		birthday.GET("/getTodayData", birthdayCtrl.GetTodayData)
		birthday.POST("/sendMessage", birthdayCtrl.SendMessage)
		birthday.GET("/inboxData", birthdayCtrl.InboxData)
		birthday.GET("/viewSenderMessages", birthdayCtrl.ViewSenderMessages)
		birthday.GET("/isBirthday", birthdayCtrl.IsBirthday)
		birthday.DELETE("/cleanMessages", birthdayCtrl.CleanMessages)
	}
}
