package main

import "maintdesk/internal/app"

// @title           Maintdesk API
// @version         1.0
// @description     Building maintenance task tracker: tasks, remarks, assets, contractors and daily due-date reminders.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
