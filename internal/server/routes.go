package server

import (
	"github.com/OFFIS-RIT/greenlens/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	e.POST("/sustainability-report", routes.CreateReportHandler)
	e.GET("/sustainability-report/:task_id", routes.GetReportHandler)
}
