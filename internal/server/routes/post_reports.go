package routes

import (
	"errors"
	"net/http"

	"github.com/OFFIS-RIT/greenlens/internal/server/middleware"
	"github.com/OFFIS-RIT/greenlens/pkg/audit"
	"github.com/OFFIS-RIT/greenlens/pkg/logger"

	"github.com/labstack/echo/v4"
)

// CreateReportHandler starts an audit run and answers with its task id
// without waiting for it.
func CreateReportHandler(c echo.Context) error {
	type createReportBody struct {
		CompanyName string `json:"company_name" validate:"required"`
	}

	type createReportResponse struct {
		TaskID              string `json:"task_id"`
		EstimatedDurationMs int64  `json:"estimated_duration_ms,omitempty"`
	}

	data := new(createReportBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "company_name is required"})
	}

	app := c.(*middleware.AppContext).App
	id, err := app.Launcher.Launch(c.Request().Context(), data.CompanyName)
	if errors.Is(err, audit.ErrEmptyCompanyName) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "company_name is required"})
	}
	if err != nil {
		logger.Error("Failed to launch audit run", "company", data.CompanyName, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	res := createReportResponse{TaskID: id}
	if app.Estimate != nil {
		if d, err := app.Estimate(c.Request().Context()); err == nil {
			res.EstimatedDurationMs = d.Milliseconds()
		} else {
			logger.Debug("Failed to estimate run duration", "err", err)
		}
	}
	return c.JSON(http.StatusAccepted, res)
}
