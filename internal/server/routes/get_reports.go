package routes

import (
	"errors"
	"net/http"

	"github.com/OFFIS-RIT/greenlens/internal/jobs"
	"github.com/OFFIS-RIT/greenlens/internal/server/middleware"
	"github.com/OFFIS-RIT/greenlens/internal/server/util"
	"github.com/OFFIS-RIT/greenlens/pkg/logger"

	"github.com/labstack/echo/v4"
)

func GetReportHandler(c echo.Context) error {
	type getReportParams struct {
		TaskID string `param:"task_id" validate:"required"`
	}

	params := new(getReportParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	app := c.(*middleware.AppContext).App
	run, err := app.Runs.Get(c.Request().Context(), params.TaskID)
	if errors.Is(err, jobs.ErrRunNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Task ID not found"})
	}
	if err != nil {
		logger.Error("Failed to load audit run", "task_id", params.TaskID, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	res, err := util.RunResponse(run)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, res)
}
