package middleware

import (
	"context"
	"time"

	"github.com/OFFIS-RIT/greenlens/internal/jobs"

	"github.com/labstack/echo/v4"
)

type App struct {
	Runs     jobs.Store
	Launcher jobs.Launcher

	// Estimate predicts the duration of a new run. Optional.
	Estimate func(ctx context.Context) (time.Duration, error)
}

type AppContext struct {
	echo.Context
	App *App
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app}
			return next(cc)
		}
	}
}
