package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OFFIS-RIT/greenlens/internal/jobs"
	"github.com/OFFIS-RIT/greenlens/internal/queue"
	mid "github.com/OFFIS-RIT/greenlens/internal/server/middleware"
	"github.com/OFFIS-RIT/greenlens/internal/setup"
	"github.com/OFFIS-RIT/greenlens/internal/timing"
	"github.com/OFFIS-RIT/greenlens/internal/util"
	"github.com/OFFIS-RIT/greenlens/pkg/logger"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

// New builds the echo instance serving app.
func New(app *mid.App) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: util.GetEnvList("CORS_ORIGINS", []string{"http://localhost:3000"}),
	}))
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("1M"))

	RegisterRoutes(e)
	return e
}

var ErrSharedRunStore = errors.New("JOB_MODE=queue needs a run store shared with the workers (RUN_STORE=postgres or redis)")

// checkJobMode rejects job modes the run store cannot serve. Queued runs are
// written by the workers, so they must see the same store as the server.
func checkJobMode(mode string, runs jobs.Store) error {
	switch mode {
	case "local":
		return nil
	case "queue":
		if _, ok := runs.(*jobs.MemoryStore); ok {
			return ErrSharedRunStore
		}
		return nil
	default:
		return fmt.Errorf("unknown JOB_MODE %q", mode)
	}
}

func Init() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	services, err := setup.NewServices(ctx)
	if err != nil {
		logger.Fatal("Failed to set up services", "err", err)
	}
	defer services.Close()

	app := &mid.App{Runs: services.Runs}
	if services.Pool != nil {
		app.Estimate = func(ctx context.Context) (time.Duration, error) {
			return timing.PredictRunDuration(ctx, services.Pool)
		}
	}

	mode := util.GetEnvString("JOB_MODE", "local")
	if err := checkJobMode(mode, services.Runs); err != nil {
		logger.Fatal("Invalid job configuration", "err", err)
	}

	var local *jobs.LocalLauncher
	switch mode {
	case "queue":
		que := queue.Init()
		defer que.Close()
		ch, err := que.Channel()
		if err != nil {
			logger.Fatal("Failed to open channel", "err", err)
		}
		if err := queue.SetupQueues(ch, queue.Queues); err != nil {
			logger.Fatal("Failed to setup queues", "err", err)
		}
		app.Launcher = queue.NewDispatcher(ch, services.Runs)
	default:
		factory, err := services.PipelineFactory()
		if err != nil {
			logger.Fatal("Failed to create audit pipeline", "err", err)
		}
		local = jobs.NewLocalLauncher(services.Runs, factory)
		app.Launcher = local
	}

	e := New(app)

	go func() {
		port := util.GetEnvString("PORT", "8080")
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
	if local != nil {
		logger.Info("Waiting for running audits")
		local.Wait()
	}
}
