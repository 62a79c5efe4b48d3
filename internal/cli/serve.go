package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anvivatsa1/DreamStay/internal/handler"
	"github.com/anvivatsa1/DreamStay/internal/middleware"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func serveCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return withApp(cmd, opts, func(a *app) error {
				e := newServer(a)

				go func() {
					<-ctx.Done()

					shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
					defer cancel()

					if err := e.Shutdown(shutdownCtx); err != nil {
						a.log.Error("server.shutdown", "error", err)
					}
				}()

				a.log.Info("server.start", "addr", a.cfg.Addr())
				if err := e.Start(a.cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				a.log.Info("server.stopped")
				return nil
			})
		},
	}
}

func newServer(a *app) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.NewErrorHandler(a.log)

	e.Use(echoMw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(a.log))
	e.Use(echoMw.CORSWithConfig(echoMw.CORSConfig{
		AllowOrigins: a.cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "dreamstay"})
	})

	handler.NewHotelHandler(a.svc, a.log).RegisterRoutes(e)
	return e
}
