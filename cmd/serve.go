package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/xketsu/weather-app/internal/handler"
	"github.com/xketsu/weather-app/internal/middleware"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Expose the weather lookup over HTTP",
		Long:  `Starts an HTTP server answering GET /weather?city=<name> with the same lookup the CLI performs.`,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := buildLookupService(cfg)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return err
	}
	defer closeFn()

	rl := middleware.NewRateLimiter(cfg.Server.RateLimit)
	defer rl.Close()

	mux := http.NewServeMux()
	mux.Handle("/weather", rl.Middleware(http.HandlerFunc(
		handler.NewWeatherHandler(svc, log).HandleWeather)))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           mux,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Infow("weather server running", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		log.Errorw("server error", "error", err)
		return err
	case <-cmd.Context().Done():
		log.Infow("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorw("error during server shutdown", "error", err)
			return err
		}
		log.Infow("server shutdown complete")
		return nil
	}
}
