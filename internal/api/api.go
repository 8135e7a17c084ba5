package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/katiamach/weather-forecast-app/internal/app"
	"github.com/katiamach/weather-forecast-app/internal/config"
	"github.com/katiamach/weather-forecast-app/internal/logger"
	"github.com/katiamach/weather-forecast-app/internal/transport/rest/handler"
)

const shutdownTimeout = 10 * time.Second

// NewRouter creates the weather api router.
func NewRouter(client app.Client, cfg *config.Config) http.Handler {
	server := handler.NewWeatherServer(app.NewService(client))

	r := mux.NewRouter()

	r.HandleFunc("/forecast", server.GetForecastHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", server.HealthHandler).Methods(http.MethodGet)

	options := setupCorsOptions(cfg.Origin)
	return handlers.CORS(options...)(r)
}

// RunAPI runs weather api until ctx is done.
func RunAPI(ctx context.Context, client app.Client, cfg *config.Config) error {
	accessLog := logger.Writer()
	defer accessLog.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.LoggingHandler(accessLog, NewRouter(client, cfg)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Starting weather api at port %s", cfg.Port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down weather api")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	if err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve: %w", err)
	}

	return nil
}
