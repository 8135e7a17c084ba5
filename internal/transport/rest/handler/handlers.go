package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/katiamach/weather-forecast-app/internal/app"
	"github.com/katiamach/weather-forecast-app/internal/logger"
	"github.com/katiamach/weather-forecast-app/internal/model"
	"github.com/katiamach/weather-forecast-app/internal/view"
)

//go:generate mockgen -source=handlers.go -destination=mock/mock.go Searcher

// Searcher provides weather lookup.
type Searcher interface {
	Search(ctx context.Context, city string) (*model.Forecast, error)
}

// WeatherServer is a server for weather lookups.
type WeatherServer struct {
	service Searcher
}

// NewWeatherServer creates new WeatherServer.
func NewWeatherServer(service Searcher) *WeatherServer {
	return &WeatherServer{service}
}

// GetForecastHandler handles GetForecast request.
func (s *WeatherServer) GetForecastHandler(w http.ResponseWriter, r *http.Request) {
	req, err := validateQueryParams(r.URL.Query())
	if err != nil {
		respondErr(w, http.StatusBadRequest, err)
		return
	}

	forecast, err := s.service.Search(r.Context(), req.City)
	switch {
	case errors.Is(err, app.ErrEmptyQuery):
		respondErr(w, http.StatusBadRequest, err)
		return
	case errors.Is(err, app.ErrCityNotFound):
		respondErr(w, http.StatusNotFound, err)
		return
	case errors.Is(err, app.ErrForecastUnavailable):
		respondErr(w, http.StatusBadGateway, err)
		return
	case err != nil:
		logger.Error(fmt.Errorf("failed to get forecast: %v", err))
		respondErr(w, http.StatusInternalServerError, err)
		return
	}

	respond(w, http.StatusOK, view.Build(forecast))
}

// HealthHandler reports that the server is up.
func (s *WeatherServer) HealthHandler(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func validateQueryParams(params url.Values) (*model.ForecastRequest, error) {
	city := params.Get("city")
	if city == "" {
		return nil, errors.New("city parameter not provided in query")
	}

	return &model.ForecastRequest{City: city}, nil
}
