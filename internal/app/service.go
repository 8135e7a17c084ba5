package app

import (
	"context"

	"github.com/katiamach/weather-forecast-app/internal/logger"
	"github.com/katiamach/weather-forecast-app/internal/model"
)

// Service runs one-off lookups, each in its own Shell.
type Service struct {
	client Client
}

// NewService creates new Service.
func NewService(client Client) *Service {
	return &Service{client: client}
}

// Search looks up the weather for city. Failures are reported as ErrEmptyQuery,
// ErrCityNotFound or ErrForecastUnavailable.
func (s *Service) Search(ctx context.Context, city string) (*model.Forecast, error) {
	shell := NewShell(s.client, logNotifier{})
	shell.SetQuery(city)

	outcome := shell.Submit(ctx)
	if outcome.Err != nil {
		return nil, outcome.Err
	}

	return outcome.Result, nil
}

// logNotifier reports alerts to the log when no user is attached.
type logNotifier struct{}

func (logNotifier) Alert(title, message string) {
	if message == "" {
		logger.Debug(title)
		return
	}
	logger.Debug(title + ": " + message)
}
