// Package app holds the lookup state and drives the geocode-then-forecast chain.
package app

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/umahmood/haversine"

	"github.com/katiamach/weather-forecast-app/internal/logger"
	"github.com/katiamach/weather-forecast-app/internal/model"
)

//go:generate mockgen -source=shell.go -destination=mock/mock.go

// maxLocationDriftKm is how far the forecast location may lie from the resolved city before a warning is logged.
const maxLocationDriftKm = 50.0

// Client provides weather provider calls. Both methods return nil when there is no result.
type Client interface {
	ResolveCoordinates(ctx context.Context, city string) *model.Coordinates
	FetchForecast(ctx context.Context, lat, lon float64) *model.Forecast
}

// Notifier shows alerts to the user.
type Notifier interface {
	Alert(title, message string)
}

// Shell is a state container for one user session.
type Shell struct {
	client   Client
	notifier Notifier

	mu        sync.Mutex
	state     State
	gen       uint64
	observers []func(State)
}

// NewShell creates new Shell in the idle stage.
func NewShell(client Client, notifier Notifier) *Shell {
	return &Shell{
		client:   client,
		notifier: notifier,
	}
}

// Subscribe registers fn to be called with a snapshot after every state change.
func (s *Shell) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.observers = append(s.observers, fn)
}

// State returns a snapshot of the current state.
func (s *Shell) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// SetQuery replaces the query text.
func (s *Shell) SetQuery(query string) {
	s.mu.Lock()
	s.state.Query = query
	snapshot := s.state
	s.mu.Unlock()

	s.publish(snapshot)
}

// Submit looks up the weather for the current query.
//
// A blank query only raises an alert. Otherwise the previous result is cleared, the city is resolved
// and its forecast fetched. If another submission starts before this one ends, this one's outcome
// is discarded and ErrSuperseded is returned.
func (s *Shell) Submit(ctx context.Context) Outcome {
	s.mu.Lock()
	query := s.state.Query
	s.mu.Unlock()

	if strings.TrimSpace(query) == "" {
		s.notifier.Alert(emptyQueryTitle, "")
		return Outcome{Stage: StageIdle, Err: ErrEmptyQuery}
	}

	gen := s.begin()

	ctx = logger.ContextWithRequestID(ctx, uuid.NewString())
	log := logger.FromContext(ctx).WithField("city", query)
	log.Debug("looking up weather")

	s.advance(gen, StageResolving)

	coords := s.client.ResolveCoordinates(ctx, query)
	if coords == nil {
		return s.finish(ctx, gen, StageNotFound, nil)
	}

	s.advance(gen, StageFetching)

	forecast := s.client.FetchForecast(ctx, coords.Lat, coords.Lon)
	if forecast == nil {
		return s.finish(ctx, gen, StageFetchError, nil)
	}

	forecast = forecast.Truncated(model.MaxForecastDays)
	checkLocationDrift(ctx, coords, forecast)

	return s.finish(ctx, gen, StageReady, forecast)
}

// begin starts a new request generation: loading is set and the held result is dropped.
func (s *Shell) begin() uint64 {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.state.IsLoading = true
	s.state.Result = nil
	s.state.Stage = StageLoading
	snapshot := s.state
	s.mu.Unlock()

	s.publish(snapshot)

	return gen
}

func (s *Shell) advance(gen uint64, stage Stage) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.state.Stage = stage
	snapshot := s.state
	s.mu.Unlock()

	s.publish(snapshot)
}

func (s *Shell) finish(ctx context.Context, gen uint64, stage Stage, result *model.Forecast) Outcome {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		logger.FromContext(ctx).WithField("stage", stage.String()).Info("discarding outcome of superseded request")
		return Outcome{Stage: stage, Err: ErrSuperseded}
	}
	s.state.IsLoading = false
	s.state.Result = result
	s.state.Stage = stage
	snapshot := s.state
	s.mu.Unlock()

	var err error
	switch stage {
	case StageNotFound:
		err = ErrCityNotFound
		s.notifier.Alert(cityNotFoundTitle, cityNotFoundMessage)
	case StageFetchError:
		err = ErrForecastUnavailable
		s.notifier.Alert(fetchErrorTitle, fetchErrorMessage)
	}

	s.publish(snapshot)

	return Outcome{Stage: stage, Result: result, Err: err}
}

func (s *Shell) publish(snapshot State) {
	s.mu.Lock()
	observers := make([]func(State), len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(snapshot)
	}
}

// checkLocationDrift warns when the forecast location is far from the resolved coordinates.
func checkLocationDrift(ctx context.Context, coords *model.Coordinates, forecast *model.Forecast) {
	resolved := haversine.Coord{Lat: coords.Lat, Lon: coords.Lon}
	reported := haversine.Coord{Lat: forecast.Location.Lat, Lon: forecast.Location.Lon}

	_, km := haversine.Distance(resolved, reported)
	if km > maxLocationDriftKm {
		logger.FromContext(ctx).WithFields(logger.Fields{
			"resolved": coords.Name,
			"reported": forecast.Location.Name,
			"km":       km,
		}).Warn("forecast location is far from the resolved city")
	}
}
