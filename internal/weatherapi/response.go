package weatherapi

import (
	"fmt"

	"github.com/katiamach/weather-forecast-app/internal/model"
)

type locationPayload struct {
	Name      string  `json:"name"`
	Region    string  `json:"region"`
	Country   string  `json:"country"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	LocalTime string  `json:"localtime"`
}

type conditionPayload struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
}

type currentPayload struct {
	TempC     float64          `json:"temp_c"`
	Humidity  int              `json:"humidity"`
	WindKph   float64          `json:"wind_kph"`
	Cloud     int              `json:"cloud"`
	IsDay     int              `json:"is_day"`
	Condition conditionPayload `json:"condition"`
}

// currentResponse is the current.json body.
type currentResponse struct {
	Location *locationPayload `json:"location"`
	Current  *currentPayload  `json:"current"`
}

// forecastResponse is the forecast.json body.
type forecastResponse struct {
	Location *locationPayload `json:"location"`
	Current  *currentPayload  `json:"current"`
	Forecast *struct {
		ForecastDay []struct {
			Date string `json:"date"`
			Day  struct {
				MaxTempC  float64          `json:"maxtemp_c"`
				MinTempC  float64          `json:"mintemp_c"`
				Condition conditionPayload `json:"condition"`
			} `json:"day"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

// errorResponse is the body the provider sends with non-2xx statuses.
type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// APIError describes a non-2xx provider response.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API returned status %d", e.StatusCode)
	}

	return fmt.Sprintf("API returned status %d: code %d: %s", e.StatusCode, e.Code, e.Message)
}

func (r *currentResponse) coordinates() (*model.Coordinates, error) {
	if r.Location == nil {
		return nil, errMissingLocation
	}

	return &model.Coordinates{
		Lat:     r.Location.Lat,
		Lon:     r.Location.Lon,
		Name:    r.Location.Name,
		Region:  r.Location.Region,
		Country: r.Location.Country,
	}, nil
}

func (r *forecastResponse) forecast() (*model.Forecast, error) {
	switch {
	case r.Location == nil:
		return nil, errMissingLocation
	case r.Current == nil:
		return nil, errMissingCurrent
	case r.Forecast == nil:
		return nil, errMissingForecast
	}

	days := make([]model.Day, 0, len(r.Forecast.ForecastDay))
	for _, fd := range r.Forecast.ForecastDay {
		days = append(days, model.Day{
			Date:      fd.Date,
			MaxTempC:  fd.Day.MaxTempC,
			MinTempC:  fd.Day.MinTempC,
			Condition: model.Condition(fd.Day.Condition),
		})
	}

	return &model.Forecast{
		Location: model.Location(*r.Location),
		Current: model.Current{
			TempC:     r.Current.TempC,
			Humidity:  r.Current.Humidity,
			WindKph:   r.Current.WindKph,
			Cloud:     r.Current.Cloud,
			IsDay:     r.Current.IsDay,
			Condition: model.Condition(r.Current.Condition),
		},
		Days: days,
	}, nil
}
