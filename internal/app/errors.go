package app

import "errors"

var (
	ErrEmptyQuery          = errors.New("please enter a city name")
	ErrCityNotFound        = errors.New("city not found, please, check city name")
	ErrForecastUnavailable = errors.New("could not fetch weather data")
	ErrSuperseded          = errors.New("request was superseded by a newer one")
)

// User-facing alert texts.
const (
	emptyQueryTitle     = "Please enter a city name"
	cityNotFoundTitle   = "City not found"
	cityNotFoundMessage = "Please check the city name."
	fetchErrorTitle     = "Error"
	fetchErrorMessage   = "Could not fetch weather data."
)
