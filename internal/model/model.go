package model

// MaxForecastDays is the number of daily summaries requested from the provider and kept in a result.
const MaxForecastDays = 7

// Coordinates contains a resolved place.
type Coordinates struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Name    string  `json:"name"`
	Region  string  `json:"region"`
	Country string  `json:"country"`
}

// Condition is a textual weather description with its provider icon reference.
type Condition struct {
	Text string `json:"text"`
	// Icon is protocol-relative ("//cdn.weatherapi.com/...").
	Icon string `json:"icon"`
}

// Location contains location fields of a forecast payload.
type Location struct {
	Name      string  `json:"name"`
	Region    string  `json:"region"`
	Country   string  `json:"country"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	LocalTime string  `json:"localtime"`
}

// Current contains current conditions.
type Current struct {
	TempC     float64   `json:"temp_c"`
	Humidity  int       `json:"humidity"`
	WindKph   float64   `json:"wind_kph"`
	Cloud     int       `json:"cloud"`
	IsDay     int       `json:"is_day"`
	Condition Condition `json:"condition"`
}

// Day is a daily forecast summary.
type Day struct {
	// Date is formatted as YYYY-MM-DD.
	Date      string    `json:"date"`
	MaxTempC  float64   `json:"maxtemp_c"`
	MinTempC  float64   `json:"mintemp_c"`
	Condition Condition `json:"condition"`
}

// Forecast contains current conditions and the daily outlook for one place.
type Forecast struct {
	Location Location `json:"location"`
	Current  Current  `json:"current"`
	Days     []Day    `json:"days"`
}

// IsDaytime reports whether current conditions were observed during the day.
func (f *Forecast) IsDaytime() bool {
	return f.Current.IsDay == 1
}

// Truncated returns a copy of the forecast holding at most n daily summaries.
func (f *Forecast) Truncated(n int) *Forecast {
	if n < 0 {
		n = 0
	}

	cp := *f
	if len(f.Days) > n {
		cp.Days = make([]Day, n)
		copy(cp.Days, f.Days[:n])
		return &cp
	}

	cp.Days = make([]Day, len(f.Days))
	copy(cp.Days, f.Days)

	return &cp
}

// ForecastRequest contains forecast request parameters.
type ForecastRequest struct {
	City string `json:"city"`
}
