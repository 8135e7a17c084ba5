// Package view maps a forecast result onto what the user sees.
package view

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/katiamach/weather-forecast-app/internal/model"
)

const dateLayout = "2006-01-02"

// Theme is a background style chosen by time of day.
type Theme struct {
	Name     string   `json:"name"`
	Gradient []string `json:"gradient"`
}

var (
	DayTheme   = Theme{Name: "day", Gradient: []string{"#89f7fe", "#66a6ff"}}
	NightTheme = Theme{Name: "night", Gradient: []string{"#0f2027", "#203a43", "#2c5364"}}
)

// Current is the current conditions summary.
type Current struct {
	Location    string  `json:"location"`
	IconURL     string  `json:"iconUrl"`
	TempC       int     `json:"tempC"`
	Description string  `json:"description"`
	Humidity    int     `json:"humidity"`
	WindKph     float64 `json:"windKph"`
	Cloud       int     `json:"cloud"`
}

// DayCard is one entry of the daily forecast list.
type DayCard struct {
	Date     string `json:"date"`
	Weekday  string `json:"weekday"`
	IconURL  string `json:"iconUrl"`
	MaxTempC int    `json:"maxTempC"`
	Text     string `json:"text"`
}

// Screen is everything rendered for a result.
type Screen struct {
	Theme   Theme     `json:"theme"`
	Current Current   `json:"current"`
	Days    []DayCard `json:"days"`
}

// Build creates the screen for f. It returns nil if there is no result.
func Build(f *model.Forecast) *Screen {
	if f == nil {
		return nil
	}

	days := f.Days
	if len(days) > model.MaxForecastDays {
		days = days[:model.MaxForecastDays]
	}

	cards := make([]DayCard, 0, len(days))
	for _, d := range days {
		cards = append(cards, DayCard{
			Date:     d.Date,
			Weekday:  shortWeekday(d.Date),
			IconURL:  IconURL(d.Condition.Icon),
			MaxTempC: round(d.MaxTempC),
			Text:     d.Condition.Text,
		})
	}

	return &Screen{
		Theme: ThemeFor(f),
		Current: Current{
			Location:    locationTitle(f.Location),
			IconURL:     IconURL(f.Current.Condition.Icon),
			TempC:       round(f.Current.TempC),
			Description: capitalize(f.Current.Condition.Text),
			Humidity:    f.Current.Humidity,
			WindKph:     f.Current.WindKph,
			Cloud:       f.Current.Cloud,
		},
		Days: cards,
	}
}

// ThemeFor selects the day theme when current conditions are daytime and the night theme otherwise.
func ThemeFor(f *model.Forecast) Theme {
	if f != nil && f.IsDaytime() {
		return DayTheme
	}
	return NightTheme
}

// IconURL prefixes protocol-relative icon references with https.
func IconURL(icon string) string {
	if strings.HasPrefix(icon, "//") {
		return "https:" + icon
	}
	return icon
}

func locationTitle(l model.Location) string {
	switch {
	case l.Name == "":
		return l.Country
	case l.Country == "":
		return l.Name
	}

	return fmt.Sprintf("%s, %s", l.Name, l.Country)
}

// shortWeekday turns YYYY-MM-DD into "Mon". Unparseable dates are returned as is.
func shortWeekday(date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}

	return t.Weekday().String()[:3]
}

// round rounds half up, so -2.5 becomes -2.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

func capitalize(s string) string {
	return cases.Title(language.English, cases.NoLower).String(s)
}
