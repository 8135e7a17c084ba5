package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/katiamach/weather-forecast-app/internal/model"
)

// Render writes a plain text view. A loading indicator is shown while isLoading,
// and the result, if any, below it.
func Render(w io.Writer, isLoading bool, f *model.Forecast) error {
	var b strings.Builder

	if isLoading {
		b.WriteString("Loading...\n")
	}

	if s := Build(f); s != nil {
		fmt.Fprintf(&b, "%s (%s)\n", s.Current.Location, s.Theme.Name)
		fmt.Fprintf(&b, "%d°C %s\n", s.Current.TempC, s.Current.Description)
		fmt.Fprintf(&b, "Humidity %d%%  Wind %g km/h  Cloud %d%%\n", s.Current.Humidity, s.Current.WindKph, s.Current.Cloud)
		fmt.Fprintf(&b, "%d-Day Forecast\n", model.MaxForecastDays)

		for _, d := range s.Days {
			fmt.Fprintf(&b, "  %-4s %4d°C  %s\n", d.Weekday, d.MaxTempC, d.Text)
		}
	}

	_, err := io.WriteString(w, b.String())
	if err != nil {
		return fmt.Errorf("failed to write view: %w", err)
	}

	return nil
}
