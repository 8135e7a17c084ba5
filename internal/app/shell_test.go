package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/tj/assert"

	mock "github.com/katiamach/weather-forecast-app/internal/app/mock"
	"github.com/katiamach/weather-forecast-app/internal/logger"
	"github.com/katiamach/weather-forecast-app/internal/model"
)

var (
	london = &model.Coordinates{Lat: 51.5, Lon: -0.13, Name: "London", Region: "City of London, Greater London", Country: "United Kingdom"}
	paris  = &model.Coordinates{Lat: 48.87, Lon: 2.33, Name: "Paris", Region: "Ile-de-France", Country: "France"}
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func testForecast(coords *model.Coordinates, days int) *model.Forecast {
	f := &model.Forecast{
		Location: model.Location{Name: coords.Name, Region: coords.Region, Country: coords.Country, Lat: coords.Lat, Lon: coords.Lon},
		Current: model.Current{
			TempC:     14.2,
			Humidity:  72,
			WindKph:   15.1,
			Cloud:     50,
			IsDay:     1,
			Condition: model.Condition{Text: "Partly cloudy", Icon: "//cdn.weatherapi.com/weather/64x64/day/116.png"},
		},
	}

	for i := 0; i < days; i++ {
		f.Days = append(f.Days, model.Day{
			Date:      fmt.Sprintf("2026-10-%02d", 19+i),
			MaxTempC:  float64(10 + i),
			Condition: model.Condition{Text: "Sunny", Icon: "//cdn.weatherapi.com/weather/64x64/day/113.png"},
		})
	}

	return f
}

func newTestShell(t *testing.T) (*Shell, *mock.MockClient, *mock.MockNotifier) {
	t.Helper()

	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)
	notifier := mock.NewMockNotifier(ctrl)

	return NewShell(client, notifier), client, notifier
}

func TestSubmitBlankQuery(t *testing.T) {
	cases := []struct {
		name  string
		query string
	}{
		{name: "empty", query: ""},
		{name: "spaces", query: "   "},
		{name: "tabs and newlines", query: "\t\n "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// the client mock has no expectations, so any network call fails the test
			s, _, notifier := newTestShell(t)
			notifier.EXPECT().Alert("Please enter a city name", "").Times(1)

			s.SetQuery(tc.query)
			out := s.Submit(context.Background())

			assert.Equal(t, ErrEmptyQuery, out.Err)
			assert.Equal(t, StageIdle, out.Stage)

			state := s.State()
			assert.False(t, state.IsLoading)
			assert.Nil(t, state.Result)
			assert.Equal(t, StageIdle, state.Stage)
		})
	}
}

func TestSubmit(t *testing.T) {
	cases := []struct {
		name          string
		query         string
		coords        *model.Coordinates
		forecast      *model.Forecast
		isFetchCalled bool
		alertTitle    string
		alertMessage  string
		expectedStage Stage
		expectedError error
		expectedDays  int
	}{
		{
			name:          "london",
			query:         "London",
			coords:        london,
			forecast:      testForecast(london, 7),
			isFetchCalled: true,
			expectedStage: StageReady,
			expectedDays:  7,
		},
		{
			name:          "more days than shown",
			query:         "London",
			coords:        london,
			forecast:      testForecast(london, 10),
			isFetchCalled: true,
			expectedStage: StageReady,
			expectedDays:  7,
		},
		{
			name:          "fewer days than shown",
			query:         "London",
			coords:        london,
			forecast:      testForecast(london, 3),
			isFetchCalled: true,
			expectedStage: StageReady,
			expectedDays:  3,
		},
		{
			name:          "nonsense city",
			query:         "Qwxyz123",
			alertTitle:    "City not found",
			alertMessage:  "Please check the city name.",
			expectedStage: StageNotFound,
			expectedError: ErrCityNotFound,
		},
		{
			name:          "forecast unavailable",
			query:         "London",
			coords:        london,
			isFetchCalled: true,
			alertTitle:    "Error",
			alertMessage:  "Could not fetch weather data.",
			expectedStage: StageFetchError,
			expectedError: ErrForecastUnavailable,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, client, notifier := newTestShell(t)

			resolve := client.EXPECT().ResolveCoordinates(gomock.Any(), tc.query).Return(tc.coords)
			if tc.isFetchCalled {
				client.EXPECT().
					FetchForecast(gomock.Any(), tc.coords.Lat, tc.coords.Lon).
					Return(tc.forecast).
					After(resolve)
			}

			if tc.alertTitle != "" {
				notifier.EXPECT().Alert(tc.alertTitle, tc.alertMessage).Times(1)
			}

			s.SetQuery(tc.query)
			out := s.Submit(context.Background())

			assert.Equal(t, tc.expectedError, out.Err)
			assert.Equal(t, tc.expectedStage, out.Stage)

			state := s.State()
			assert.False(t, state.IsLoading)
			assert.Equal(t, tc.expectedStage, state.Stage)
			assert.Equal(t, tc.query, state.Query)

			if tc.expectedError != nil {
				assert.Nil(t, state.Result)
				assert.Nil(t, out.Result)
				return
			}

			assert.Len(t, state.Result.Days, tc.expectedDays)
			for i, day := range state.Result.Days {
				assert.Equal(t, tc.forecast.Days[i], day)
			}
			assert.Equal(t, state.Result, out.Result)
		})
	}
}

func TestSubmitDoesNotMutateProviderResult(t *testing.T) {
	s, client, _ := newTestShell(t)

	forecast := testForecast(london, 10)
	client.EXPECT().ResolveCoordinates(gomock.Any(), "London").Return(london)
	client.EXPECT().FetchForecast(gomock.Any(), london.Lat, london.Lon).Return(forecast)

	s.SetQuery("London")
	s.Submit(context.Background())

	assert.Len(t, forecast.Days, 10)
	assert.Len(t, s.State().Result.Days, 7)
}

func TestSubmitStages(t *testing.T) {
	s, client, _ := newTestShell(t)

	client.EXPECT().ResolveCoordinates(gomock.Any(), "London").Return(london)
	client.EXPECT().FetchForecast(gomock.Any(), london.Lat, london.Lon).Return(testForecast(london, 7))

	s.SetQuery("London")

	var states []State
	s.Subscribe(func(st State) {
		states = append(states, st)
	})

	s.Submit(context.Background())

	stages := make([]Stage, 0, len(states))
	for _, st := range states {
		stages = append(stages, st.Stage)
	}
	assert.Equal(t, []Stage{StageLoading, StageResolving, StageFetching, StageReady}, stages)

	for _, st := range states[:3] {
		assert.True(t, st.IsLoading)
		assert.Nil(t, st.Result)
	}
	assert.False(t, states[3].IsLoading)
	assert.NotNil(t, states[3].Result)
}

func TestSubmitTwiceReplacesResult(t *testing.T) {
	s, client, _ := newTestShell(t)

	first := testForecast(london, 7)
	second := testForecast(london, 7)
	second.Current.TempC = 9.8
	second.Days = second.Days[:5]

	gomock.InOrder(
		client.EXPECT().ResolveCoordinates(gomock.Any(), "London").Return(london),
		client.EXPECT().FetchForecast(gomock.Any(), london.Lat, london.Lon).Return(first),
		client.EXPECT().ResolveCoordinates(gomock.Any(), "London").Return(london),
		client.EXPECT().FetchForecast(gomock.Any(), london.Lat, london.Lon).Return(second),
	)

	s.SetQuery("London")
	out := s.Submit(context.Background())
	assert.Nil(t, out.Err)
	assert.Equal(t, 14.2, s.State().Result.Current.TempC)

	var cleared bool
	s.Subscribe(func(st State) {
		if st.Stage == StageLoading {
			cleared = st.Result == nil && st.IsLoading
		}
	})

	out = s.Submit(context.Background())
	assert.Nil(t, out.Err)
	assert.True(t, cleared)

	result := s.State().Result
	assert.Equal(t, 9.8, result.Current.TempC)
	assert.Len(t, result.Days, 5)
}

func TestSubmitSupersededRequest(t *testing.T) {
	// no alert is expected: the superseded chain must stay silent
	s, client, _ := newTestShell(t)

	entered := make(chan struct{})
	release := make(chan struct{})

	client.EXPECT().ResolveCoordinates(gomock.Any(), "London").
		DoAndReturn(func(ctx context.Context, city string) *model.Coordinates {
			close(entered)
			<-release
			return london
		})
	client.EXPECT().FetchForecast(gomock.Any(), london.Lat, london.Lon).Return(testForecast(london, 7))
	client.EXPECT().ResolveCoordinates(gomock.Any(), "Paris").Return(paris)
	client.EXPECT().FetchForecast(gomock.Any(), paris.Lat, paris.Lon).Return(testForecast(paris, 7))

	s.SetQuery("London")

	firstOut := make(chan Outcome, 1)
	go func() {
		firstOut <- s.Submit(context.Background())
	}()
	<-entered

	s.SetQuery("Paris")
	second := s.Submit(context.Background())
	assert.Nil(t, second.Err)
	assert.Equal(t, StageReady, second.Stage)

	close(release)
	first := <-firstOut

	assert.Equal(t, ErrSuperseded, first.Err)
	assert.Nil(t, first.Result)

	state := s.State()
	assert.False(t, state.IsLoading)
	assert.Equal(t, StageReady, state.Stage)
	assert.Equal(t, "Paris", state.Result.Location.Name)
}

func TestSubmitLogsLocationDrift(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(io.Discard) })

	s, client, _ := newTestShell(t)

	client.EXPECT().ResolveCoordinates(gomock.Any(), "London").Return(london)
	client.EXPECT().FetchForecast(gomock.Any(), london.Lat, london.Lon).Return(testForecast(paris, 7))

	s.SetQuery("London")
	out := s.Submit(context.Background())

	assert.Nil(t, out.Err)
	assert.Contains(t, buf.String(), "forecast location is far from the resolved city")
	assert.Contains(t, buf.String(), `"request_id"`)
}

func TestStage(t *testing.T) {
	assert.Equal(t, "ready", StageReady.String())
	assert.Equal(t, "unknown", Stage(42).String())

	assert.True(t, StageNotFound.Terminal())
	assert.True(t, StageFetchError.Terminal())
	assert.True(t, StageReady.Terminal())
	assert.False(t, StageFetching.Terminal())
	assert.False(t, StageIdle.Terminal())
}
