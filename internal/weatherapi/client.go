// Package weatherapi is a client for the weatherapi.com current conditions and forecast endpoints.
//
// Client methods never return errors: a failed call yields nil and the cause is logged.
package weatherapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/katiamach/weather-forecast-app/internal/logger"
	"github.com/katiamach/weather-forecast-app/internal/model"
)

// DefaultBaseURL is the provider API root.
const DefaultBaseURL = "https://api.weatherapi.com/v1"

const (
	currentEndpoint  = "current.json"
	forecastEndpoint = "forecast.json"
)

var (
	errMissingLocation = errors.New("response has no location")
	errMissingCurrent  = errors.New("response has no current conditions")
	errMissingForecast = errors.New("response has no forecast")
)

// Client performs requests to the weather provider.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the provider API root.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient sets the http client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimit paces outgoing requests to rps requests per second with the given burst.
// A non-positive rps leaves requests unlimited.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// New creates new Client authenticated with apiKey.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ResolveCoordinates resolves a free-text city name to coordinates using the current conditions endpoint.
// It returns nil if the city can't be resolved.
func (c *Client) ResolveCoordinates(ctx context.Context, city string) *model.Coordinates {
	params := url.Values{}
	params.Set("q", city)

	var res currentResponse
	err := c.get(ctx, currentEndpoint, params, &res)
	if err != nil {
		logger.FromContext(ctx).WithField("city", city).
			Errorf("failed to fetch coordinates: %v", err)
		return nil
	}

	coords, err := res.coordinates()
	if err != nil {
		logger.FromContext(ctx).WithField("city", city).
			Errorf("failed to fetch coordinates: %v", err)
		return nil
	}

	return coords
}

// FetchForecast gets current conditions and the daily forecast for the given coordinates.
// Air quality and alerts are not requested. It returns nil on any failure.
func (c *Client) FetchForecast(ctx context.Context, lat, lon float64) *model.Forecast {
	params := url.Values{}
	params.Set("q", formatCoordinates(lat, lon))
	params.Set("days", strconv.Itoa(model.MaxForecastDays))
	params.Set("aqi", "no")
	params.Set("alerts", "no")

	var res forecastResponse
	err := c.get(ctx, forecastEndpoint, params, &res)
	if err != nil {
		logger.FromContext(ctx).WithField("q", params.Get("q")).
			Errorf("failed to fetch forecast: %v", err)
		return nil
	}

	forecast, err := res.forecast()
	if err != nil {
		logger.FromContext(ctx).WithField("q", params.Get("q")).
			Errorf("failed to fetch forecast: %v", err)
		return nil
	}

	return forecast
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, dst interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait canceled: %w", err)
		}
	}

	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", redactKey(err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", redactKey(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, body)
	}

	err = json.Unmarshal(body, dst)
	if err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// redactKey strips the credential from the request URL carried by transport errors.
func redactKey(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}

	redacted := *urlErr
	redacted.URL = redactURL(urlErr.URL)

	return &redacted
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<invalid url>"
	}

	params := u.Query()
	params.Del("key")
	u.RawQuery = params.Encode()

	return u.String()
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var res errorResponse
	if err := json.Unmarshal(body, &res); err == nil {
		apiErr.Code = res.Error.Code
		apiErr.Message = res.Error.Message
	}

	return apiErr
}

func formatCoordinates(lat, lon float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lon, 'f', -1, 64)
}
