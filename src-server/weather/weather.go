// Package weather looks up current conditions and forecasts from
// OpenWeatherMap. Lookups feed the save-time snapshot on events; the circuit
// breaker keeps a flaky upstream from slowing every event save.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"planningapp/src-server/model"

	"github.com/sony/gobreaker"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5"

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewClient builds an OpenWeatherMap client. baseURL may be blank to use the
// public API.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "openweathermap",
			MaxRequests: 3,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.ConsecutiveFailures > 5 ||
					(counts.Requests >= 10 && failureRatio >= 0.6)
			},
		}),
	}
}

type owmEntry struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

func (e owmEntry) toInfo() *model.WeatherInfo {
	info := &model.WeatherInfo{
		Temperature: int(math.Round(e.Main.Temp)),
		Humidity:    e.Main.Humidity,
		WindSpeed:   e.Wind.Speed,
	}
	if len(e.Weather) > 0 {
		info.Condition = e.Weather[0].Description
		info.Icon = e.Weather[0].Icon
	}
	return info
}

// CurrentByCoords fetches current conditions at a point.
func (c *Client) CurrentByCoords(ctx context.Context, lat, lon float64) (*model.WeatherInfo, error) {
	query := url.Values{
		"lat": {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon": {strconv.FormatFloat(lon, 'f', -1, 64)},
	}
	var entry owmEntry
	if err := c.get(ctx, "/weather", query, &entry); err != nil {
		return nil, fmt.Errorf("(*Client).CurrentByCoords: %w", err)
	}
	return entry.toInfo(), nil
}

// CurrentByCity fetches current conditions for a city name, e.g. "Paris,FR".
func (c *Client) CurrentByCity(ctx context.Context, city string) (*model.WeatherInfo, error) {
	var entry owmEntry
	if err := c.get(ctx, "/weather", url.Values{"q": {city}}, &entry); err != nil {
		return nil, fmt.Errorf("(*Client).CurrentByCity: %w", err)
	}
	return entry.toInfo(), nil
}

// Forecast fetches 3-hourly forecast entries covering the next days days.
func (c *Client) Forecast(ctx context.Context, lat, lon float64, days int) ([]model.WeatherInfo, error) {
	if days <= 0 {
		days = 5
	}
	query := url.Values{
		"lat": {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon": {strconv.FormatFloat(lon, 'f', -1, 64)},
		// 8 entries per day at a 3 hour step
		"cnt": {strconv.Itoa(days * 8)},
	}
	var payload struct {
		List []owmEntry `json:"list"`
	}
	if err := c.get(ctx, "/forecast", query, &payload); err != nil {
		return nil, fmt.Errorf("(*Client).Forecast: %w", err)
	}
	forecast := make([]model.WeatherInfo, 0, len(payload.List))
	for _, entry := range payload.List {
		forecast = append(forecast, *entry.toInfo())
	}
	return forecast, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")
	query.Set("lang", "fr")

	body, err := c.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %s", resp.Status)
		}
		var decoded json.RawMessage
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return nil, err
		}
		return decoded, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(body.(json.RawMessage), out)
}
