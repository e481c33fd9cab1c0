// Package location resolves free-text addresses through a Nominatim-style
// geocoder and provides the distance and route helpers behind the day
// planning screen.
package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var ErrNoResult = errors.New("no geocoding result")

type Info struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
	City      string  `json:"city,omitempty"`
	Country   string  `json:"country,omitempty"`
}

type Geocoder struct {
	baseURL string
	http    *http.Client
}

// NewGeocoder points at a Nominatim-compatible endpoint, e.g.
// https://nominatim.openstreetmap.org.
func NewGeocoder(baseURL string) *Geocoder {
	return &Geocoder{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Address     struct {
		Road    string `json:"road"`
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		Country string `json:"country"`
	} `json:"address"`
}

func (r nominatimResult) toInfo() (Info, error) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return Info{}, fmt.Errorf("bad latitude %q: %w", r.Lat, err)
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return Info{}, fmt.Errorf("bad longitude %q: %w", r.Lon, err)
	}
	city := r.Address.City
	if city == "" {
		city = r.Address.Town
	}
	if city == "" {
		city = r.Address.Village
	}
	return Info{
		Latitude:  lat,
		Longitude: lon,
		Address:   r.DisplayName,
		City:      city,
		Country:   r.Address.Country,
	}, nil
}

// Geocode resolves a free-text address to coordinates, taking the first
// match.
func (g *Geocoder) Geocode(ctx context.Context, address string) (Info, error) {
	query := url.Values{
		"q":              {address},
		"format":         {"json"},
		"addressdetails": {"1"},
		"limit":          {"1"},
	}
	var results []nominatimResult
	if err := g.get(ctx, "/search", query, &results); err != nil {
		return Info{}, fmt.Errorf("(*Geocoder).Geocode: %w", err)
	}
	if len(results) == 0 {
		return Info{}, fmt.Errorf("(*Geocoder).Geocode: %q: %w", address, ErrNoResult)
	}
	info, err := results[0].toInfo()
	if err != nil {
		return Info{}, fmt.Errorf("(*Geocoder).Geocode: %w", err)
	}
	return info, nil
}

// ReverseGeocode resolves coordinates to a display address.
func (g *Geocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (Info, error) {
	query := url.Values{
		"lat":            {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":            {strconv.FormatFloat(lon, 'f', -1, 64)},
		"format":         {"json"},
		"addressdetails": {"1"},
	}
	var result nominatimResult
	if err := g.get(ctx, "/reverse", query, &result); err != nil {
		return Info{}, fmt.Errorf("(*Geocoder).ReverseGeocode: %w", err)
	}
	if result.Lat == "" {
		return Info{}, fmt.Errorf("(*Geocoder).ReverseGeocode: %w", ErrNoResult)
	}
	info, err := result.toInfo()
	if err != nil {
		return Info{}, fmt.Errorf("(*Geocoder).ReverseGeocode: %w", err)
	}
	return info, nil
}

func (g *Geocoder) get(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	// Nominatim's usage policy requires an identifying agent
	req.Header.Set("User-Agent", "planningapp/1.0")

	resp, err := g.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
