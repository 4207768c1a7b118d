package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Saon110/Weather-Agentic-Ai/internal/config"
	"github.com/Saon110/Weather-Agentic-Ai/internal/domain"
)

// LocationResolver turns an absent or ambiguous city reference into
// coordinates: the caller's own location via IP geolocation, or a named
// city via an OpenWeather lookup.
type LocationResolver struct {
	apiKey     string
	ipinfoURL  string
	weatherURL string
	httpClient *http.Client
}

func NewLocationResolver(apiKey string) *LocationResolver {
	return &LocationResolver{
		apiKey:     apiKey,
		ipinfoURL:  "https://ipinfo.io/json",
		weatherURL: "https://api.openweathermap.org/data/2.5/weather",
		httpClient: &http.Client{Timeout: config.WeatherRequestTimeout},
	}
}

// CurrentLocation resolves the caller's location by IP. The endpoint returns
// a combined "lat,lon" string which is split and parsed here.
func (r *LocationResolver) CurrentLocation(ctx context.Context) (*domain.Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.ipinfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", domain.ErrLocationUnavailable, err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLocationUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: geolocation status %d", domain.ErrLocationUnavailable, resp.StatusCode)
	}

	var payload struct {
		Loc  string `json:"loc"`
		City string `json:"city"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrLocationUnavailable, err)
	}

	lat, lon, err := parseLatLon(payload.Loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLocationUnavailable, err)
	}
	if payload.City == "" {
		return nil, fmt.Errorf("%w: response has no city", domain.ErrLocationUnavailable)
	}

	return &domain.Location{Lat: lat, Lon: lon, City: payload.City}, nil
}

// Coordinates resolves a city name to lat/lon via a current-weather lookup,
// discarding everything but the coordinates.
func (r *LocationResolver) Coordinates(ctx context.Context, cityName string) (domain.Coordinates, error) {
	values := url.Values{}
	values.Set("q", cityName)
	values.Set("appid", r.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.weatherURL+"?"+values.Encode(), nil)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("%w: create request: %v", domain.ErrCityNotFound, err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("%w: %v", domain.ErrCityNotFound, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinates{}, fmt.Errorf("%w: %q (status %d)", domain.ErrCityNotFound, cityName, resp.StatusCode)
	}

	var payload struct {
		Coord domain.Coordinates `json:"coord"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.Coordinates{}, fmt.Errorf("%w: decode response: %v", domain.ErrCityNotFound, err)
	}

	return payload.Coord, nil
}

func parseLatLon(loc string) (float64, float64, error) {
	parts := strings.Split(loc, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed loc field %q", loc)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse latitude: %v", err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse longitude: %v", err)
	}
	return lat, lon, nil
}
