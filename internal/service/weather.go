package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/Saon110/Weather-Agentic-Ai/internal/config"
	"github.com/Saon110/Weather-Agentic-Ai/internal/domain"
)

// WeatherService exposes the three read-only weather operations the agent can
// dispatch to. Each takes a single string argument (the tool-calling contract
// only supports single-string inputs) and narrows the upstream response to a
// fixed normalized shape, so schema drift upstream never reaches the prompt
// context. All requests use metric units and a single attempt; the circuit
// breaker fails fast when the upstream is degraded but never retries.
type WeatherService struct {
	apiKey     string
	baseURL    string
	historyURL string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	locations  *LocationResolver
	now        func() time.Time
}

func NewWeatherService(apiKey string, locations *LocationResolver) *WeatherService {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 3,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &WeatherService{
		apiKey:     apiKey,
		baseURL:    "https://api.openweathermap.org/data/2.5",
		historyURL: "https://history.openweathermap.org/data/2.5/history/city",
		httpClient: &http.Client{Timeout: config.WeatherRequestTimeout},
		breaker:    cb,
		locations:  locations,
		now:        time.Now,
	}
}

// CurrentWeather returns normalized current conditions for the given city.
// An empty argument or the literal "none" resolves the caller's location by IP
// and uses its city instead.
func (s *WeatherService) CurrentWeather(ctx context.Context, cityOrNone string) (*domain.CurrentConditions, error) {
	city, err := s.resolveCity(ctx, cityOrNone)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrWeatherFetch, err)
	}

	values := url.Values{}
	values.Set("q", city)
	values.Set("appid", s.apiKey)
	values.Set("units", "metric")
	values.Set("mode", "json")
	values.Set("lang", "en")

	var raw struct {
		Coord   domain.Coordinates `json:"coord"`
		Weather []struct {
			ID          int    `json:"id"`
			Main        string `json:"main"`
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Pressure  float64 `json:"pressure"`
			Humidity  float64 `json:"humidity"`
		} `json:"main"`
		Visibility *int `json:"visibility"`
		Wind       struct {
			Speed float64  `json:"speed"`
			Deg   *float64 `json:"deg"`
		} `json:"wind"`
		Clouds struct {
			All int `json:"all"`
		} `json:"clouds"`
		Rain *struct {
			OneHour *float64 `json:"1h"`
		} `json:"rain"`
		Snow *struct {
			OneHour *float64 `json:"1h"`
		} `json:"snow"`
		Dt  int64 `json:"dt"`
		Sys struct {
			Country string `json:"country"`
			Sunrise int64  `json:"sunrise"`
			Sunset  int64  `json:"sunset"`
		} `json:"sys"`
		Name string `json:"name"`
	}

	if err := s.getJSON(ctx, s.baseURL+"/weather?"+values.Encode(), &raw); err != nil {
		return nil, fmt.Errorf("%w: current weather for %q: %v", domain.ErrWeatherFetch, city, err)
	}

	cond := &domain.CurrentConditions{
		Coord:      raw.Coord,
		Weather:    make([]domain.WeatherCondition, 0, len(raw.Weather)),
		Main:       domain.TemperatureBlock(raw.Main),
		Visibility: raw.Visibility,
		Wind:       domain.Wind{Speed: raw.Wind.Speed, Deg: raw.Wind.Deg},
		Clouds:     domain.CloudCover{All: raw.Clouds.All},
		Dt:         raw.Dt,
		Sys:        domain.SunTimes(raw.Sys),
		Name:       raw.Name,
	}
	for _, w := range raw.Weather {
		cond.Weather = append(cond.Weather, domain.WeatherCondition(w))
	}
	if raw.Rain != nil {
		cond.Rain.OneHour = raw.Rain.OneHour
	}
	if raw.Snow != nil {
		cond.Snow.OneHour = raw.Snow.OneHour
	}
	return cond, nil
}

// DailyForecast returns a normalized multi-day forecast, capped at
// config.ForecastDaysCap days. Location fallback matches CurrentWeather.
func (s *WeatherService) DailyForecast(ctx context.Context, cityOrNone string) (*domain.DailyForecast, error) {
	city, err := s.resolveCity(ctx, cityOrNone)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrWeatherFetch, err)
	}

	values := url.Values{}
	values.Set("q", city)
	values.Set("appid", s.apiKey)
	values.Set("units", "metric")
	values.Set("cnt", strconv.Itoa(config.ForecastDaysCap))

	var raw struct {
		City struct {
			Name    string             `json:"name"`
			Coord   domain.Coordinates `json:"coord"`
			Country string             `json:"country"`
		} `json:"city"`
		List []struct {
			Dt   int64 `json:"dt"`
			Temp struct {
				Day float64 `json:"day"`
				Min float64 `json:"min"`
				Max float64 `json:"max"`
			} `json:"temp"`
			FeelsLike struct {
				Day float64 `json:"day"`
			} `json:"feels_like"`
			Pressure float64 `json:"pressure"`
			Humidity float64 `json:"humidity"`
			Weather  []struct {
				ID          int    `json:"id"`
				Main        string `json:"main"`
				Description string `json:"description"`
				Icon        string `json:"icon"`
			} `json:"weather"`
			Speed  float64 `json:"speed"`
			Clouds int     `json:"clouds"`
			Pop    float64 `json:"pop"`
			Rain   float64 `json:"rain"`
			Snow   float64 `json:"snow"`
		} `json:"list"`
	}

	if err := s.getJSON(ctx, s.baseURL+"/forecast/daily?"+values.Encode(), &raw); err != nil {
		return nil, fmt.Errorf("%w: daily forecast for %q: %v", domain.ErrWeatherFetch, city, err)
	}

	forecast := &domain.DailyForecast{
		City: domain.ForecastCity{Name: raw.City.Name, Coord: raw.City.Coord, Country: raw.City.Country},
		List: make([]domain.ForecastDay, 0, len(raw.List)),
	}
	for _, day := range raw.List {
		fd := domain.ForecastDay{
			Dt:        day.Dt,
			Temp:      domain.DayTemperature(day.Temp),
			FeelsLike: day.FeelsLike.Day,
			Pressure:  day.Pressure,
			Humidity:  day.Humidity,
			Weather:   make([]domain.WeatherCondition, 0, len(day.Weather)),
			WindSpeed: day.Speed,
			Clouds:    day.Clouds,
			Pop:       day.Pop,
			Rain:      day.Rain,
			Snow:      day.Snow,
		}
		for _, w := range day.Weather {
			fd.Weather = append(fd.Weather, domain.WeatherCondition(w))
		}
		forecast.List = append(forecast.List, fd)
	}
	return forecast, nil
}

// HistoricalWeather returns normalized hourly measurements for a window ending
// at call time. The spec argument has the form "<city>[, <dayCount>]"; the day
// count defaults to 1 and is read by stripping non-digits from the second
// part. An empty or "none" city resolves coordinates from the caller's IP.
func (s *WeatherService) HistoricalWeather(ctx context.Context, spec string) (*domain.HistoricalWeather, error) {
	city, days := parseHistorySpec(spec)

	end := s.now()
	start := end.Add(-time.Duration(days) * 24 * time.Hour)

	var coord domain.Coordinates
	if isNoneCity(city) {
		loc, err := s.locations.CurrentLocation(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrWeatherFetch, err)
		}
		coord = domain.Coordinates{Lat: loc.Lat, Lon: loc.Lon}
	} else {
		var err error
		coord, err = s.locations.Coordinates(ctx, city)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrWeatherFetch, err)
		}
	}

	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(coord.Lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(coord.Lon, 'f', -1, 64))
	values.Set("type", "hour")
	values.Set("start", strconv.FormatInt(start.Unix(), 10))
	values.Set("end", strconv.FormatInt(end.Unix(), 10))
	values.Set("appid", s.apiKey)
	values.Set("units", "metric")

	var raw struct {
		List []struct {
			Dt   int64 `json:"dt"`
			Main struct {
				Temp      float64 `json:"temp"`
				FeelsLike float64 `json:"feels_like"`
				Pressure  float64 `json:"pressure"`
				Humidity  float64 `json:"humidity"`
			} `json:"main"`
			Wind struct {
				Speed float64  `json:"speed"`
				Deg   *float64 `json:"deg"`
			} `json:"wind"`
			Clouds struct {
				All int `json:"all"`
			} `json:"clouds"`
			Rain    map[string]float64 `json:"rain"`
			Snow    map[string]float64 `json:"snow"`
			Weather []struct {
				ID          int    `json:"id"`
				Main        string `json:"main"`
				Description string `json:"description"`
				Icon        string `json:"icon"`
			} `json:"weather"`
		} `json:"list"`
	}

	if err := s.getJSON(ctx, s.historyURL+"?"+values.Encode(), &raw); err != nil {
		return nil, fmt.Errorf("%w: historical weather: %v", domain.ErrWeatherFetch, err)
	}

	hist := &domain.HistoricalWeather{
		Coordinates:  coord,
		Period:       domain.Period{Start: start.Unix(), End: end.Unix()},
		Measurements: make([]domain.HistoricalMeasurement, 0, len(raw.List)),
	}
	for _, entry := range raw.List {
		m := domain.HistoricalMeasurement{
			Dt:        entry.Dt,
			Temp:      entry.Main.Temp,
			FeelsLike: entry.Main.FeelsLike,
			Pressure:  entry.Main.Pressure,
			Humidity:  entry.Main.Humidity,
			Wind:      domain.Wind{Speed: entry.Wind.Speed, Deg: entry.Wind.Deg},
			Clouds:    entry.Clouds.All,
			Precipitation: domain.Precipitation{
				Rain1h: entry.Rain["1h"],
				Rain3h: entry.Rain["3h"],
				Snow1h: entry.Snow["1h"],
				Snow3h: entry.Snow["3h"],
			},
			Weather: make([]domain.WeatherCondition, 0, len(entry.Weather)),
		}
		for _, w := range entry.Weather {
			m.Weather = append(m.Weather, domain.WeatherCondition(w))
		}
		hist.Measurements = append(hist.Measurements, m)
	}
	return hist, nil
}

// resolveCity applies the location-fallback rule shared by the city-keyed
// operations.
func (s *WeatherService) resolveCity(ctx context.Context, cityOrNone string) (string, error) {
	city := strings.TrimSpace(cityOrNone)
	if !isNoneCity(city) {
		return city, nil
	}
	loc, err := s.locations.CurrentLocation(ctx)
	if err != nil {
		return "", err
	}
	return loc.City, nil
}

func isNoneCity(city string) bool {
	return city == "" || strings.EqualFold(city, "none")
}

// parseHistorySpec splits "<city>[, <dayCount>]". The day count keeps only
// digit characters, so "last 3 days" reads as 3; a second part without digits
// falls back to the default rather than failing.
func parseHistorySpec(spec string) (city string, days int) {
	parts := strings.SplitN(spec, ",", 2)
	city = strings.TrimSpace(parts[0])
	days = config.DefaultHistoryDays
	if len(parts) == 2 {
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, parts[1])
		if n, err := strconv.Atoi(digits); err == nil && n > 0 {
			days = n
		}
	}
	return city, days
}

// getJSON issues one GET through the circuit breaker and decodes the body.
func (s *WeatherService) getJSON(ctx context.Context, rawURL string, out any) error {
	_, err := s.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		resp, err := s.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return nil, nil
	})
	return err
}
