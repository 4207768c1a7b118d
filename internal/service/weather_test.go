package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"
)

const currentWeatherBody = `{
	"coord": {"lon": 2.3488, "lat": 48.8534},
	"weather": [{"id": 803, "main": "Clouds", "description": "broken clouds", "icon": "04d"}],
	"main": {"temp": 18.5, "feels_like": 18.1, "pressure": 1016, "humidity": 62},
	"wind": {"speed": 4.1},
	"clouds": {"all": 75},
	"dt": 1718100000,
	"sys": {"country": "FR", "sunrise": 1718077200, "sunset": 1718134800},
	"name": "Paris"
}`

func testWeatherService(t *testing.T, weatherHandler, ipinfoHandler http.HandlerFunc) (*WeatherService, *httptest.Server) {
	t.Helper()

	upstream := httptest.NewServer(weatherHandler)
	t.Cleanup(upstream.Close)

	locations := NewLocationResolver("test-key")
	locations.weatherURL = upstream.URL + "/weather"
	if ipinfoHandler != nil {
		ipinfo := httptest.NewServer(ipinfoHandler)
		t.Cleanup(ipinfo.Close)
		locations.ipinfoURL = ipinfo.URL
	}

	s := NewWeatherService("test-key", locations)
	s.baseURL = upstream.URL
	s.historyURL = upstream.URL + "/history/city"
	return s, upstream
}

func TestCurrentWeather_Normalization(t *testing.T) {
	var query url.Values
	s, _ := testWeatherService(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(currentWeatherBody))
	}, nil)

	got, err := s.CurrentWeather(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("CurrentWeather: %v", err)
	}

	if query.Get("units") != "metric" {
		t.Errorf("units = %q, want metric", query.Get("units"))
	}
	if query.Get("q") != "Paris" {
		t.Errorf("q = %q, want Paris", query.Get("q"))
	}
	if got.Name != "Paris" {
		t.Errorf("Name = %q, want Paris", got.Name)
	}
	if got.Main.Temp != 18.5 || got.Main.Pressure != 1016 || got.Main.Humidity != 62 {
		t.Errorf("main block not carried: %+v", got.Main)
	}

	// Fields absent upstream degrade to defaults, never a decode failure.
	if got.Rain.OneHour != nil {
		t.Errorf("Rain.OneHour = %v, want nil", *got.Rain.OneHour)
	}
	if got.Snow.OneHour != nil {
		t.Errorf("Snow.OneHour = %v, want nil", *got.Snow.OneHour)
	}
	if got.Wind.Deg != nil {
		t.Errorf("Wind.Deg = %v, want nil", *got.Wind.Deg)
	}
	if got.Visibility != nil {
		t.Errorf("Visibility = %v, want nil", *got.Visibility)
	}
	if len(got.Weather) != 1 || got.Weather[0].Description != "broken clouds" {
		t.Errorf("weather list not normalized: %+v", got.Weather)
	}
}

func TestCurrentWeather_NoneResolvesLocation(t *testing.T) {
	s, _ := testWeatherService(t,
		func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("q"); got != "Dhaka" {
				t.Errorf("q = %q, want Dhaka (from IP lookup)", got)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(currentWeatherBody))
		},
		func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{
				"loc":  "23.8103,90.4125",
				"city": "Dhaka",
			})
		},
	)

	for _, input := range []string{"", "none", "None", "  NONE  "} {
		if _, err := s.CurrentWeather(context.Background(), input); err != nil {
			t.Errorf("CurrentWeather(%q): %v", input, err)
		}
	}
}

func TestCurrentWeather_UpstreamError(t *testing.T) {
	s, _ := testWeatherService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}, nil)

	_, err := s.CurrentWeather(context.Background(), "Paris")
	if err == nil {
		t.Fatal("expected error on upstream failure")
	}
}

func TestDailyForecast_Normalization(t *testing.T) {
	s, _ := testWeatherService(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("cnt"); got != "7" {
			t.Errorf("cnt = %q, want 7", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"city": {"name": "Tokyo", "coord": {"lat": 35.69, "lon": 139.69}, "country": "JP"},
			"list": [
				{"dt": 1718100000,
				 "temp": {"day": 27.3, "min": 21.8, "max": 29.1},
				 "feels_like": {"day": 28.0},
				 "pressure": 1009, "humidity": 70,
				 "weather": [{"id": 500, "main": "Rain", "description": "light rain", "icon": "10d"}],
				 "speed": 5.2, "clouds": 90, "pop": 0.8, "rain": 2.4}
			]
		}`))
	}, nil)

	got, err := s.DailyForecast(context.Background(), "Tokyo")
	if err != nil {
		t.Fatalf("DailyForecast: %v", err)
	}
	if got.City.Name != "Tokyo" || got.City.Country != "JP" {
		t.Errorf("city not normalized: %+v", got.City)
	}
	if len(got.List) != 1 {
		t.Fatalf("expected 1 forecast day, got %d", len(got.List))
	}
	day := got.List[0]
	if day.Temp.Max != 29.1 || day.FeelsLike != 28.0 || day.WindSpeed != 5.2 {
		t.Errorf("day not normalized: %+v", day)
	}
	if day.Pop != 0.8 || day.Rain != 2.4 {
		t.Errorf("precipitation not carried: pop=%v rain=%v", day.Pop, day.Rain)
	}
	if day.Snow != 0 {
		t.Errorf("absent snow should default to 0, got %v", day.Snow)
	}
}

func TestParseHistorySpec(t *testing.T) {
	tests := []struct {
		spec     string
		wantCity string
		wantDays int
	}{
		{"London, 3", "London", 3},
		{"London", "London", 1},
		{"London, last 3 days", "London", 3},
		{"London, days", "London", 1},
		{"", "", 1},
		{"none, 5", "none", 5},
		{"New York, 2", "New York", 2},
	}

	for _, tt := range tests {
		city, days := parseHistorySpec(tt.spec)
		if city != tt.wantCity || days != tt.wantDays {
			t.Errorf("parseHistorySpec(%q) = (%q, %d), want (%q, %d)",
				tt.spec, city, days, tt.wantCity, tt.wantDays)
		}
	}
}

func TestHistoricalWeather_Window(t *testing.T) {
	fixedNow := time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC)

	var start, end string
	s, _ := testWeatherService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/weather":
			_, _ = w.Write([]byte(`{"coord": {"lat": 51.5085, "lon": -0.1257}}`))
		case "/history/city":
			start = r.URL.Query().Get("start")
			end = r.URL.Query().Get("end")
			_, _ = w.Write([]byte(`{"list": [
				{"dt": 1718000000,
				 "main": {"temp": 15.2, "feels_like": 14.8, "pressure": 1012, "humidity": 80},
				 "wind": {"speed": 3.0, "deg": 220},
				 "clouds": {"all": 40},
				 "rain": {"1h": 0.5},
				 "weather": [{"id": 500, "main": "Rain", "description": "light rain", "icon": "10n"}]}
			]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}, nil)
	s.now = func() time.Time { return fixedNow }

	got, err := s.HistoricalWeather(context.Background(), "London, 3")
	if err != nil {
		t.Fatalf("HistoricalWeather: %v", err)
	}

	wantEnd := fixedNow.Unix()
	wantStart := fixedNow.Add(-3 * 24 * time.Hour).Unix()
	if got.Period.Start != wantStart || got.Period.End != wantEnd {
		t.Errorf("period = %+v, want [%d, %d]", got.Period, wantStart, wantEnd)
	}
	if start == "" || end == "" {
		t.Fatal("history endpoint not queried with start/end")
	}

	if len(got.Measurements) != 1 {
		t.Fatalf("expected 1 measurement, got %d", len(got.Measurements))
	}
	m := got.Measurements[0]
	if m.Temp != 15.2 || m.Clouds != 40 {
		t.Errorf("measurement not normalized: %+v", m)
	}
	if m.Precipitation.Rain1h != 0.5 || m.Precipitation.Snow1h != 0 {
		t.Errorf("precipitation defaults wrong: %+v", m.Precipitation)
	}
	if m.Wind.Deg == nil || *m.Wind.Deg != 220 {
		t.Errorf("wind deg not carried: %+v", m.Wind)
	}
}

func TestHistoricalWeather_DefaultWindow(t *testing.T) {
	fixedNow := time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC)

	s, _ := testWeatherService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/weather" {
			_, _ = w.Write([]byte(`{"coord": {"lat": 51.5085, "lon": -0.1257}}`))
			return
		}
		_, _ = w.Write([]byte(`{"list": []}`))
	}, nil)
	s.now = func() time.Time { return fixedNow }

	got, err := s.HistoricalWeather(context.Background(), "London")
	if err != nil {
		t.Fatalf("HistoricalWeather: %v", err)
	}
	if got.Period.End-got.Period.Start != int64(24*time.Hour/time.Second) {
		t.Errorf("default window = %d seconds, want 1 day", got.Period.End-got.Period.Start)
	}
}

func TestHistoricalWeather_NoneUsesIPLookup(t *testing.T) {
	var cityLookups atomic.Int64

	s, _ := testWeatherService(t,
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if r.URL.Path == "/weather" {
				cityLookups.Add(1)
				_, _ = w.Write([]byte(`{"coord": {"lat": 0, "lon": 0}}`))
				return
			}
			if got := r.URL.Query().Get("lat"); got != "23.8103" {
				t.Errorf("lat = %q, want IP-derived 23.8103", got)
			}
			_, _ = w.Write([]byte(`{"list": []}`))
		},
		func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{
				"loc":  "23.8103,90.4125",
				"city": "Dhaka",
			})
		},
	)

	for _, spec := range []string{"", "none", "None, 2"} {
		if _, err := s.HistoricalWeather(context.Background(), spec); err != nil {
			t.Errorf("HistoricalWeather(%q): %v", spec, err)
		}
	}

	if cityLookups.Load() != 0 {
		t.Errorf("city lookup called %d times, want 0 (IP lookup expected)", cityLookups.Load())
	}
}
