package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Saon110/Weather-Agentic-Ai/internal/domain"
)

func testResolver(t *testing.T, ipinfoBody string, ipinfoStatus int) *LocationResolver {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(ipinfoStatus)
		_, _ = w.Write([]byte(ipinfoBody))
	}))
	t.Cleanup(server.Close)

	r := NewLocationResolver("test-key")
	r.ipinfoURL = server.URL
	return r
}

func TestCurrentLocation(t *testing.T) {
	r := testResolver(t, `{"loc": "23.8103,90.4125", "city": "Dhaka"}`, http.StatusOK)

	loc, err := r.CurrentLocation(context.Background())
	if err != nil {
		t.Fatalf("CurrentLocation: %v", err)
	}
	if loc.Lat != 23.8103 || loc.Lon != 90.4125 {
		t.Errorf("coordinates = (%v, %v), want (23.8103, 90.4125)", loc.Lat, loc.Lon)
	}
	if loc.City != "Dhaka" {
		t.Errorf("city = %q, want Dhaka", loc.City)
	}
}

func TestCurrentLocation_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing loc", `{"city": "Dhaka"}`},
		{"non-numeric coordinates", `{"loc": "abc,def", "city": "Dhaka"}`},
		{"single coordinate", `{"loc": "23.8103", "city": "Dhaka"}`},
		{"missing city", `{"loc": "23.8103,90.4125"}`},
		{"not json", `<html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testResolver(t, tt.body, http.StatusOK)
			_, err := r.CurrentLocation(context.Background())
			if !errors.Is(err, domain.ErrLocationUnavailable) {
				t.Errorf("err = %v, want ErrLocationUnavailable", err)
			}
		})
	}
}

func TestCurrentLocation_EndpointDown(t *testing.T) {
	r := testResolver(t, "", http.StatusServiceUnavailable)
	_, err := r.CurrentLocation(context.Background())
	if !errors.Is(err, domain.ErrLocationUnavailable) {
		t.Errorf("err = %v, want ErrLocationUnavailable", err)
	}
}

func TestCoordinates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "London" {
			t.Errorf("q = %q, want London", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"coord": {"lat": 51.5085, "lon": -0.1257}}`))
	}))
	t.Cleanup(server.Close)

	r := NewLocationResolver("test-key")
	r.weatherURL = server.URL

	coord, err := r.Coordinates(context.Background(), "London")
	if err != nil {
		t.Fatalf("Coordinates: %v", err)
	}
	if coord.Lat != 51.5085 || coord.Lon != -0.1257 {
		t.Errorf("coord = %+v", coord)
	}
}

func TestCoordinates_CityNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"cod": "404", "message": "city not found"}`, http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	r := NewLocationResolver("test-key")
	r.weatherURL = server.URL

	_, err := r.Coordinates(context.Background(), "Nowhereville")
	if !errors.Is(err, domain.ErrCityNotFound) {
		t.Errorf("err = %v, want ErrCityNotFound", err)
	}
}
