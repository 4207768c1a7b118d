package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Saon110/Weather-Agentic-Ai/internal/domain"
	"github.com/Saon110/Weather-Agentic-Ai/internal/service"
)

// Tool is a named, described callable the model may invoke with a single
// string argument. The description wording is part of the dispatch contract:
// the model selects tools and formats their inputs from these strings, so
// changing them changes dispatch behavior.
type Tool struct {
	Name        string
	Description string
	Call        func(ctx context.Context, input string) (string, error)
}

// WeatherTools builds the registry of the three weather operations. Results
// are the normalized records marshalled to JSON, keeping the prompt context
// bounded to the reduced shapes.
func WeatherTools(weather *service.WeatherService) []Tool {
	return []Tool{
		{
			Name:        "get_current_weather",
			Description: "Returns current weather conditions. Input: city name (string). Example: 'Paris'. If input is 'None', it uses current location.",
			Call: func(ctx context.Context, input string) (string, error) {
				conditions, err := weather.CurrentWeather(ctx, input)
				if err != nil {
					return "", err
				}
				return marshalResult(conditions)
			},
		},
		{
			Name:        "get_daily_forecast",
			Description: "Returns daily weather forecast. Input: city name (string). Example: 'Tokyo'. If input is 'None', it uses current location.",
			Call: func(ctx context.Context, input string) (string, error) {
				forecast, err := weather.DailyForecast(ctx, input)
				if err != nil {
					return "", err
				}
				return marshalResult(forecast)
			},
		},
		{
			Name:        "get_historical_weather",
			Description: "Returns past weather data. Input format: 'CityName, NumberOfDays'. Example: 'London, 3'. If city name is 'None', it uses current location.",
			Call: func(ctx context.Context, input string) (string, error) {
				history, err := weather.HistoricalWeather(ctx, input)
				if err != nil {
					return "", err
				}
				return marshalResult(history)
			},
		},
	}
}

func marshalResult(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: marshal tool result: %v", domain.ErrWeatherFetch, err)
	}
	return string(data), nil
}
