package domain

// Normalized weather records. Each upstream response is reduced to one of these
// fixed shapes before it reaches the agent, so the prompt context never carries
// raw upstream payloads. All numeric fields are metric.

// Coordinates is a lat/lon pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Location is a resolved user location, obtained by IP lookup. Never persisted.
type Location struct {
	Lat  float64
	Lon  float64
	City string
}

// WeatherCondition describes one weather condition entry (e.g. "Rain, light rain").
type WeatherCondition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// TemperatureBlock holds the main temperature readings in °C and hPa/%.
type TemperatureBlock struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Pressure  float64 `json:"pressure"`
	Humidity  float64 `json:"humidity"`
}

// Wind speed is m/s; Deg is nil when the upstream omits direction.
type Wind struct {
	Speed float64  `json:"speed"`
	Deg   *float64 `json:"deg"`
}

// CloudCover is cloudiness in percent.
type CloudCover struct {
	All int `json:"all"`
}

// HourlyAccumulation carries a one-hour precipitation volume in mm,
// nil when there was none.
type HourlyAccumulation struct {
	OneHour *float64 `json:"1h"`
}

// SunTimes holds country code and sunrise/sunset as epoch seconds.
type SunTimes struct {
	Country string `json:"country"`
	Sunrise int64  `json:"sunrise"`
	Sunset  int64  `json:"sunset"`
}

// CurrentConditions is the normalized current-weather record.
type CurrentConditions struct {
	Coord      Coordinates        `json:"coord"`
	Weather    []WeatherCondition `json:"weather"`
	Main       TemperatureBlock   `json:"main"`
	Visibility *int               `json:"visibility"`
	Wind       Wind               `json:"wind"`
	Clouds     CloudCover         `json:"clouds"`
	Rain       HourlyAccumulation `json:"rain"`
	Snow       HourlyAccumulation `json:"snow"`
	Dt         int64              `json:"dt"`
	Sys        SunTimes           `json:"sys"`
	Name       string             `json:"name"`
}

// DayTemperature holds the day/min/max temperatures of a forecast day.
type DayTemperature struct {
	Day float64 `json:"day"`
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ForecastDay is one normalized day of the daily forecast.
type ForecastDay struct {
	Dt        int64              `json:"dt"`
	Temp      DayTemperature     `json:"temp"`
	FeelsLike float64            `json:"feels_like"`
	Pressure  float64            `json:"pressure"`
	Humidity  float64            `json:"humidity"`
	Weather   []WeatherCondition `json:"weather"`
	WindSpeed float64            `json:"wind_speed"`
	Clouds    int                `json:"clouds"`
	Pop       float64            `json:"pop"`
	Rain      float64            `json:"rain"`
	Snow      float64            `json:"snow"`
}

// ForecastCity identifies the city a forecast was resolved to.
type ForecastCity struct {
	Name    string      `json:"name"`
	Coord   Coordinates `json:"coord"`
	Country string      `json:"country"`
}

// DailyForecast is the normalized multi-day forecast.
type DailyForecast struct {
	City ForecastCity  `json:"city"`
	List []ForecastDay `json:"list"`
}

// Precipitation carries hourly and 3-hourly rain/snow volumes in mm.
// Absent upstream values are zero.
type Precipitation struct {
	Rain1h float64 `json:"rain_1h"`
	Rain3h float64 `json:"rain_3h"`
	Snow1h float64 `json:"snow_1h"`
	Snow3h float64 `json:"snow_3h"`
}

// HistoricalMeasurement is one normalized hourly history entry.
type HistoricalMeasurement struct {
	Dt            int64              `json:"dt"`
	Temp          float64            `json:"temp"`
	FeelsLike     float64            `json:"feels_like"`
	Pressure      float64            `json:"pressure"`
	Humidity      float64            `json:"humidity"`
	Wind          Wind               `json:"wind"`
	Clouds        int                `json:"clouds"`
	Precipitation Precipitation      `json:"precipitation"`
	Weather       []WeatherCondition `json:"weather"`
}

// Period is a half-open time window in epoch seconds.
type Period struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// HistoricalWeather is the normalized hourly-history response.
type HistoricalWeather struct {
	Coordinates  Coordinates             `json:"coordinates"`
	Period       Period                  `json:"period"`
	Measurements []HistoricalMeasurement `json:"measurements"`
}
