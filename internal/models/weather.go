package models

// ForecastItem is one (date, time, category, value) tuple as published by the
// forecast provider.
type ForecastItem struct {
	BaseDate  string `json:"baseDate"`
	BaseTime  string `json:"baseTime"`
	Category  string `json:"category"`
	FcstDate  string `json:"fcstDate"`
	FcstTime  string `json:"fcstTime"`
	FcstValue string `json:"fcstValue"`
	Nx        int    `json:"nx"`
	Ny        int    `json:"ny"`
}

type SkyCondition string

const (
	SkyClear        SkyCondition = "clear"
	SkyMostlyCloudy SkyCondition = "mostly_cloudy"
	SkyOvercast     SkyCondition = "overcast"
	SkyUnknown      SkyCondition = "unknown"
)

type PrecipitationType string

const (
	PrecipitationNone     PrecipitationType = "none"
	PrecipitationRain     PrecipitationType = "rain"
	PrecipitationRainSnow PrecipitationType = "rain_snow"
	PrecipitationSnow     PrecipitationType = "snow"
	PrecipitationShower   PrecipitationType = "shower"
)

// ForecastPoint is one pivoted (date, time) row. Numeric fields are nil when
// the provider omitted the category or sent a non-numeric value.
type ForecastPoint struct {
	Date                     string            `json:"date"`
	Time                     string            `json:"time"`
	Temperature              *float64          `json:"temperature"`
	Sky                      SkyCondition      `json:"sky"`
	Precipitation            PrecipitationType `json:"precipitation"`
	PrecipitationProbability *float64          `json:"precipitation_probability"`
	Humidity                 *float64          `json:"humidity"`
	WindSpeed                *float64          `json:"wind_speed"`
}

type WeatherAdvice struct {
	BaseDate string          `json:"base_date"`
	BaseTime string          `json:"base_time"`
	Nx       int             `json:"nx"`
	Ny       int             `json:"ny"`
	Current  *ForecastPoint  `json:"current,omitempty"`
	Advice   string          `json:"advice"`
	Points   []ForecastPoint `json:"points"`
}
