package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"wearwise/style-advisor/internal/models"
)

// NoTemperatureAdvice is returned when no usable temperature is available.
const NoTemperatureAdvice = "기온 정보를 가져올 수 없어 옷차림을 추천할 수 없습니다."

var kst = time.FixedZone("KST", 9*60*60)

// issueHours are the forecast publication hours, latest first.
var issueHours = []int{23, 20, 17, 14, 11, 8, 5, 2}

type temperatureBand struct {
	min    float64
	advice string
}

var temperatureBands = []temperatureBand{
	{28, "민소매, 반팔, 반바지, 원피스"},
	{23, "반팔, 얇은 셔츠, 반바지, 면바지"},
	{17, "얇은 니트, 맨투맨, 가디건, 청바지"},
	{10, "자켓, 가디건, 야상, 청바지, 면바지"},
	{5, "코트, 가죽자켓, 히트텍, 니트"},
}

const coldestAdvice = "패딩, 두꺼운 코트, 목도리, 기모제품"

var skyCodes = map[string]models.SkyCondition{
	"1": models.SkyClear,
	"3": models.SkyMostlyCloudy,
	"4": models.SkyOvercast,
}

var precipitationCodes = map[string]models.PrecipitationType{
	"0": models.PrecipitationNone,
	"1": models.PrecipitationRain,
	"2": models.PrecipitationRainSnow,
	"3": models.PrecipitationSnow,
	"4": models.PrecipitationShower,
}

// SelectBaseTime picks the latest published forecast issue for now, in KST.
// Before 02:10 the 02:00 issue is not out yet, so the previous day's 23:00
// issue is used.
func SelectBaseTime(now time.Time) (string, string) {
	local := now.In(kst)
	minutes := local.Hour()*60 + local.Minute()

	if minutes < 2*60+10 {
		prev := local.AddDate(0, 0, -1)
		return prev.Format("20060102"), "2300"
	}

	for _, h := range issueHours {
		if local.Hour() >= h {
			return local.Format("20060102"), fmt.Sprintf("%02d00", h)
		}
	}
	return local.Format("20060102"), "0200"
}

// AdviceForCelsius maps a temperature onto one of six descending bands.
func AdviceForCelsius(celsius float64) string {
	for _, band := range temperatureBands {
		if celsius >= band.min {
			return band.advice
		}
	}
	return coldestAdvice
}

// ClothingAdvice accepts the provider's raw value. Missing or non-numeric
// input, NaN and infinities included, yields NoTemperatureAdvice.
func ClothingAdvice(temperature string) string {
	celsius := parseNumber(strings.TrimSpace(temperature))
	if celsius == nil {
		return NoTemperatureAdvice
	}
	return AdviceForCelsius(*celsius)
}

func adviceForPoint(point *models.ForecastPoint) string {
	if point == nil || point.Temperature == nil {
		return NoTemperatureAdvice
	}
	return AdviceForCelsius(*point.Temperature)
}

// PivotForecast folds the flat category tuples into one point per
// (date, time), ordered ascending.
func PivotForecast(items []models.ForecastItem) []models.ForecastPoint {
	index := make(map[string]*models.ForecastPoint)
	keys := make([]string, 0)

	for _, item := range items {
		key := item.FcstDate + item.FcstTime
		point, ok := index[key]
		if !ok {
			point = &models.ForecastPoint{
				Date:          item.FcstDate,
				Time:          item.FcstTime,
				Sky:           models.SkyUnknown,
				Precipitation: models.PrecipitationNone,
			}
			index[key] = point
			keys = append(keys, key)
		}

		value := strings.TrimSpace(item.FcstValue)
		switch item.Category {
		case "TMP", "T1H":
			point.Temperature = parseNumber(value)
		case "SKY":
			if sky, ok := skyCodes[value]; ok {
				point.Sky = sky
			}
		case "PTY":
			if pty, ok := precipitationCodes[value]; ok {
				point.Precipitation = pty
			}
		case "POP":
			point.PrecipitationProbability = parseNumber(value)
		case "REH":
			point.Humidity = parseNumber(value)
		case "WSD":
			point.WindSpeed = parseNumber(value)
		}
	}

	sort.Strings(keys)
	points := make([]models.ForecastPoint, 0, len(keys))
	for _, key := range keys {
		points = append(points, *index[key])
	}
	return points
}

func parseNumber(value string) *float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

type WeatherService interface {
	Advise(ctx context.Context, nx, ny int, now time.Time) (*models.WeatherAdvice, error)
}

type weatherService struct {
	fetcher ForecastFetcher
}

func NewWeatherService(fetcher ForecastFetcher) WeatherService {
	return &weatherService{fetcher: fetcher}
}

// Advise implements WeatherService. Only the earliest point drives the advice;
// all points are returned for detail display.
func (s *weatherService) Advise(ctx context.Context, nx, ny int, now time.Time) (*models.WeatherAdvice, error) {
	baseDate, baseTime := SelectBaseTime(now)

	items, err := s.fetcher.Fetch(ctx, baseDate, baseTime, nx, ny)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forecast: %w", err)
	}

	points := PivotForecast(items)
	advice := &models.WeatherAdvice{
		BaseDate: baseDate,
		BaseTime: baseTime,
		Nx:       nx,
		Ny:       ny,
		Points:   points,
	}
	if len(points) > 0 {
		current := points[0]
		advice.Current = &current
	}
	advice.Advice = adviceForPoint(advice.Current)

	zerolog.Ctx(ctx).Info().
		Str("base_date", baseDate).
		Str("base_time", baseTime).
		Int("points", len(points)).
		Msg("weather advice computed")

	return advice, nil
}
