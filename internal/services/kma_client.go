package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"wearwise/style-advisor/internal/models"
)

const (
	weatherProvider       = "kma"
	DefaultWeatherBaseURL = "http://apis.data.go.kr/1360000/VilageFcstInfoService_2.0/getVilageFcst"
	kmaSuccessCode        = "00"
	kmaRowsPerPage        = 1000
)

type ForecastFetcher interface {
	Fetch(ctx context.Context, baseDate, baseTime string, nx, ny int) ([]models.ForecastItem, error)
}

type kmaResponse struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body struct {
			DataType string `json:"dataType"`
			Items    struct {
				Item []models.ForecastItem `json:"item"`
			} `json:"items"`
			PageNo     int `json:"pageNo"`
			NumOfRows  int `json:"numOfRows"`
			TotalCount int `json:"totalCount"`
		} `json:"body"`
	} `json:"response"`
}

type kmaClient struct {
	httpClient *http.Client
	baseURL    string
	serviceKey string
}

// NewKMAClient builds a client for the short-term forecast API. serviceKey is
// the decoded key issued by the data portal.
func NewKMAClient(serviceKey, baseURL string, timeout time.Duration) ForecastFetcher {
	if baseURL == "" {
		baseURL = DefaultWeatherBaseURL
	}
	return &kmaClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		serviceKey: serviceKey,
	}
}

// Fetch implements ForecastFetcher.
func (c *kmaClient) Fetch(ctx context.Context, baseDate, baseTime string, nx, ny int) ([]models.ForecastItem, error) {
	query := url.Values{}
	query.Set("serviceKey", c.serviceKey)
	query.Set("pageNo", "1")
	query.Set("numOfRows", strconv.Itoa(kmaRowsPerPage))
	query.Set("dataType", "JSON")
	query.Set("base_date", baseDate)
	query.Set("base_time", baseTime)
	query.Set("nx", strconv.Itoa(nx))
	query.Set("ny", strconv.Itoa(ny))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build forecast request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ServiceError{Provider: weatherProvider, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ServiceError{Provider: weatherProvider, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ServiceError{Provider: weatherProvider, Err: fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(string(body), 200))}
	}

	var payload kmaResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &ServiceError{Provider: weatherProvider, Err: fmt.Errorf("unexpected response body %q: %w", truncate(string(body), 200), err)}
	}

	header := payload.Response.Header
	if header.ResultCode != kmaSuccessCode {
		return nil, &ProviderError{Code: header.ResultCode, Message: header.ResultMsg}
	}

	items := payload.Response.Body.Items.Item
	zerolog.Ctx(ctx).Debug().
		Str("base_date", baseDate).
		Str("base_time", baseTime).
		Int("nx", nx).
		Int("ny", ny).
		Int("items", len(items)).
		Msg("forecast fetched")

	return items, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
