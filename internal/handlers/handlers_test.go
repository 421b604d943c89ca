package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"wearwise/style-advisor/internal/config"
	"wearwise/style-advisor/internal/metrics"
	"wearwise/style-advisor/internal/models"
	"wearwise/style-advisor/internal/repositories"
	"wearwise/style-advisor/internal/services"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

const (
	clothingJSON   = `{"item_type": "상의", "category": "데님 셔츠", "color": "인디고", "pattern": "솔리드(단색)", "style_tags": ["캐주얼"]}`
	recommendation = "## 👕 주말 캐주얼\n<span style='color: #87CEEB;'>데님 셔츠</span>에 면바지 (검색 키워드: 베이지 치노 팬츠)\nIMAGE_PROMPT_1: denim shirt with beige chinos\nIMAGE_PROMPT_2: denim shirt with white sneakers"
)

type fakeTextService struct {
	response string
	err      error
}

func (f *fakeTextService) GenerateText(context.Context, string, ...services.ImageInput) (string, error) {
	return f.response, f.err
}

type fakeImageGenerator struct{}

func (fakeImageGenerator) GenerateImage(_ context.Context, prompt string) (string, error) {
	return "https://images.example/" + strings.ReplaceAll(prompt, " ", "-"), nil
}

type fakeWorker struct {
	enqueued []uuid.UUID
}

func (w *fakeWorker) Start(context.Context) {}
func (w *fakeWorker) Stop() {}
func (w *fakeWorker) EnqueueJob(id uuid.UUID) {
	w.enqueued = append(w.enqueued, id)
}

type fakeWeatherService struct {
	nx, ny int
}

func (f *fakeWeatherService) Advise(_ context.Context, nx, ny int, _ time.Time) (*models.WeatherAdvice, error) {
	f.nx, f.ny = nx, ny
	return &models.WeatherAdvice{Nx: nx, Ny: ny, Advice: services.AdviceForCelsius(15)}, nil
}

type testServer struct {
	app     *fiber.App
	text    *fakeTextService
	worker  *fakeWorker
	weather *fakeWeatherService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := config.OpenDatabase(dsn, logger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	sessionRepo := repositories.NewSessionRepository(time.Hour)
	jobRepo := repositories.NewRecommendationJobRepository(db)
	analysisRepo := repositories.NewAnalysisRepository(db)

	text := &fakeTextService{}
	worker := &fakeWorker{}
	weather := &fakeWeatherService{}
	storage := services.NewStorageService(1 << 20)

	advisor := services.NewAdvisorService(
		sessionRepo,
		analysisRepo,
		jobRepo,
		text,
		fakeImageGenerator{},
		services.RetryPolicy{MaxAttempts: 1, Sleep: services.SleepContext},
		time.Second,
		metrics.NewRegistry(),
	)

	h := &Handlers{
		Session:        NewSessionHandler(sessionRepo, advisor),
		Analysis:       NewAnalysisHandler(advisor, storage),
		Recommendation: NewRecommendationHandler(advisor, worker),
		Result:         NewResultHandler(jobRepo),
		PersonalColor:  NewPersonalColorHandler(advisor, storage),
		Weather:        NewWeatherHandler(weather, 60, 127),
		Speech:         NewSpeechHandler(services.NewDisabledSpeechSynthesizer()),
		TryOn:          NewTryOnHandler("https://try-on.example"),
	}

	app := fiber.New()
	h.Register(app.Group("/api/v1"))

	return &testServer{app: app, text: text, worker: worker, weather: weather}
}

func (s *testServer) do(t *testing.T, req *http.Request) (int, []byte) {
	t.Helper()

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func jsonRequest(method, target string, payload any) *http.Request {
	var body io.Reader
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return req
}

func imageRequest(t *testing.T, target, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())
	return req
}

func (s *testServer) createSession(t *testing.T) string {
	t.Helper()

	status, body := s.do(t, jsonRequest(http.MethodPost, "/api/v1/sessions", nil))
	require.Equal(t, fiber.StatusCreated, status)

	var session models.Session
	require.NoError(t, json.Unmarshal(body, &session))
	return session.ID.String()
}

func (s *testServer) saveProfile(t *testing.T, sessionID string) {
	t.Helper()

	status, body := s.do(t, jsonRequest(http.MethodPut, "/api/v1/sessions/"+sessionID+"/profile", models.ProfileRequest{
		Gender:          models.GenderMale,
		HeightCM:        175,
		WeightKG:        70,
		SkinTone:        models.SkinToneSpringWarm,
		PreferredStyles: []string{"캐주얼", " 미니멀 ", "캐주얼"},
	}))
	require.Equal(t, fiber.StatusOK, status, string(body))
}

func (s *testServer) analyze(t *testing.T, sessionID string) {
	t.Helper()

	s.text.response = clothingJSON
	status, body := s.do(t, imageRequest(t, "/api/v1/sessions/"+sessionID+"/analyze", "shirt.png", pngHeader))
	require.Equal(t, fiber.StatusOK, status, string(body))
}

func TestSessionProfileAndSize(t *testing.T) {
	s := newTestServer(t)
	id := s.createSession(t)

	status, _ := s.do(t, jsonRequest(http.MethodGet, "/api/v1/sessions/"+id+"/size", nil))
	assert.Equal(t, fiber.StatusConflict, status)

	status, body := s.do(t, jsonRequest(http.MethodPut, "/api/v1/sessions/"+id+"/profile", models.ProfileRequest{
		Gender:   models.GenderMale,
		HeightCM: 90,
		WeightKG: 70,
		SkinTone: models.SkinToneSpringWarm,
	}))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, string(body), "height_cm")

	s.saveProfile(t, id)

	status, body = s.do(t, jsonRequest(http.MethodGet, "/api/v1/sessions/"+id, nil))
	require.Equal(t, fiber.StatusOK, status)
	var session models.Session
	require.NoError(t, json.Unmarshal(body, &session))
	require.NotNil(t, session.Profile)
	assert.Equal(t, []string{"캐주얼", "미니멀"}, session.Profile.PreferredStyles)

	status, body = s.do(t, jsonRequest(http.MethodGet, "/api/v1/sessions/"+id+"/size", nil))
	require.Equal(t, fiber.StatusOK, status)
	var size models.SizeEstimate
	require.NoError(t, json.Unmarshal(body, &size))
	assert.Equal(t, "L (100)", size.TopSize)
	assert.Equal(t, "31-33 inch", size.BottomSize)
}

func TestSessionNotFoundAndBadID(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(t, jsonRequest(http.MethodGet, "/api/v1/sessions/not-a-uuid", nil))
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = s.do(t, jsonRequest(http.MethodGet, "/api/v1/sessions/"+uuid.NewString(), nil))
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestEstimateSize(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, jsonRequest(http.MethodGet, "/api/v1/size?height=175&weight=70&gender=M", nil))
	require.Equal(t, fiber.StatusOK, status)
	var size models.SizeEstimate
	require.NoError(t, json.Unmarshal(body, &size))
	assert.Equal(t, "L (100)", size.TopSize)

	status, _ = s.do(t, jsonRequest(http.MethodGet, "/api/v1/size?height=abc&weight=70&gender=M", nil))
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body = s.do(t, jsonRequest(http.MethodGet, "/api/v1/size?height=NaN&weight=70&gender=M", nil))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, string(body), "height_cm")

	status, _ = s.do(t, jsonRequest(http.MethodGet, "/api/v1/size?height=175&weight=Inf&gender=M", nil))
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body = s.do(t, jsonRequest(http.MethodGet, "/api/v1/size?height=175&weight=70&gender=X", nil))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, string(body), "gender")
}

func TestAnalyzeRequiresProfile(t *testing.T) {
	s := newTestServer(t)
	id := s.createSession(t)

	s.text.response = clothingJSON
	status, _ := s.do(t, imageRequest(t, "/api/v1/sessions/"+id+"/analyze", "shirt.png", pngHeader))
	assert.Equal(t, fiber.StatusConflict, status)
}

func TestAnalyzeRejectsBadUploads(t *testing.T) {
	s := newTestServer(t)
	id := s.createSession(t)
	s.saveProfile(t, id)

	status, _ := s.do(t, imageRequest(t, "/api/v1/sessions/"+id+"/analyze", "notes.txt", []byte("hello")))
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = s.do(t, jsonRequest(http.MethodPost, "/api/v1/sessions/"+id+"/analyze", nil))
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestAnalyzeAndInsights(t *testing.T) {
	s := newTestServer(t)
	id := s.createSession(t)
	s.saveProfile(t, id)

	s.text.response = clothingJSON
	status, body := s.do(t, imageRequest(t, "/api/v1/sessions/"+id+"/analyze", "shirt.png", pngHeader))
	require.Equal(t, fiber.StatusOK, status, string(body))

	var analyzed models.AnalyzeResponse
	require.NoError(t, json.Unmarshal(body, &analyzed))
	assert.Equal(t, models.ItemTypeTop, analyzed.Attributes.ItemType)
	assert.False(t, analyzed.NotClothing)

	s.text.response = `{"item_type": "N/A", "category": "N/A", "color": "N/A", "pattern": "N/A", "style_tags": ["N/A"]}`
	status, body = s.do(t, imageRequest(t, "/api/v1/sessions/"+id+"/analyze", "cat.png", pngHeader))
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &analyzed))
	assert.True(t, analyzed.NotClothing)

	status, body = s.do(t, jsonRequest(http.MethodGet, "/api/v1/sessions/"+id+"/insights", nil))
	require.Equal(t, fiber.StatusOK, status)
	var insights models.StyleInsights
	require.NoError(t, json.Unmarshal(body, &insights))
	assert.Equal(t, 2, insights.TotalAnalyses)
	assert.Equal(t, 1, insights.NonClothing)
}

func TestAnalyzeMalformedResponse(t *testing.T) {
	s := newTestServer(t)
	id := s.createSession(t)
	s.saveProfile(t, id)

	s.text.response = "사진을 인식할 수 없습니다."
	status, _ := s.do(t, imageRequest(t, "/api/v1/sessions/"+id+"/analyze", "shirt.png", pngHeader))
	assert.Equal(t, fiber.StatusBadGateway, status)
}

func TestRecommendSynchronously(t *testing.T) {
	s := newTestServer(t)
	id := s.createSession(t)

	status, _ := s.do(t, jsonRequest(http.MethodPost, "/api/v1/sessions/"+id+"/recommendations", nil))
	assert.Equal(t, fiber.StatusConflict, status)

	s.saveProfile(t, id)
	status, _ = s.do(t, jsonRequest(http.MethodPost, "/api/v1/sessions/"+id+"/recommendations", nil))
	assert.Equal(t, fiber.StatusConflict, status)

	s.analyze(t, id)

	s.text.response = recommendation
	status, body := s.do(t, jsonRequest(http.MethodPost, "/api/v1/sessions/"+id+"/recommendations", models.RecommendRequest{Situation: "주말 나들이"}))
	require.Equal(t, fiber.StatusOK, status, string(body))

	var resp models.RecommendResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, []string{"denim shirt with beige chinos", "denim shirt with white sneakers"}, resp.Result.ImagePrompts)
	assert.Equal(t, []string{"베이지 치노 팬츠"}, resp.Result.SearchKeywords)
	assert.NotContains(t, resp.Result.DisplayText, "IMAGE_PROMPT_")
	require.Len(t, resp.Images, 2)
	require.NotNil(t, resp.Images[0].URL)
	assert.Equal(t, "https://images.example/denim-shirt-with-beige-chinos", *resp.Images[0].URL)
}

func TestRecommendationJobLifecycle(t *testing.T) {
	s := newTestServer(t)
	id := s.createSession(t)
	s.saveProfile(t, id)
	s.analyze(t, id)

	status, body := s.do(t, jsonRequest(http.MethodPost, "/api/v1/sessions/"+id+"/recommendations/jobs", nil))
	require.Equal(t, fiber.StatusAccepted, status, string(body))

	var job models.JobResponse
	require.NoError(t, json.Unmarshal(body, &job))
	assert.Equal(t, string(models.StatusQueued), job.Status)
	require.Len(t, s.worker.enqueued, 1)
	assert.Equal(t, job.ID, s.worker.enqueued[0].String())

	status, body = s.do(t, jsonRequest(http.MethodGet, "/api/v1/recommendations/"+job.ID, nil))
	require.Equal(t, fiber.StatusOK, status)
	var result models.JobResultResponse
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, string(models.StatusQueued), result.Status)
	assert.Nil(t, result.Result)

	status, _ = s.do(t, jsonRequest(http.MethodGet, "/api/v1/recommendations/"+uuid.NewString(), nil))
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = s.do(t, jsonRequest(http.MethodGet, "/api/v1/recommendations/xyz", nil))
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestPersonalColorDiagnoseAndApply(t *testing.T) {
	s := newTestServer(t)
	id := s.createSession(t)
	s.saveProfile(t, id)

	s.text.response = "피부가 밝고 푸른 기가 돕니다.\n진단 결과: 다채로운 톤"
	status, body := s.do(t, imageRequest(t, "/api/v1/sessions/"+id+"/personal-color", "face.png", pngHeader))
	require.Equal(t, fiber.StatusOK, status, string(body))
	assert.Contains(t, string(body), `"recognized":false`)

	status, _ = s.do(t, jsonRequest(http.MethodPost, "/api/v1/sessions/"+id+"/personal-color/apply", nil))
	assert.Equal(t, fiber.StatusConflict, status)

	s.text.response = "피부가 밝고 푸른 기가 돕니다.\n**진단 결과:** 여름 쿨톤"
	status, body = s.do(t, imageRequest(t, "/api/v1/sessions/"+id+"/personal-color", "face.png", pngHeader))
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), `"recognized":true`)

	status, body = s.do(t, jsonRequest(http.MethodPost, "/api/v1/sessions/"+id+"/personal-color/apply", nil))
	require.Equal(t, fiber.StatusOK, status)
	var session models.Session
	require.NoError(t, json.Unmarshal(body, &session))
	assert.Equal(t, models.SkinToneSummerCool, session.Profile.SkinTone)
}

func TestWeather(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, jsonRequest(http.MethodGet, "/api/v1/weather", nil))
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 60, s.weather.nx)
	assert.Equal(t, 127, s.weather.ny)
	assert.Contains(t, string(body), services.AdviceForCelsius(15))

	status, _ = s.do(t, jsonRequest(http.MethodGet, "/api/v1/weather?nx=55&ny=124", nil))
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 55, s.weather.nx)
	assert.Equal(t, 124, s.weather.ny)

	status, _ = s.do(t, jsonRequest(http.MethodGet, "/api/v1/weather?nx=abc", nil))
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestSpeechDisabled(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(t, jsonRequest(http.MethodPost, "/api/v1/speech", models.SpeechRequest{Text: "  "}))
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = s.do(t, jsonRequest(http.MethodPost, "/api/v1/speech", models.SpeechRequest{Text: "오늘의 코디"}))
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
}

func TestTryOn(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, jsonRequest(http.MethodGet, "/api/v1/try-on", nil))
	require.Equal(t, fiber.StatusOK, status)

	var resp models.TryOnResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "https://try-on.example", resp.URL)
	assert.NotEmpty(t, resp.Message)
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"provider message verbatim", &services.ProviderError{Code: "03", Message: "NO_DATA"}, fiber.StatusBadGateway, `"error":"NO_DATA"`},
		{"transient upstream", services.NewTransientNetworkError("openai", errors.New("reset")), fiber.StatusBadGateway, services.ConnectionErrorMarker},
		{"timeout", fmt.Errorf("gemini: %w", context.DeadlineExceeded), fiber.StatusGatewayTimeout, "timed out"},
		{"not found", fmt.Errorf("job: %w", repositories.ErrNotFound), fiber.StatusNotFound, "not found"},
		{"unknown", errors.New("boom"), fiber.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return respondError(c, tt.err) })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			body, _ := io.ReadAll(resp.Body)

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Contains(t, string(body), tt.body)
		})
	}
}
