package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/aivi/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/aivi/internal/domain"
)

type MockRecognitionService struct {
	mock.Mock
}

func (m *MockRecognitionService) Analyze(ctx context.Context, image []byte) ([]domain.Recognition, error) {
	args := m.Called(ctx, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Recognition), args.Error(1)
}

type MockEnrollmentService struct {
	mock.Mock
}

func (m *MockEnrollmentService) Enroll(ctx context.Context, name string, samples [][]byte) (*domain.EnrollOutcome, error) {
	args := m.Called(ctx, name, samples)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EnrollOutcome), args.Error(1)
}

func newTestApp() *fiber.App {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
	})
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	var result map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &result), "body: %s", raw)

	return resp, result
}

func errorCode(result map[string]interface{}) string {
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	code, _ := errObj["code"].(string)
	return code
}

func b64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}
