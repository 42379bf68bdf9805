package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/saturnino-fabrica-de-software/aivi/internal/domain"
)

func TestVisionHandler_Analyze(t *testing.T) {
	image := []byte("jpeg bytes")

	tests := []struct {
		name       string
		path       string
		body       interface{}
		setupMock  func(*MockRecognitionService)
		wantStatus int
		wantPeople []interface{}
		wantCode   string
		wantFaces  bool
	}{
		{
			name: "names in detection order",
			path: "/analyze_vision",
			body: AnalyzeRequest{Image: b64(image)},
			setupMock: func(s *MockRecognitionService) {
				s.On("Analyze", mock.Anything, image).Return([]domain.Recognition{
					{Name: "ana", Matched: true, Distance: 0.2},
					{Name: domain.UnknownName, Distance: 0.9},
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantPeople: []interface{}{"ana", "Unknown"},
		},
		{
			name: "data URL input",
			path: "/analyze_vision",
			body: AnalyzeRequest{Image: "data:image/jpeg;base64," + b64(image)},
			setupMock: func(s *MockRecognitionService) {
				s.On("Analyze", mock.Anything, image).Return([]domain.Recognition{}, nil)
			},
			wantStatus: http.StatusOK,
			wantPeople: []interface{}{},
		},
		{
			name: "details include distances",
			path: "/analyze_vision?details=true",
			body: AnalyzeRequest{Image: b64(image)},
			setupMock: func(s *MockRecognitionService) {
				s.On("Analyze", mock.Anything, image).Return([]domain.Recognition{{Name: "ana", Matched: true}}, nil)
			},
			wantStatus: http.StatusOK,
			wantPeople: []interface{}{"ana"},
			wantFaces:  true,
		},
		{
			name:       "missing image",
			path:       "/analyze_vision",
			body:       map[string]string{},
			setupMock:  func(s *MockRecognitionService) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "invalid base64",
			path:       "/analyze_vision",
			body:       AnalyzeRequest{Image: "%%%not-base64%%%"},
			setupMock:  func(s *MockRecognitionService) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "INVALID_IMAGE",
		},
		{
			name: "undecodable image",
			path: "/analyze_vision",
			body: AnalyzeRequest{Image: b64(image)},
			setupMock: func(s *MockRecognitionService) {
				s.On("Analyze", mock.Anything, image).Return(nil, domain.ErrInvalidImage)
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "INVALID_IMAGE",
		},
		{
			name: "provider down",
			path: "/analyze_vision",
			body: AnalyzeRequest{Image: b64(image)},
			setupMock: func(s *MockRecognitionService) {
				s.On("Analyze", mock.Anything, image).Return(nil, domain.ErrProviderUnavailable)
			},
			wantStatus: http.StatusBadGateway,
			wantCode:   "PROVIDER_UNAVAILABLE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockRecognitionService)
			tt.setupMock(svc)

			app := newTestApp()
			app.Post("/analyze_vision", NewVisionHandler(svc, nil).Analyze)

			resp, result := postJSON(t, app, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errorCode(result))
				return
			}

			assert.Equal(t, tt.wantPeople, result["people"])
			_, hasFaces := result["faces"]
			assert.Equal(t, tt.wantFaces, hasFaces)
			svc.AssertExpectations(t)
		})
	}
}
