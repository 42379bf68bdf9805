package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/parameter"
)

// AnalyzeVisionResponse lists the names recognized in a frame
type AnalyzeVisionResponse struct {
	People []string       `json:"people" example:"Ana Lima,Unknown"`
	Faces  []FaceDocument `json:"faces,omitempty"`
}

// FaceDocument is the per-face detail returned with details=true
type FaceDocument struct {
	Name        string              `json:"name" example:"Ana Lima"`
	Matched     bool                `json:"matched" example:"true"`
	Distance    float64             `json:"distance" example:"0.42"`
	BoundingBox BoundingBoxDocument `json:"bounding_box"`
}

// BoundingBoxDocument locates a face inside the frame, in pixels
type BoundingBoxDocument struct {
	X      float64 `json:"x" example:"120"`
	Y      float64 `json:"y" example:"64"`
	Width  float64 `json:"width" example:"96"`
	Height float64 `json:"height" example:"110"`
}

// RegisterResponse represents a successful enrollment
type RegisterResponse struct {
	Status         string `json:"status" example:"success"`
	Name           string `json:"name" example:"Ana Lima"`
	Message        string `json:"message" example:"Ana Lima registered successfully"`
	SamplesUsed    int    `json:"samples_used" example:"3"`
	SamplesDropped int    `json:"samples_dropped" example:"1"`
	Persisted      bool   `json:"persisted" example:"true"`
}

// IdentityDocument is one entry of the in-memory catalog
type IdentityDocument struct {
	Name   string `json:"name" example:"Ana Lima"`
	Origin string `json:"origin" example:"seed"`
}

// ListIdentitiesResponse represents the identity catalog
type ListIdentitiesResponse struct {
	Identities []IdentityDocument `json:"identities"`
	Total      int                `json:"total" example:"12"`
}

// HealthResponse represents the liveness probe
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Version string `json:"version" example:"0.1.0"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string `json:"code" example:"VALIDATION_FAILED"`
	Message string `json:"message" example:"Request validation failed"`
}

func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "AIVI Face Recognition API",
		Version:     "v0.1.0",
		Description: "Identity memory for a visual assistant: recognizes known people in camera frames and enrolls new ones",
		Host:        "localhost:5000",
		Path:        "/",
	})

	endpoints := []*endpoint.EndPoint{
		// POST /analyze_vision - Recognize faces in a frame
		endpoint.New(
			endpoint.POST,
			"/analyze_vision",
			endpoint.WithTags("Recognition"),
			endpoint.WithSummary("Recognize the people in a frame"),
			endpoint.WithDescription("Body: {\"image\": \"<base64 or data URL>\"}. Returns one name per detected face, in detection order. Faces with no known identity within tolerance are reported as Unknown."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("details", parameter.Query, parameter.WithDescription("Set to true to include distance and bounding box per face")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(AnalyzeVisionResponse{}, "200", "Frame analyzed"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "BAD_REQUEST", Message: "Invalid request"}, "400", "Bad Request"),
				response.New(ErrorResponse{Code: "INVALID_IMAGE", Message: "Invalid image format or corrupted file"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "image is required"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "RATE_LIMIT_EXCEEDED", Message: "Rate limit exceeded, please try again later"}, "429", "Too Many Requests"),
				response.New(ErrorResponse{Code: "PROVIDER_UNAVAILABLE", Message: "Face embedding provider is unavailable"}, "502", "Bad Gateway"),
			}),
		),

		// POST /register - Enroll a person
		endpoint.New(
			endpoint.POST,
			"/register",
			endpoint.WithTags("Enrollment"),
			endpoint.WithSummary("Enroll a person from one or more photos"),
			endpoint.WithDescription("Body: {\"name\": \"...\", \"images\": [\"<base64>\", ...]}. The mean embedding of every usable sample becomes the identity. The first stored embedding for a name is never overwritten."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(RegisterResponse{}, "200", "Person enrolled"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "MISSING_INPUT", Message: "Name and at least one image are required"}, "400", "Bad Request"),
				response.New(ErrorResponse{Code: "NO_FACE_DETECTED", Message: "No face detected in the provided images"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INVALID_IMAGE", Message: "Invalid image format or corrupted file"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "PROVIDER_UNAVAILABLE", Message: "Face embedding provider is unavailable"}, "502", "Bad Gateway"),
				response.New(ErrorResponse{Code: "STORAGE_UNAVAILABLE", Message: "Identity storage is unavailable"}, "503", "Service Unavailable"),
			}),
		),

		// GET /identities - List known identities
		endpoint.New(
			endpoint.GET,
			"/identities",
			endpoint.WithTags("Enrollment"),
			endpoint.WithSummary("List the identities held in memory"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(ListIdentitiesResponse{}, "200", "Identity catalog"),
			}),
		),

		// GET /health
		endpoint.New(
			endpoint.GET,
			"/health",
			endpoint.WithTags("Health"),
			endpoint.WithSummary("Liveness probe"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(HealthResponse{}, "200", "Service is alive"),
			}),
		),

		// GET /ready
		endpoint.New(
			endpoint.GET,
			"/ready",
			endpoint.WithTags("Health"),
			endpoint.WithSummary("Readiness probe"),
			endpoint.WithDescription("Pings the identity repository"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(HealthResponse{Status: "ready"}, "200", "Storage reachable"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "STORAGE_UNAVAILABLE", Message: "Identity storage is unavailable"}, "503", "Service Unavailable"),
			}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
