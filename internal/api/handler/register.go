package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/aivi/internal/domain"
)

// EnrollmentService interface for the service
type EnrollmentService interface {
	Enroll(ctx context.Context, name string, samples [][]byte) (*domain.EnrollOutcome, error)
}

// RegisterHandler handles identity enrollment
type RegisterHandler struct {
	service EnrollmentService
	logger  *slog.Logger
}

func NewRegisterHandler(service EnrollmentService, logger *slog.Logger) *RegisterHandler {
	return &RegisterHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRequest body for register endpoint
type RegisterRequest struct {
	Name   string   `json:"name"`
	Images []string `json:"images"`
}

// RegisterResponse response for register endpoint
type RegisterResponse struct {
	Status         string `json:"status"`
	Name           string `json:"name"`
	Message        string `json:"message"`
	SamplesUsed    int    `json:"samples_used"`
	SamplesDropped int    `json:"samples_dropped"`
	Persisted      bool   `json:"persisted"`
}

// Register POST /register - enroll a new identity from several photos
func (h *RegisterHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}

	if strings.TrimSpace(req.Name) == "" || len(req.Images) == 0 {
		return domain.ErrMissingInput
	}

	samples := make([][]byte, 0, len(req.Images))
	for i, encoded := range req.Images {
		data, err := decodeImage(encoded)
		if err != nil {
			return fmt.Errorf("image %d: %w", i, err)
		}
		samples = append(samples, data)
	}

	outcome, err := h.service.Enroll(c.Context(), req.Name, samples)
	if err != nil {
		return err
	}

	return c.JSON(RegisterResponse{
		Status:         outcome.Status,
		Name:           outcome.Name,
		Message:        fmt.Sprintf("%s registered successfully", outcome.Name),
		SamplesUsed:    outcome.SamplesUsed,
		SamplesDropped: outcome.SamplesDropped,
		Persisted:      outcome.Persisted,
	})
}
