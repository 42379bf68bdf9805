package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/aivi/internal/domain"
)

// RecognitionService interface for the service
type RecognitionService interface {
	Analyze(ctx context.Context, image []byte) ([]domain.Recognition, error)
}

// VisionHandler handles recognition requests
type VisionHandler struct {
	service RecognitionService
	logger  *slog.Logger
}

func NewVisionHandler(service RecognitionService, logger *slog.Logger) *VisionHandler {
	return &VisionHandler{
		service: service,
		logger:  logger,
	}
}

// AnalyzeRequest body for analyze endpoint
type AnalyzeRequest struct {
	Image string `json:"image"`
}

// AnalyzeResponse response for analyze endpoint. People holds one entry per
// detected face, in detection order; unmatched faces are "Unknown".
type AnalyzeResponse struct {
	People []string             `json:"people"`
	Faces  []domain.Recognition `json:"faces,omitempty"`
}

// Analyze POST /analyze_vision - recognize every face in an image
// With ?details=true the response also carries distances and bounding boxes.
func (h *VisionHandler) Analyze(c *fiber.Ctx) error {
	var req AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}
	if req.Image == "" {
		return domain.ErrValidationFailed.WithError(errors.New("image is required"))
	}

	image, err := decodeImage(req.Image)
	if err != nil {
		return err
	}

	results, err := h.service.Analyze(c.Context(), image)
	if err != nil {
		return err
	}

	resp := AnalyzeResponse{People: make([]string, len(results))}
	for i, r := range results {
		resp.People[i] = r.Name
	}
	if c.QueryBool("details") {
		resp.Faces = results
	}

	return c.JSON(resp)
}
