package deepface

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/saturnino-fabrica-de-software/aivi/internal/domain"
	"github.com/saturnino-fabrica-de-software/aivi/internal/provider"
)

// Provider implements provider.FaceProvider using DeepFace API
type Provider struct {
	client *Client
}

// NewProvider creates a new DeepFace provider
func NewProvider(config Config) *Provider {
	return &Provider{
		client: NewClient(config),
	}
}

// Represent returns one embedding per detected face, in DeepFace's detection order
func (p *Provider) Represent(ctx context.Context, image []byte) ([]provider.FaceEmbedding, error) {
	if len(image) == 0 {
		return nil, domain.ErrInvalidImage.WithError(errors.New("empty image"))
	}

	resp, err := p.client.Represent(ctx, base64.StdEncoding.EncodeToString(image))
	switch {
	case err == nil:
	case isNoFaceError(err):
		return []provider.FaceEmbedding{}, nil
	case isClientError(err):
		return nil, domain.ErrInvalidImage.WithError(err)
	case errors.Is(err, ErrDeepFaceUnavailable), errors.Is(err, ErrInvalidResponse):
		return nil, domain.ErrProviderUnavailable.WithError(err)
	default:
		return nil, fmt.Errorf("represent: %w", err)
	}

	faces := make([]provider.FaceEmbedding, 0, len(resp.Results))
	for _, result := range resp.Results {
		if len(result.Embedding) == 0 {
			continue
		}
		faces = append(faces, provider.FaceEmbedding{
			Embedding: result.Embedding,
			BoundingBox: domain.BoundingBox{
				X:      float64(result.FacialArea.X),
				Y:      float64(result.FacialArea.Y),
				Width:  float64(result.FacialArea.W),
				Height: float64(result.FacialArea.H),
			},
		})
	}

	return faces, nil
}

// Distance is computed locally; DeepFace has no embedding comparison endpoint
func (p *Provider) Distance(embedding1, embedding2 []float64) (float64, error) {
	return provider.EuclideanDistance(embedding1, embedding2)
}

// Ensure Provider implements provider.FaceProvider
var _ provider.FaceProvider = (*Provider)(nil)
