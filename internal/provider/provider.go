package provider

import (
	"context"
	"fmt"
	"math"

	"github.com/saturnino-fabrica-de-software/aivi/internal/domain"
)

// FaceProvider define a interface para provedores de embeddings faciais
type FaceProvider interface {
	// Represent detecta faces na imagem e retorna um embedding por face,
	// na ordem de detecção. Zero faces não é erro.
	// Imagem que não pode ser decodificada retorna domain.ErrInvalidImage.
	Represent(ctx context.Context, image []byte) ([]FaceEmbedding, error)

	// Distance calcula a distância euclidiana entre dois embeddings
	Distance(embedding1, embedding2 []float64) (float64, error)
}

// FaceEmbedding is one detected face and its embedding
type FaceEmbedding struct {
	Embedding   []float64          `json:"embedding"`
	BoundingBox domain.BoundingBox `json:"bounding_box"`
}

// EuclideanDistance returns the L2 distance between two embeddings of the
// same dimension.
func EuclideanDistance(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("embedding dimension mismatch: %d != %d", len(a), len(b))
	}

	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}

	return math.Sqrt(sum), nil
}
