package mock

import (
	"bytes"
	"context"
	"crypto/sha256"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/saturnino-fabrica-de-software/aivi/internal/domain"
	"github.com/saturnino-fabrica-de-software/aivi/internal/provider"
)

const (
	// embeddingDimension is gridCols * gridRows
	embeddingDimension = gridCols * gridRows
	gridCols           = 16
	gridRows           = 8
	// minFaceSide is the smallest image side (pixels) assumed to contain a face
	minFaceSide = 16

	// DefaultTolerance separates samples of one person from different people
	DefaultTolerance = 0.6
)

// Provider implementa provider.FaceProvider para testes e desenvolvimento
type Provider struct{}

// New cria uma nova instância do MockProvider
func New() *Provider {
	return &Provider{}
}

// Represent decodifica a imagem e gera um embedding determinístico a partir
// da sua aparência: imagens parecidas produzem embeddings próximos.
// Imagens menores que minFaceSide não têm face.
func (p *Provider) Represent(ctx context.Context, data []byte) ([]provider.FaceEmbedding, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}

	bounds := img.Bounds()
	if bounds.Dx() < minFaceSide || bounds.Dy() < minFaceSide {
		return []provider.FaceEmbedding{}, nil
	}

	return []provider.FaceEmbedding{
		{
			Embedding: generateEmbedding(img, data),
			BoundingBox: domain.BoundingBox{
				X:      float64(bounds.Dx()) * 0.1,
				Y:      float64(bounds.Dy()) * 0.1,
				Width:  float64(bounds.Dx()) * 0.8,
				Height: float64(bounds.Dy()) * 0.8,
			},
		},
	}, nil
}

// Distance calcula a distância euclidiana entre embeddings
func (p *Provider) Distance(emb1, emb2 []float64) (float64, error) {
	return provider.EuclideanDistance(emb1, emb2)
}

// generateEmbedding divide a imagem numa grade gridCols x gridRows e usa a
// luminância média de cada célula, centrada e normalizada. Imagens de cor
// uniforme não têm contraste e caem para um vetor derivado do hash.
func generateEmbedding(img image.Image, data []byte) []float64 {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	sums := make([]float64, embeddingDimension)
	counts := make([]int, embeddingDimension)
	for y := 0; y < h; y++ {
		row := (y * gridRows / h) * gridCols
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			cell := row + x*gridCols/w
			sums[cell] += 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
			counts[cell]++
		}
	}

	var mean float64
	for i := range sums {
		sums[i] /= float64(counts[i])
		mean += sums[i]
	}
	mean /= embeddingDimension
	for i := range sums {
		sums[i] -= mean
	}

	if normalize(sums) {
		return sums
	}
	return hashEmbedding(data)
}

// hashEmbedding gera embedding determinístico baseado no hash da imagem
func hashEmbedding(data []byte) []float64 {
	hash := sha256.Sum256(data)
	embedding := make([]float64, embeddingDimension)
	hashLen := len(hash)

	for i := 0; i < embeddingDimension; i++ {
		idx := i % hashLen
		//nolint:gosec // idx is always < hashLen due to modulo operation
		embedding[i] = (float64(hash[idx])/255.0)*2 - 1
	}

	normalize(embedding)
	return embedding
}

// normalize escala v para norma unitária; retorna false para o vetor nulo
func normalize(v []float64) bool {
	norm := 0.0
	for _, x := range v {
		norm += x * x
	}
	norm = math.Sqrt(norm)

	if norm < 1e-9 {
		return false
	}
	for i := range v {
		v[i] /= norm
	}
	return true
}

var _ provider.FaceProvider = (*Provider)(nil)
