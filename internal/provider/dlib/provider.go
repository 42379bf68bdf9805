//go:build dlib

package dlib

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"sync"

	"github.com/Kagami/go-face"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/saturnino-fabrica-de-software/aivi/internal/domain"
	"github.com/saturnino-fabrica-de-software/aivi/internal/provider"
)

// Provider implements provider.FaceProvider with dlib 128-dimension descriptors
type Provider struct {
	mu          sync.Mutex // go-face recognizers are not safe for concurrent use
	rec         *face.Recognizer
	jpegQuality int
}

// NewProvider loads the dlib models from cfg.ModelsDir
func NewProvider(cfg Config) (provider.FaceProvider, error) {
	rec, err := face.NewRecognizer(cfg.ModelsDir)
	if err != nil {
		return nil, fmt.Errorf("load dlib models from %s: %w", cfg.ModelsDir, err)
	}

	quality := cfg.JPEGQuality
	if quality <= 0 {
		quality = DefaultConfig().JPEGQuality
	}

	return &Provider{rec: rec, jpegQuality: quality}, nil
}

// Represent detects every face and returns its descriptor widened to float64
func (p *Provider) Represent(ctx context.Context, img []byte) ([]provider.FaceEmbedding, error) {
	data, err := p.toJPEG(img)
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}

	p.mu.Lock()
	faces, err := p.rec.Recognize(data)
	p.mu.Unlock()
	if err != nil {
		var loadErr face.ImageLoadError
		if errors.As(err, &loadErr) {
			return nil, domain.ErrInvalidImage.WithError(err)
		}
		return nil, fmt.Errorf("recognize: %w", err)
	}

	result := make([]provider.FaceEmbedding, 0, len(faces))
	for _, f := range faces {
		embedding := make([]float64, len(f.Descriptor))
		for i, v := range f.Descriptor {
			embedding[i] = float64(v)
		}

		rect := f.Rectangle
		result = append(result, provider.FaceEmbedding{
			Embedding: embedding,
			BoundingBox: domain.BoundingBox{
				X:      float64(rect.Min.X),
				Y:      float64(rect.Min.Y),
				Width:  float64(rect.Dx()),
				Height: float64(rect.Dy()),
			},
		})
	}

	return result, nil
}

// Distance calcula a distância euclidiana entre descritores
func (p *Provider) Distance(embedding1, embedding2 []float64) (float64, error) {
	return provider.EuclideanDistance(embedding1, embedding2)
}

// Close releases the dlib models
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.rec != nil {
		p.rec.Close()
		p.rec = nil
	}
	return nil
}

// toJPEG transcodes non-JPEG input, since go-face only decodes JPEG
func (p *Provider) toJPEG(data []byte) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if format == "jpeg" {
		return data, nil
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

var _ provider.FaceProvider = (*Provider)(nil)
