package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/saturnino-fabrica-de-software/aivi/internal/audit"
	"github.com/saturnino-fabrica-de-software/aivi/internal/domain"
	"github.com/saturnino-fabrica-de-software/aivi/internal/memory"
	"github.com/saturnino-fabrica-de-software/aivi/internal/metrics"
	"github.com/saturnino-fabrica-de-software/aivi/internal/provider"
)

// DefaultTolerance is the largest distance still accepted as the same person
const DefaultTolerance = 0.6

type RecognitionService struct {
	index     *memory.Index
	provider  provider.FaceProvider
	metrics   *metrics.Metrics
	logger    *slog.Logger
	audit     audit.Logger
	tolerance float64
}

func NewRecognitionService(
	index *memory.Index,
	faceProvider provider.FaceProvider,
	m *metrics.Metrics,
	logger *slog.Logger,
) *RecognitionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecognitionService{
		index:     index,
		provider:  faceProvider,
		metrics:   m,
		logger:    logger,
		audit:     &audit.NoOpLogger{},
		tolerance: DefaultTolerance,
	}
}

// WithAuditLogger records every analyzed image on l
func (s *RecognitionService) WithAuditLogger(l audit.Logger) *RecognitionService {
	s.audit = l
	return s
}

func (s *RecognitionService) WithTolerance(tolerance float64) *RecognitionService {
	s.tolerance = tolerance
	return s
}

func (s *RecognitionService) isMatch(distance float64) bool {
	return distance <= s.tolerance
}

// Match compares probe against every indexed identity.
//
// The name always comes from the globally nearest entry (ties go to the
// earliest inserted). Acceptance is then decided only for that entry; another
// entry passing the tolerance never wins over the nearest one.
func (s *RecognitionService) Match(ctx context.Context, probe []float64) (domain.Recognition, error) {
	if err := ctx.Err(); err != nil {
		return domain.Recognition{}, err
	}

	names, embeddings := s.index.Snapshot()
	if len(names) == 0 {
		s.metrics.ObserveRecognition(false, -1)
		return domain.Recognition{Name: domain.UnknownName, Distance: -1}, nil
	}

	distances := make([]float64, len(embeddings))
	matches := make([]bool, len(embeddings))
	for i, stored := range embeddings {
		d, err := s.provider.Distance(probe, stored)
		if err != nil {
			// entry from another model/dimension: never comparable
			s.logger.Debug("skipping incomparable identity",
				slog.String("name", names[i]),
				slog.Any("error", err),
			)
			d = math.Inf(1)
		}
		distances[i] = d
		matches[i] = s.isMatch(d)
	}

	best := 0
	for i := 1; i < len(distances); i++ {
		if distances[i] < distances[best] {
			best = i
		}
	}

	rec := domain.Recognition{Name: domain.UnknownName, Distance: distances[best]}
	if matches[best] {
		rec.Name = names[best]
		rec.Matched = true
	}

	if math.IsInf(rec.Distance, 1) {
		rec.Distance = -1
	}
	s.metrics.ObserveRecognition(rec.Matched, rec.Distance)

	return rec, nil
}

// Analyze returns one recognition per detected face, in detection order.
// No faces yields an empty slice and a nil error.
func (s *RecognitionService) Analyze(ctx context.Context, image []byte) ([]domain.Recognition, error) {
	results, err := s.analyze(ctx, image)
	logAudit(ctx, s.audit, s.logger, recognitionEvent(results, err))
	return results, err
}

func (s *RecognitionService) analyze(ctx context.Context, image []byte) ([]domain.Recognition, error) {
	faces, err := s.provider.Represent(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("represent image: %w", err)
	}

	results := make([]domain.Recognition, 0, len(faces))
	for _, face := range faces {
		rec, err := s.Match(ctx, face.Embedding)
		if err != nil {
			return nil, err
		}
		rec.BoundingBox = face.BoundingBox
		results = append(results, rec)
	}

	s.logger.Debug("image analyzed",
		slog.Int("faces", len(faces)),
		slog.Int("index_size", s.index.Len()),
	)

	return results, nil
}
