package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/saturnino-fabrica-de-software/aivi/internal/audit"
	"github.com/saturnino-fabrica-de-software/aivi/internal/domain"
	"github.com/saturnino-fabrica-de-software/aivi/internal/memory"
	"github.com/saturnino-fabrica-de-software/aivi/internal/metrics"
	"github.com/saturnino-fabrica-de-software/aivi/internal/provider"
)

// IdentityWriter is the durable side of an enrollment
type IdentityWriter interface {
	InsertIfAbsent(ctx context.Context, name string, embedding []float64) (bool, error)
}

type EnrollmentService struct {
	index    *memory.Index
	repo     IdentityWriter
	provider provider.FaceProvider
	metrics  *metrics.Metrics
	logger   *slog.Logger
	audit    audit.Logger
}

func NewEnrollmentService(
	index *memory.Index,
	repo IdentityWriter,
	faceProvider provider.FaceProvider,
	m *metrics.Metrics,
	logger *slog.Logger,
) *EnrollmentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EnrollmentService{
		index:    index,
		repo:     repo,
		provider: faceProvider,
		metrics:  m,
		logger:   logger,
		audit:    &audit.NoOpLogger{},
	}
}

// WithAuditLogger records every enrollment attempt on l
func (s *EnrollmentService) WithAuditLogger(l audit.Logger) *EnrollmentService {
	s.audit = l
	return s
}

// Enroll averages the first face of every sample into one embedding, appends it
// to the live index and writes it through to the repository.
//
// A name that already exists durably is not an error: the outcome is still
// success and Persisted is false.
func (s *EnrollmentService) Enroll(ctx context.Context, name string, samples [][]byte) (*domain.EnrollOutcome, error) {
	outcome, err := s.enroll(ctx, name, samples)
	logAudit(ctx, s.audit, s.logger, enrollmentEvent(strings.TrimSpace(name), outcome, err))
	return outcome, err
}

func (s *EnrollmentService) enroll(ctx context.Context, name string, samples [][]byte) (*domain.EnrollOutcome, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(samples) == 0 {
		return nil, domain.ErrMissingInput
	}

	embeddings := make([][]float64, 0, len(samples))
	dropped := 0
	for i, sample := range samples {
		faces, err := s.provider.Represent(ctx, sample)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		if len(faces) == 0 {
			dropped++
			continue
		}
		embeddings = append(embeddings, faces[0].Embedding)
	}

	if len(embeddings) == 0 {
		return nil, domain.ErrNoFaceDetected
	}

	representative, err := domain.MeanEmbedding(embeddings)
	if err != nil {
		return nil, domain.ErrValidationFailed.WithError(err)
	}

	s.index.Append(name, representative)
	s.metrics.SetIndexSize(s.index.Len())

	persisted, err := s.repo.InsertIfAbsent(ctx, name, representative)
	if err != nil {
		if !errors.Is(err, domain.ErrStorageUnavailable) {
			err = domain.ErrStorageUnavailable.WithError(err)
		}
		s.logger.Error("enrollment not persisted",
			slog.String("name", name),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("persist %q: %w", name, err)
	}

	s.metrics.ObserveEnrollment(persisted)
	s.logger.Info("identity enrolled",
		slog.String("name", name),
		slog.Int("samples_used", len(embeddings)),
		slog.Int("samples_dropped", dropped),
		slog.Bool("persisted", persisted),
	)

	return &domain.EnrollOutcome{
		Status:         domain.EnrollStatusSuccess,
		Name:           name,
		SamplesUsed:    len(embeddings),
		SamplesDropped: dropped,
		Persisted:      persisted,
	}, nil
}
