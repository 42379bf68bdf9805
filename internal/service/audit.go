package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/saturnino-fabrica-de-software/aivi/internal/audit"
	"github.com/saturnino-fabrica-de-software/aivi/internal/domain"
)

// errorCode keeps raw error text (paths, DSNs) out of the audit trail
func errorCode(err error) string {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "CANCELED"
	}
	return domain.ErrInternal.Code
}

func logAudit(ctx context.Context, auditor audit.Logger, logger *slog.Logger, event audit.Event) {
	if err := auditor.Log(ctx, event); err != nil {
		logger.Warn("audit event dropped",
			slog.String("event_type", string(event.EventType)),
			slog.Any("error", err),
		)
	}
}

func enrollmentEvent(name string, outcome *domain.EnrollOutcome, err error) audit.Event {
	event := audit.Event{
		EventType: audit.EventIdentityEnrolled,
		Name:      name,
		Success:   err == nil,
	}
	if err != nil {
		event.Error = errorCode(err)
		return event
	}

	event.Metadata = map[string]string{
		"samples_used":    strconv.Itoa(outcome.SamplesUsed),
		"samples_dropped": strconv.Itoa(outcome.SamplesDropped),
		"persisted":       strconv.FormatBool(outcome.Persisted),
	}
	return event
}

func recognitionEvent(results []domain.Recognition, err error) audit.Event {
	event := audit.Event{
		EventType: audit.EventFacesRecognized,
		Success:   err == nil,
	}
	if err != nil {
		event.Error = errorCode(err)
		return event
	}

	matched := 0
	for _, r := range results {
		if r.Matched {
			matched++
		}
	}
	event.Metadata = map[string]string{
		"faces":   strconv.Itoa(len(results)),
		"matched": strconv.Itoa(matched),
	}
	return event
}
