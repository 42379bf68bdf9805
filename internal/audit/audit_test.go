package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(provider string) (*SlogLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)), provider), &buf
}

func TestSlogLogger_Log(t *testing.T) {
	tests := []struct {
		name          string
		event         Event
		wantEventType string
		wantProvider  string
		wantHasError  bool
		wantHasName   bool
	}{
		{
			name: "identity enrolled",
			event: Event{
				EventType: EventIdentityEnrolled,
				Name:      "Ana Lima",
				Success:   true,
				Metadata:  map[string]string{"samples_used": "3", "persisted": "true"},
			},
			wantEventType: string(EventIdentityEnrolled),
			wantProvider:  "deepface",
			wantHasName:   true,
		},
		{
			name: "failed enrollment",
			event: Event{
				EventType: EventIdentityEnrolled,
				Name:      "Bruno",
				Success:   false,
				Error:     "NO_FACE_DETECTED",
			},
			wantEventType: string(EventIdentityEnrolled),
			wantProvider:  "deepface",
			wantHasError:  true,
			wantHasName:   true,
		},
		{
			name: "faces recognized with explicit provider",
			event: Event{
				EventType: EventFacesRecognized,
				Provider:  "dlib",
				Success:   true,
				Metadata:  map[string]string{"faces": "2", "matched": "1"},
			},
			wantEventType: string(EventFacesRecognized),
			wantProvider:  "dlib",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auditLogger, buf := newBufferedLogger("deepface")

			err := auditLogger.Log(context.Background(), tt.event)
			require.NoError(t, err)

			output := buf.String()
			assert.Contains(t, output, tt.wantEventType)
			assert.Contains(t, output, tt.wantProvider)
			assert.Contains(t, output, "audit_event")
			assert.Contains(t, output, `"component":"audit"`)

			if tt.wantHasError {
				assert.Contains(t, output, tt.event.Error)
			}
			if tt.wantHasName {
				assert.Contains(t, output, tt.event.Name)
			}
		})
	}
}

func TestSlogLogger_Log_GeneratesIDAndTimestamp(t *testing.T) {
	auditLogger, buf := newBufferedLogger("mock")

	err := auditLogger.Log(context.Background(), Event{EventType: EventFacesRecognized, Success: true})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &logEntry))

	eventID, ok := logEntry["event_id"].(string)
	require.True(t, ok)
	_, err = uuid.Parse(eventID)
	assert.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal([]byte(logEntry["event_data"].(string)), &event))
	assert.False(t, event.Timestamp.IsZero())
	assert.Equal(t, "mock", event.Provider)
}

func TestSlogLogger_Log_UsesProvidedIDAndTimestamp(t *testing.T) {
	auditLogger, buf := newBufferedLogger("mock")

	expectedID := uuid.New()
	event := Event{
		ID:        expectedID,
		Timestamp: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		EventType: EventIdentityEnrolled,
		Success:   true,
	}

	require.NoError(t, auditLogger.Log(context.Background(), event))

	output := buf.String()
	assert.Contains(t, output, expectedID.String())
	assert.Contains(t, output, "2024-01-15T10:30:00Z")
}

func TestNoOpLogger_Log(t *testing.T) {
	logger := &NoOpLogger{}

	for i := 0; i < 100; i++ {
		assert.NoError(t, logger.Log(context.Background(), Event{EventType: EventFacesRecognized}))
	}
}

func TestLoggerInterface_Compliance(t *testing.T) {
	var _ Logger = (*SlogLogger)(nil)
	var _ Logger = (*NoOpLogger)(nil)
}

func TestEvent_JSONSerialization_OmitsEmptyFields(t *testing.T) {
	data, err := json.Marshal(Event{EventType: EventFacesRecognized, Provider: "mock", Success: true})
	require.NoError(t, err)

	jsonStr := string(data)
	assert.NotContains(t, jsonStr, `"name"`)
	assert.NotContains(t, jsonStr, `"error"`)
	assert.NotContains(t, jsonStr, `"metadata"`)
}
