package handler

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/saturnino-fabrica-de-software/aivi/internal/domain"
)

const (
	maxImageSize = 10 * 1024 * 1024 // 10MB
)

// decodeImage accepts raw base64 or a data URL ("data:image/jpeg;base64,...")
// as sent by browser canvases.
func decodeImage(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, domain.ErrInvalidImage.WithError(errors.New("empty image"))
	}

	if strings.HasPrefix(encoded, "data:") {
		comma := strings.IndexByte(encoded, ',')
		if comma < 0 || !strings.HasSuffix(encoded[:comma], ";base64") {
			return nil, domain.ErrInvalidImage.WithError(errors.New("data URL is not base64 encoded"))
		}
		encoded = encoded[comma+1:]
	}

	// 4 base64 chars carry 3 bytes
	if len(encoded)/4*3 > maxImageSize {
		return nil, domain.ErrInvalidImage.WithError(fmt.Errorf("image larger than %d bytes", maxImageSize))
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		// some clients strip the padding
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(encoded, "="))
	}
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(fmt.Errorf("decode base64: %w", err))
	}
	if len(data) == 0 {
		return nil, domain.ErrInvalidImage.WithError(errors.New("empty image"))
	}

	return data, nil
}
