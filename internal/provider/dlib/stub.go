//go:build !dlib

package dlib

import (
	"github.com/saturnino-fabrica-de-software/aivi/internal/provider"
)

// NewProvider always fails when the binary was built without dlib
func NewProvider(Config) (provider.FaceProvider, error) {
	return nil, ErrNotBuilt
}
