package face

import (
	"fmt"

	"github.com/saturnino-fabrica-de-software/aivi/internal/config"
	"github.com/saturnino-fabrica-de-software/aivi/internal/provider"
	"github.com/saturnino-fabrica-de-software/aivi/internal/provider/deepface"
	"github.com/saturnino-fabrica-de-software/aivi/internal/provider/dlib"
	"github.com/saturnino-fabrica-de-software/aivi/internal/provider/mock"
)

// ProviderType defines supported embedding provider types
type ProviderType string

const (
	// ProviderTypeDeepFace is the DeepFace HTTP service
	ProviderTypeDeepFace ProviderType = "deepface"
	// ProviderTypeDlib is the in-process dlib recognizer (requires -tags dlib)
	ProviderTypeDlib ProviderType = "dlib"
	// ProviderTypeMock derives embeddings from image hashes (dev/test only)
	ProviderTypeMock ProviderType = "mock"
)

// NewFaceProvider creates a FaceProvider instance based on configuration
//
// Environment variables:
//   - PROVIDER_TYPE: "deepface", "dlib" or "mock" (default: "deepface")
//   - DEEPFACE_URL / DEEPFACE_MODEL: DeepFace API settings
//   - DLIB_MODELS_DIR: directory with the dlib model files
func NewFaceProvider(cfg *config.Config) (provider.FaceProvider, error) {
	switch ProviderType(cfg.ProviderType) {
	case ProviderTypeDeepFace, "":
		return createDeepFaceProvider(cfg), nil

	case ProviderTypeDlib:
		prov, err := dlib.NewProvider(dlib.Config{
			ModelsDir:   cfg.DlibModelsDir,
			JPEGQuality: dlib.DefaultConfig().JPEGQuality,
		})
		if err != nil {
			return nil, fmt.Errorf("create dlib provider: %w", err)
		}
		return prov, nil

	case ProviderTypeMock:
		return mock.New(), nil

	default:
		return nil, fmt.Errorf("unknown provider type: %s (supported: %s, %s, %s)",
			cfg.ProviderType, ProviderTypeDeepFace, ProviderTypeDlib, ProviderTypeMock)
	}
}

// createDeepFaceProvider creates a DeepFace provider instance
func createDeepFaceProvider(cfg *config.Config) provider.FaceProvider {
	deepfaceConfig := deepface.DefaultConfig()

	if cfg.DeepFaceURL != "" {
		deepfaceConfig.BaseURL = cfg.DeepFaceURL
	}
	if cfg.DeepFaceModel != "" {
		deepfaceConfig.Model = cfg.DeepFaceModel
	}

	return deepface.NewProvider(deepfaceConfig)
}

// MatchTolerance returns MATCH_TOLERANCE when set, otherwise the default
// distance threshold of the configured provider and model.
func MatchTolerance(cfg *config.Config) (float64, error) {
	if cfg.MatchTolerance > 0 {
		return cfg.MatchTolerance, nil
	}

	switch ProviderType(cfg.ProviderType) {
	case ProviderTypeDeepFace, "":
		model := cfg.DeepFaceModel
		if model == "" {
			model = deepface.DefaultConfig().Model
		}
		tolerance, ok := deepface.DefaultTolerance(model)
		if !ok {
			return 0, fmt.Errorf("no default tolerance for deepface model %q: set MATCH_TOLERANCE", model)
		}
		return tolerance, nil

	case ProviderTypeDlib:
		return dlib.DefaultTolerance, nil

	case ProviderTypeMock:
		return mock.DefaultTolerance, nil

	default:
		return 0, fmt.Errorf("unknown provider type: %s", cfg.ProviderType)
	}
}
