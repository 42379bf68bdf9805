package face

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/aivi/internal/config"
	"github.com/saturnino-fabrica-de-software/aivi/internal/provider/deepface"
	"github.com/saturnino-fabrica-de-software/aivi/internal/provider/dlib"
	"github.com/saturnino-fabrica-de-software/aivi/internal/provider/mock"
)

func TestNewFaceProvider_DeepFace(t *testing.T) {
	tests := []struct {
		name         string
		providerType string
		deepFaceURL  string
	}{
		{
			name:         "explicit deepface provider",
			providerType: "deepface",
			deepFaceURL:  "http://localhost:5005",
		},
		{
			name:         "empty provider defaults to deepface",
			providerType: "",
			deepFaceURL:  "http://localhost:5005",
		},
		{
			name:         "custom deepface URL",
			providerType: "deepface",
			deepFaceURL:  "http://custom-host:8080",
		},
		{
			name:         "empty URL falls back to default",
			providerType: "deepface",
			deepFaceURL:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				ProviderType: tt.providerType,
				DeepFaceURL:  tt.deepFaceURL,
			}

			p, err := NewFaceProvider(cfg)
			require.NoError(t, err)

			_, ok := p.(*deepface.Provider)
			assert.True(t, ok, "NewFaceProvider() returned type %T, want *deepface.Provider", p)
		})
	}
}

func TestNewFaceProvider_Mock(t *testing.T) {
	p, err := NewFaceProvider(&config.Config{ProviderType: "mock"})
	require.NoError(t, err)

	_, ok := p.(*mock.Provider)
	assert.True(t, ok, "NewFaceProvider() returned type %T, want *mock.Provider", p)
}

func TestNewFaceProvider_UnknownType(t *testing.T) {
	p, err := NewFaceProvider(&config.Config{ProviderType: "azure"})

	assert.Nil(t, p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider type")
}

func TestMatchTolerance(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		want    float64
		wantErr bool
	}{
		{
			name: "explicit value wins",
			cfg:  config.Config{ProviderType: "deepface", DeepFaceModel: "Facenet512", MatchTolerance: 12.5},
			want: 12.5,
		},
		{
			name: "deepface default model",
			cfg:  config.Config{ProviderType: "deepface"},
			want: 23.56,
		},
		{
			name: "deepface ArcFace",
			cfg:  config.Config{ProviderType: "deepface", DeepFaceModel: "ArcFace"},
			want: 4.15,
		},
		{
			name:    "deepface model without a known threshold",
			cfg:     config.Config{ProviderType: "deepface", DeepFaceModel: "MyCustomNet"},
			wantErr: true,
		},
		{
			name: "dlib",
			cfg:  config.Config{ProviderType: "dlib"},
			want: dlib.DefaultTolerance,
		},
		{
			name: "mock",
			cfg:  config.Config{ProviderType: "mock"},
			want: mock.DefaultTolerance,
		},
		{
			name:    "unknown provider",
			cfg:     config.Config{ProviderType: "azure"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MatchTolerance(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
