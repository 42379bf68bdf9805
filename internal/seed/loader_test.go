package seed

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/aivi/internal/domain"
	"github.com/saturnino-fabrica-de-software/aivi/internal/provider/mock"
	"github.com/saturnino-fabrica-de-software/aivi/internal/testutil"
)

func writeFile(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o600))
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "bruno.png", testutil.FaceImage(t, 2))
	writeFile(t, dir, "Ana Lima.PNG", testutil.FaceImage(t, 1))
	writeFile(t, dir, "blank.png", testutil.BlankImage(t))
	writeFile(t, dir, "broken.jpg", []byte("definitely not a jpeg"))
	writeFile(t, dir, "notes.txt", []byte("ignored"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.png"), 0o755))

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	loader := NewLoader(mock.New(), logger)
	got, err := loader.Load(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "Ana Lima", got[0].Name)
	assert.Equal(t, "bruno", got[1].Name)
	for _, identity := range got {
		assert.Equal(t, domain.OriginSeed, identity.Origin)
		assert.Len(t, identity.Embedding, 128)
	}

	assert.Contains(t, logs.String(), "no face detected in seed file")
	assert.Contains(t, logs.String(), "broken.jpg")
}

func TestLoader_Load_CreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "known_faces")

	got, err := NewLoader(mock.New(), nil).Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, got)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLoader_Load_NoDedup(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ana.png", testutil.FaceImage(t, 1))
	writeFile(t, dir, "ana.jpeg", testutil.FaceImage(t, 2))

	got, err := NewLoader(mock.New(), nil).Load(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "ana", got[0].Name)
	assert.Equal(t, "ana", got[1].Name)
}

func TestLoader_Load_SkipsNamelessFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".png", testutil.FaceImage(t, 1))
	writeFile(t, dir, " .jpg", testutil.FaceImage(t, 2))
	writeFile(t, dir, "carla.png", testutil.FaceImage(t, 3))

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	got, err := NewLoader(mock.New(), logger).Load(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "carla", got[0].Name)
	assert.Contains(t, logs.String(), "skipping seed file without a name")
}

func TestLoader_Load_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ana.png", testutil.FaceImage(t, 1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(mock.New(), nil).Load(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNameFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"ana.jpg", "ana"},
		{"faces/Ana Lima.jpeg", "Ana Lima"},
		{"x.y.png", "x.y"},
		{"noext", "noext"},
		{"faces/.png", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NameFromPath(tt.path), tt.path)
	}
}

func TestIsImageFile(t *testing.T) {
	assert.True(t, IsImageFile("a.PNG"))
	assert.True(t, IsImageFile("a.jpeg"))
	assert.True(t, IsImageFile("a.webp"))
	assert.False(t, IsImageFile("a.gif"))
	assert.False(t, IsImageFile("a"))
}
