// Package seed bootstraps identities from a directory of labeled images.
// Each file holds one person; the file name without extension is the identity name.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/saturnino-fabrica-de-software/aivi/internal/domain"
	"github.com/saturnino-fabrica-de-software/aivi/internal/provider"
)

var supportedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".bmp":  {},
	".webp": {},
}

// IsImageFile reports whether path has an extension the loader accepts
func IsImageFile(path string) bool {
	_, ok := supportedExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// NameFromPath strips directory and extension: "faces/Ana Lima.jpg" -> "Ana Lima"
func NameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

type Loader struct {
	provider provider.FaceProvider
	logger   *slog.Logger
}

func NewLoader(p provider.FaceProvider, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{provider: p, logger: logger}
}

// Load returns one identity per usable image in dir, in lexical file order.
// A missing dir is created and yields nothing. Files with no face or that fail
// to decode are skipped with a warning; they never abort the load.
func (l *Loader) Load(ctx context.Context, dir string) ([]domain.Identity, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create seed dir: %w", err)
		}
		l.logger.Info("seed directory created", slog.String("dir", dir))
		return []domain.Identity{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read seed dir: %w", err)
	}

	// os.ReadDir returns entries sorted by filename
	identities := make([]domain.Identity, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || !IsImageFile(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		identity, ok := l.loadFile(ctx, path)
		if ok {
			identities = append(identities, identity)
		}
	}

	l.logger.Info("seed identities loaded",
		slog.String("dir", dir),
		slog.Int("count", len(identities)),
	)

	return identities, nil
}

func (l *Loader) loadFile(ctx context.Context, path string) (domain.Identity, bool) {
	name := NameFromPath(path)
	if strings.TrimSpace(name) == "" {
		l.logger.Warn("skipping seed file without a name", slog.String("file", path))
		return domain.Identity{}, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		l.logger.Warn("skipping unreadable seed file",
			slog.String("file", path),
			slog.Any("error", err),
		)
		return domain.Identity{}, false
	}

	faces, err := l.provider.Represent(ctx, data)
	if err != nil {
		l.logger.Warn("skipping seed file",
			slog.String("file", path),
			slog.Any("error", err),
		)
		return domain.Identity{}, false
	}
	if len(faces) == 0 {
		l.logger.Warn("no face detected in seed file", slog.String("file", path))
		return domain.Identity{}, false
	}

	return domain.Identity{
		Name:      name,
		Embedding: faces[0].Embedding,
		Origin:    domain.OriginSeed,
	}, true
}
