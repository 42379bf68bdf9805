package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/saturnino-fabrica-de-software/aivi/internal/domain"
	"github.com/saturnino-fabrica-de-software/aivi/internal/provider"
)

type MockFaceProvider struct {
	mock.Mock
}

func (m *MockFaceProvider) Represent(ctx context.Context, image []byte) ([]provider.FaceEmbedding, error) {
	args := m.Called(ctx, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]provider.FaceEmbedding), args.Error(1)
}

func (m *MockFaceProvider) Distance(emb1, emb2 []float64) (float64, error) {
	args := m.Called(emb1, emb2)
	if fn, ok := args.Get(0).(func(a, b []float64) (float64, error)); ok {
		return fn(emb1, emb2)
	}
	return args.Get(0).(float64), args.Error(1)
}

type MockIdentityRepository struct {
	mock.Mock
}

func (m *MockIdentityRepository) EnsureSchema(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockIdentityRepository) ListAll(ctx context.Context) ([]domain.Identity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Identity), args.Error(1)
}

func (m *MockIdentityRepository) InsertIfAbsent(ctx context.Context, name string, embedding []float64) (bool, error) {
	args := m.Called(ctx, name, embedding)
	return args.Bool(0), args.Error(1)
}

type MockSeedLoader struct {
	mock.Mock
}

func (m *MockSeedLoader) Load(ctx context.Context, dir string) ([]domain.Identity, error) {
	args := m.Called(ctx, dir)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Identity), args.Error(1)
}

func face(embedding ...float64) provider.FaceEmbedding {
	return provider.FaceEmbedding{Embedding: embedding}
}
