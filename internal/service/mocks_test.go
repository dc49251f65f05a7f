package service

import (
	"context"

	"github.com/phrazzld/carousel-api/internal/domain"
	"github.com/phrazzld/carousel-api/internal/generation"
	"github.com/phrazzld/carousel-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockGenerator mocks the Generator interface
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) AnalyzeMarket(ctx context.Context, theme string) (string, error) {
	args := m.Called(ctx, theme)
	return args.String(0), args.Error(1)
}

func (m *MockGenerator) AnalyzeReference(ctx context.Context, img generation.Image) (string, error) {
	args := m.Called(ctx, img)
	return args.String(0), args.Error(1)
}

func (m *MockGenerator) GenerateStructure(
	ctx context.Context,
	req generation.StructureRequest,
) (*domain.CarouselStructure, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CarouselStructure), args.Error(1)
}

func (m *MockGenerator) RegenerateSlide(
	ctx context.Context,
	index int,
	current domain.SlideSpec,
	sc domain.SlideContext,
) (domain.SlideSpec, error) {
	args := m.Called(ctx, index, current, sc)
	return args.Get(0).(domain.SlideSpec), args.Error(1)
}

// MockRenderer mocks the Renderer interface
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) RenderAll(
	ctx context.Context,
	slides []domain.SlideSpec,
	mode domain.RenderMode,
	topic string,
) ([][]byte, error) {
	args := m.Called(ctx, slides, mode, topic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]byte), args.Error(1)
}

func (m *MockRenderer) PreviewSVG(spec domain.SlideSpec, templateID string) []byte {
	args := m.Called(spec, templateID)
	return args.Get(0).([]byte)
}

func (m *MockRenderer) AIEnabled() bool {
	args := m.Called()
	return args.Bool(0)
}

// MockBatchStore mocks the store.BatchStore interface
type MockBatchStore struct {
	mock.Mock
}

func (m *MockBatchStore) Save(ctx context.Context, batchID string, files []store.File) error {
	args := m.Called(ctx, batchID, files)
	return args.Error(0)
}

func (m *MockBatchStore) List(ctx context.Context, batchID string) ([]string, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBatchStore) Open(ctx context.Context, batchID, name string) ([]byte, error) {
	args := m.Called(ctx, batchID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
