package api

import (
	"context"

	"github.com/phrazzld/carousel-api/internal/domain"
	"github.com/phrazzld/carousel-api/internal/generation"
	"github.com/phrazzld/carousel-api/internal/service"
	"github.com/stretchr/testify/mock"
)

// MockCarouselService mocks the service.CarouselService interface
type MockCarouselService struct {
	mock.Mock
}

func (m *MockCarouselService) Analyze(ctx context.Context, in service.AnalyzeInput) (*service.AnalyzeResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AnalyzeResult), args.Error(1)
}

func (m *MockCarouselService) GenerateStructure(
	ctx context.Context,
	req generation.StructureRequest,
) (*domain.CarouselStructure, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CarouselStructure), args.Error(1)
}

func (m *MockCarouselService) RegenerateSlide(ctx context.Context, in service.RegenerateInput) (domain.SlideSpec, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.SlideSpec), args.Error(1)
}

func (m *MockCarouselService) GenerateImages(ctx context.Context, in service.ImagesInput) (*domain.Batch, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Batch), args.Error(1)
}

func (m *MockCarouselService) FetchBatch(ctx context.Context, batchID string) (*service.BatchDownload, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BatchDownload), args.Error(1)
}

func (m *MockCarouselService) OpenSlide(ctx context.Context, batchID, name string) ([]byte, error) {
	args := m.Called(ctx, batchID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCarouselService) PreviewSlide(spec domain.SlideSpec, templateID string) []byte {
	args := m.Called(spec, templateID)
	return args.Get(0).([]byte)
}
